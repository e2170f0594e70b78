package service

import (
	"context"

	"github.com/d60-Lab/social-interaction/internal/model"
	"github.com/d60-Lab/social-interaction/internal/repository"
)

// AuditSink 审计流水落地端口
type AuditSink interface {
	Append(ctx context.Context, entry *model.LikeLog) error
}

type repoAuditSink struct {
	repo repository.LikeLogRepository
}

// NewRepoAuditSink 同步落库的审计入口（默认路径）
func NewRepoAuditSink(repo repository.LikeLogRepository) AuditSink {
	return &repoAuditSink{repo: repo}
}

func (s *repoAuditSink) Append(ctx context.Context, entry *model.LikeLog) error {
	return s.repo.Insert(ctx, entry)
}
