package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/social-interaction/internal/model"
	"github.com/d60-Lab/social-interaction/internal/repository"
)

const defaultBatchSize = 1000

// LogIngestService 点赞流水批量写入
type LogIngestService interface {
	// BatchInsert 过滤 nil 后按 batchSize 分块并发写入，等全部分块完成后返回。
	// 任一分块失败则返回该错误，但不回滚已写入的分块。
	BatchInsert(ctx context.Context, entries []*model.LikeLog) error
}

type logIngestService struct {
	repo      repository.LikeLogRepository
	batchSize int
}

func NewLogIngestService(repo repository.LikeLogRepository, batchSize int) LogIngestService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &logIngestService{repo: repo, batchSize: batchSize}
}

func (s *logIngestService) BatchInsert(ctx context.Context, entries []*model.LikeLog) error {
	valid := make([]*model.LikeLog, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			valid = append(valid, e)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	// 零值 errgroup：不带共享 context，失败的分块不会取消在途的兄弟分块
	var g errgroup.Group
	for start := 0; start < len(valid); start += s.batchSize {
		end := start + s.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[start:end]
		g.Go(func() error {
			return s.repo.BatchInsert(ctx, chunk)
		})
	}
	return g.Wait()
}
