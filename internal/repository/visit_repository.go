package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

// VisitRepository 访问记录仓储接口
type VisitRepository interface {
	// Create 每次访问都新增一行，不做去重
	Create(ctx context.Context, visitorID, targetID int64, at time.Time) error

	// ListRecentByTarget 查询 since 之后对 targetID 的全部访问（含边界）
	ListRecentByTarget(ctx context.Context, targetID int64, since time.Time) ([]*model.Visit, error)
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository { return &visitRepository{db: db} }

func (r *visitRepository) Create(ctx context.Context, visitorID, targetID int64, at time.Time) error {
	v := &model.Visit{VisitorID: visitorID, TargetID: targetID, VisitedTime: at}
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *visitRepository) ListRecentByTarget(ctx context.Context, targetID int64, since time.Time) ([]*model.Visit, error) {
	var visits []*model.Visit
	err := r.db.WithContext(ctx).
		Where("target_id = ? AND visited_time >= ?", targetID, since).
		Find(&visits).Error
	return visits, err
}
