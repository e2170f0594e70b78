package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

// LikeLogRepository 点赞流水仓储接口（append-only）
type LikeLogRepository interface {
	Insert(ctx context.Context, entry *model.LikeLog) error

	// BatchInsert 单条多行 INSERT，一次调用一条语句
	BatchInsert(ctx context.Context, entries []*model.LikeLog) error

	Count(ctx context.Context) (int64, error)
}

type likeLogRepository struct {
	db *gorm.DB
}

func NewLikeLogRepository(db *gorm.DB) LikeLogRepository { return &likeLogRepository{db: db} }

func (r *likeLogRepository) Insert(ctx context.Context, entry *model.LikeLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *likeLogRepository) BatchInsert(ctx context.Context, entries []*model.LikeLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *likeLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LikeLog{}).Count(&count).Error
	return count, err
}
