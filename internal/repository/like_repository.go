package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

// LikeRepository 点赞仓储接口
type LikeRepository interface {
	// FindByPair 按 (liker, target) 精确查找，未命中返回 (nil, nil)
	FindByPair(ctx context.Context, likerID, targetID int64) (*model.Like, error)

	Create(ctx context.Context, like *model.Like) error

	// UpdateStatus 按主键原地更新状态
	UpdateStatus(ctx context.Context, like *model.Like) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) FindByPair(ctx context.Context, likerID, targetID int64) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Where("liker_id = ? AND target_id = ?", likerID, targetID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) UpdateStatus(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("id = ?", like.ID).
		Update("status", like.Status).Error
}
