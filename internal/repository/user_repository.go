package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	// UpdateStatus 更新账号状态（风控命中后置为 FRAUD）
	UpdateStatus(ctx context.Context, userID int64, status model.UserStatus) error

	// FindActiveByIDs 按 id 列表批量查询，FRAUD / DELETED 账号在此层过滤掉，
	// 返回数量可能少于入参。
	FindActiveByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID int64, status model.UserStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("account_status", status).Error
}

func (r *userRepository) FindActiveByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*model.User
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("account_status = ?", model.UserStatusNormal).
		Find(&users).Error
	return users, err
}
