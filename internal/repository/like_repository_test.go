package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Visit{}, &model.Like{}, &model.LikeLog{}))
	return db
}

func TestLikeRepository_FindByPairMissReturnsNil(t *testing.T) {
	repo := NewLikeRepository(setupRepoDB(t))

	like, err := repo.FindByPair(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Nil(t, like)
}

func TestLikeRepository_PairUniquenessEnforced(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	first := &model.Like{LikerID: 1, TargetID: 2, Status: model.LikeStatusLiked, LikedTime: time.Now()}
	require.NoError(t, repo.Create(ctx, first))

	// 并发双写兜底：同一 (liker, target) 第二次插入被唯一索引拒绝
	dup := &model.Like{LikerID: 1, TargetID: 2, Status: model.LikeStatusLiked, LikedTime: time.Now()}
	require.Error(t, repo.Create(ctx, dup))

	// 反向对不受影响
	reverse := &model.Like{LikerID: 2, TargetID: 1, Status: model.LikeStatusLiked, LikedTime: time.Now()}
	require.NoError(t, repo.Create(ctx, reverse))
}

func TestLikeRepository_UpdateStatusInPlace(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	like := &model.Like{LikerID: 1, TargetID: 2, Status: model.LikeStatusLiked, LikedTime: time.Now()}
	require.NoError(t, repo.Create(ctx, like))

	like.Status = model.LikeStatusCanceled
	require.NoError(t, repo.UpdateStatus(ctx, like))

	got, err := repo.FindByPair(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, like.ID, got.ID)
	assert.Equal(t, model.LikeStatusCanceled, got.Status)
}

func TestUserRepository_FindActiveByIDsFiltersFraudAndDeleted(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seed := func(id int64, status model.UserStatus) {
		require.NoError(t, db.Create(&model.User{ID: id, Name: "u", AccountStatus: status}).Error)
	}
	seed(1, model.UserStatusNormal)
	seed(2, model.UserStatusFraud)
	seed(3, model.UserStatusDeleted)

	users, err := repo.FindActiveByIDs(ctx, []int64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, users[0].ID)
}

func TestVisitRepository_ListRecentByTargetWindow(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, 2, 1, now.Add(-time.Hour)))
	require.NoError(t, repo.Create(ctx, 3, 1, now.Add(-40*24*time.Hour))) // 窗口外
	require.NoError(t, repo.Create(ctx, 4, 9, now.Add(-time.Hour)))      // 其他目标

	visits, err := repo.ListRecentByTarget(ctx, 1, now.AddDate(0, -1, 0))
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.EqualValues(t, 2, visits[0].VisitorID)
}
