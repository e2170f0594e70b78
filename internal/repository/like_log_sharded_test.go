package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

func setupShardedRepo(t *testing.T) *ShardedLikeLogRepository {
	t.Helper()
	// 共享缓存的内存库：Count 并发查分表会用到连接池里的多个连接
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	repo := NewShardedLikeLogRepository(db)
	require.NoError(t, repo.InitSchema())
	return repo
}

func TestRouteByLikerID(t *testing.T) {
	assert.Equal(t, 0, RouteByLikerID(0))
	assert.Equal(t, 5, RouteByLikerID(5))
	assert.Equal(t, 5, RouteByLikerID(5+LogTableCount))
	assert.GreaterOrEqual(t, RouteByLikerID(-3), 0)
}

func TestShardedLikeLog_BatchInsertAndCount(t *testing.T) {
	repo := setupShardedRepo(t)
	ctx := context.Background()

	entries := make([]*model.LikeLog, 100)
	now := time.Now()
	for i := range entries {
		entries[i] = &model.LikeLog{LikerID: int64(i), TargetID: 1, CreatedTime: now}
	}
	require.NoError(t, repo.BatchInsert(ctx, entries))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, count)
}

func TestShardedLikeLog_InsertRoutesByLiker(t *testing.T) {
	repo := setupShardedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &model.LikeLog{LikerID: 9, TargetID: 1, CreatedTime: time.Now()}))

	var n int64
	table := logTableName(RouteByLikerID(9))
	require.NoError(t, repo.db.Table(table).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
