package repository

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

const (
	// LogTableCount 流水分表数量 (like_logs_0 .. like_logs_7)
	LogTableCount = 8
)

// ShardedLikeLogRepository 分表点赞流水仓储：按 liker_id 路由，
// 写放大低、单表体量可控，适合 append-only 流水。
type ShardedLikeLogRepository struct {
	db *gorm.DB
}

func NewShardedLikeLogRepository(db *gorm.DB) *ShardedLikeLogRepository {
	return &ShardedLikeLogRepository{db: db}
}

// RouteByLikerID 根据点赞者 ID 路由到对应分表
func RouteByLikerID(likerID int64) int {
	idx := likerID % LogTableCount
	if idx < 0 {
		idx += LogTableCount
	}
	return int(idx)
}

func logTableName(tableIndex int) string {
	return fmt.Sprintf("like_logs_%d", tableIndex)
}

func (r *ShardedLikeLogRepository) Insert(ctx context.Context, entry *model.LikeLog) error {
	table := logTableName(RouteByLikerID(entry.LikerID))
	return r.db.WithContext(ctx).Table(table).Create(entry).Error
}

// BatchInsert 先按分表分组，再逐表批量写入
func (r *ShardedLikeLogRepository) BatchInsert(ctx context.Context, entries []*model.LikeLog) error {
	if len(entries) == 0 {
		return nil
	}
	groups := make(map[int][]*model.LikeLog)
	for _, e := range entries {
		idx := RouteByLikerID(e.LikerID)
		groups[idx] = append(groups[idx], e)
	}
	for idx, group := range groups {
		if err := r.db.WithContext(ctx).Table(logTableName(idx)).Create(&group).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count 并发统计所有分表
func (r *ShardedLikeLogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	errChan := make(chan error, LogTableCount)

	for tblIdx := 0; tblIdx < LogTableCount; tblIdx++ {
		wg.Add(1)
		go func(ti int) {
			defer wg.Done()

			var count int64
			err := r.db.WithContext(ctx).
				Table(logTableName(ti)).
				Count(&count).Error
			if err != nil {
				errChan <- err
				return
			}

			mu.Lock()
			total += count
			mu.Unlock()
		}(tblIdx)
	}

	wg.Wait()
	close(errChan)

	if len(errChan) > 0 {
		return 0, <-errChan
	}
	return total, nil
}

// InitSchema 初始化所有分表结构
func (r *ShardedLikeLogRepository) InitSchema() error {
	for tblIdx := 0; tblIdx < LogTableCount; tblIdx++ {
		table := logTableName(tblIdx)
		if err := r.db.Table(table).AutoMigrate(&model.LikeLog{}); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", table, err)
		}
	}
	return nil
}
