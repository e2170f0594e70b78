package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
	"github.com/d60-Lab/social-interaction/internal/repository"
	"github.com/d60-Lab/social-interaction/internal/service"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	ctx := context.Background()

	N := 100000
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}
	BATCH := 1000
	if s := os.Getenv("BATCH"); s != "" {
		if b, err := strconv.Atoi(s); err == nil && b > 0 {
			BATCH = b
		}
	}

	entries := make([]*model.LikeLog, N)
	now := time.Now()
	for i := 0; i < N; i++ {
		entries[i] = &model.LikeLog{
			LikerID:     int64(i % 5000),
			TargetID:    int64(i % 7000),
			Status:      int16(i % 2),
			CreatedTime: now,
		}
	}

	// 共享缓存的内存库：分块并发写会用到连接池里的多个连接
	// single table
	{
		db := must(gorm.Open(sqlite.Open("file:ingest_single?mode=memory&cache=shared"), &gorm.Config{}))
		if err := db.AutoMigrate(&model.LikeLog{}); err != nil {
			panic(err)
		}
		repo := repository.NewLikeLogRepository(db)
		ingest := service.NewLogIngestService(repo, BATCH)

		start := time.Now()
		if err := ingest.BatchInsert(ctx, entries); err != nil {
			panic(err)
		}
		elapsed := time.Since(start)

		count := must(repo.Count(ctx))
		fmt.Printf("%-14s n=%d batch=%d rows=%d elapsed=%v rate=%.0f/s\n",
			"single table", N, BATCH, count, elapsed, float64(N)/elapsed.Seconds())
	}

	// sharded tables
	{
		db := must(gorm.Open(sqlite.Open("file:ingest_sharded?mode=memory&cache=shared"), &gorm.Config{}))
		repo := repository.NewShardedLikeLogRepository(db)
		if err := repo.InitSchema(); err != nil {
			panic(err)
		}
		ingest := service.NewLogIngestService(repo, BATCH)

		start := time.Now()
		if err := ingest.BatchInsert(ctx, entries); err != nil {
			panic(err)
		}
		elapsed := time.Since(start)

		count := must(repo.Count(ctx))
		fmt.Printf("%-14s n=%d batch=%d rows=%d elapsed=%v rate=%.0f/s shards=%d\n",
			"sharded", N, BATCH, count, elapsed, float64(N)/elapsed.Seconds(), repository.LogTableCount)
	}
}
