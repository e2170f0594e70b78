package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/cacheperf"
	"github.com/d60-Lab/social-interaction/internal/model"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=postgres port=5432 sslmode=disable"
	}
	db := must(gorm.Open(postgres.Open(dsn), &gorm.Config{}))

	mustDo(db.Exec("DROP TABLE IF EXISTS visits CASCADE").Error)
	mustDo(db.Exec("DROP TABLE IF EXISTS users CASCADE").Error)
	mustDo(db.AutoMigrate(&model.User{}, &model.Visit{}))

	const (
		visitorCount = 5000
		visitCount   = 50000
		pageSize     = 10
	)

	fmt.Println("Setting up test data...")
	target := model.User{Name: "target", Gender: model.GenderWoman}
	mustDo(db.Create(&target).Error)

	visitors := make([]model.User, visitorCount)
	for i := range visitors {
		visitors[i] = model.User{
			Name:   fmt.Sprintf("user_%d", i),
			Job:    "engineer",
			Gender: model.Gender(int16(i % 2)),
		}
	}
	mustDo(db.CreateInBatches(&visitors, 1000).Error)

	base := time.Now()
	visits := make([]model.Visit, visitCount)
	for i := range visits {
		visits[i] = model.Visit{
			VisitorID:   visitors[rand.Intn(visitorCount)].ID,
			TargetID:    target.ID,
			VisitedTime: base.Add(-time.Duration(rand.Intn(720)) * time.Hour),
		}
	}
	mustDo(db.CreateInBatches(&visits, 1000).Error)
	fmt.Printf("Test data ready: %d visits from %d visitors\n", visitCount, visitorCount)

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis at %s: %v", redisAddr, err))
	}

	svc := cacheperf.NewVisitorPageService(db, client, 10*time.Minute)
	since := base.AddDate(0, -1, 0)

	const reqs = 3000

	noCache := runScenario(ctx, svc, client, reqs, func(ctx context.Context) error {
		_, err := svc.FetchVisitorsNoCache(ctx, target.ID, since, pageSize)
		return err
	})
	snapshot := runScenario(ctx, svc, client, reqs, func(ctx context.Context) error {
		_, err := svc.FetchVisitorsSnapshotCache(ctx, target.ID, since, pageSize)
		return err
	})

	fmt.Printf("\nVisitors page latency (%d req, %d visits, PostgreSQL + Redis)\n", reqs, visitCount)
	fmt.Printf("%-18s avg=%v p95=%v p99=%v db_page=%d db_user_bulk=%d\n",
		"No cache", avg(noCache.durations), pct(noCache.durations, 0.95), pct(noCache.durations, 0.99),
		noCache.counters.PageQueries, noCache.counters.UserBulkLoad)
	fmt.Printf("%-18s avg=%v p95=%v p99=%v db_page=%d db_user_bulk=%d\n",
		"Snapshot cache", avg(snapshot.durations), pct(snapshot.durations, 0.95), pct(snapshot.durations, 0.99),
		snapshot.counters.PageQueries, snapshot.counters.UserBulkLoad)
}

type scenarioResult struct {
	durations []time.Duration
	counters  cacheperf.VisitorDBCounters
}

func runScenario(ctx context.Context, svc *cacheperf.VisitorPageService, client *redis.Client, reqs int, call func(context.Context) error) scenarioResult {
	client.FlushAll(ctx)
	svc.ResetCounters()

	fmt.Print("  Running benchmark...")
	out := make([]time.Duration, 0, reqs)
	for i := 0; i < reqs; i++ {
		start := time.Now()
		if err := call(ctx); err != nil {
			panic(err)
		}
		out = append(out, time.Since(start))
	}
	fmt.Println(" done")

	return scenarioResult{durations: out, counters: svc.Counters()}
}

func avg(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}

func pct(ds []time.Duration, p float64) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(ds))
	copy(sorted, ds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
