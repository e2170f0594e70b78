package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-interaction/internal/counter"
)

func setupRisk(t *testing.T, expireSeconds int, limit int64) (RiskService, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRiskService(counter.NewRedisScripter(client), expireSeconds, limit), mr, client
}

func TestCheckSensitiveBehavior_BelowLimit(t *testing.T) {
	svc, _, _ := setupRisk(t, 600, 5)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		hit, err := svc.CheckSensitiveBehavior(ctx, 1)
		require.NoError(t, err)
		require.False(t, hit, "call %d should stay below the limit", i+1)
	}
}

func TestCheckSensitiveBehavior_TriggersAtLimit(t *testing.T) {
	svc, _, _ := setupRisk(t, 600, 5)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		hit, err := svc.CheckSensitiveBehavior(ctx, 2)
		require.NoError(t, err)
		require.False(t, hit)
	}

	hit, err := svc.CheckSensitiveBehavior(ctx, 2)
	require.NoError(t, err)
	require.True(t, hit, "the call reaching the limit must report a hit")

	// 超过阈值之后继续命中
	hit, err = svc.CheckSensitiveBehavior(ctx, 2)
	require.NoError(t, err)
	require.True(t, hit)
}

func TestCheckSensitiveBehavior_UsersCountedIndependently(t *testing.T) {
	svc, mr, _ := setupRisk(t, 600, 100)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := svc.CheckSensitiveBehavior(ctx, 3)
		require.NoError(t, err)
	}
	_, err := svc.CheckSensitiveBehavior(ctx, 4)
	require.NoError(t, err)

	require.Equal(t, "50", mustGet(t, mr, "user:operation:3"))
	require.Equal(t, "1", mustGet(t, mr, "user:operation:4"))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestCheckSensitiveBehavior_CounterResetsAfterTTL(t *testing.T) {
	svc, mr, _ := setupRisk(t, 10, 3)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		hit, err := svc.CheckSensitiveBehavior(ctx, 5)
		require.NoError(t, err)
		require.False(t, hit)
	}

	mr.FastForward(11 * time.Second)

	hit, err := svc.CheckSensitiveBehavior(ctx, 5)
	require.NoError(t, err)
	require.False(t, hit, "counter must restart at 1 after the window expires")
	require.Equal(t, "1", mustGet(t, mr, "user:operation:5"))
}

func TestCheckSensitiveBehavior_ReloadsEvictedScript(t *testing.T) {
	svc, _, client := setupRisk(t, 600, 100)
	ctx := context.Background()

	_, err := svc.CheckSensitiveBehavior(ctx, 6)
	require.NoError(t, err)

	// 模拟存储端重启清空脚本缓存
	require.NoError(t, client.ScriptFlush(ctx).Err())

	hit, err := svc.CheckSensitiveBehavior(ctx, 6)
	require.NoError(t, err)
	require.False(t, hit)

	cnt, err := client.Get(ctx, fmt.Sprintf("user:operation:%d", 6)).Int64()
	require.NoError(t, err)
	require.EqualValues(t, 2, cnt, "the retried eval must still increment exactly once")
}
