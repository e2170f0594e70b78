package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-interaction/internal/model"
)

// countingLogRepo 记录每次 BatchInsert 的分块大小
type countingLogRepo struct {
	mu         sync.Mutex
	chunkSizes []int
	total      int
	failAtCall int // 第 n 次调用返回错误，0 表示不失败
	calls      int
}

func (r *countingLogRepo) Insert(_ context.Context, _ *model.LikeLog) error { return nil }

func (r *countingLogRepo) BatchInsert(_ context.Context, entries []*model.LikeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.chunkSizes = append(r.chunkSizes, len(entries))
	r.total += len(entries)
	if r.failAtCall > 0 && r.calls == r.failAtCall {
		return errors.New("chunk write failed")
	}
	return nil
}

func (r *countingLogRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.total), nil
}

func makeEntries(n int) []*model.LikeLog {
	entries := make([]*model.LikeLog, n)
	now := time.Now()
	for i := range entries {
		entries[i] = &model.LikeLog{LikerID: int64(i), TargetID: 1, CreatedTime: now}
	}
	return entries
}

func TestBatchInsert_EmptyListSkipsStorage(t *testing.T) {
	repo := &countingLogRepo{}
	svc := NewLogIngestService(repo, 1000)

	require.NoError(t, svc.BatchInsert(context.Background(), nil))
	require.NoError(t, svc.BatchInsert(context.Background(), []*model.LikeLog{}))
	assert.Zero(t, repo.calls)
}

func TestBatchInsert_AllNilListSkipsStorage(t *testing.T) {
	repo := &countingLogRepo{}
	svc := NewLogIngestService(repo, 1000)

	require.NoError(t, svc.BatchInsert(context.Background(), []*model.LikeLog{nil, nil, nil}))
	assert.Zero(t, repo.calls)
}

func TestBatchInsert_ChunkSizes(t *testing.T) {
	cases := []struct {
		name       string
		entries    int
		wantChunks []int
	}{
		{"exactly one batch", 1000, []int{1000}},
		{"one over", 1001, []int{1000, 1}},
		{"several batches", 2500, []int{1000, 1000, 500}},
		{"small list", 7, []int{7}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &countingLogRepo{}
			svc := NewLogIngestService(repo, 1000)

			require.NoError(t, svc.BatchInsert(context.Background(), makeEntries(tc.entries)))

			assert.Equal(t, len(tc.wantChunks), repo.calls)
			assert.ElementsMatch(t, tc.wantChunks, repo.chunkSizes)
			assert.Equal(t, tc.entries, repo.total)
		})
	}
}

func TestBatchInsert_NilEntriesFilteredBeforeChunking(t *testing.T) {
	repo := &countingLogRepo{}
	svc := NewLogIngestService(repo, 3)

	entries := makeEntries(4)
	entries = append(entries, nil, nil)
	// 4 条有效，batch=3 => 两个分块 3+1
	require.NoError(t, svc.BatchInsert(context.Background(), entries))
	assert.ElementsMatch(t, []int{3, 1}, repo.chunkSizes)
}

func TestBatchInsert_FailedChunkPropagatesAfterJoin(t *testing.T) {
	repo := &countingLogRepo{failAtCall: 2}
	svc := NewLogIngestService(repo, 1000)

	err := svc.BatchInsert(context.Background(), makeEntries(2500))
	require.Error(t, err)

	// 失败不取消兄弟分块：三个分块都已执行
	assert.Equal(t, 3, repo.calls)
}
