package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-interaction/internal/model"
	"github.com/d60-Lab/social-interaction/pkg/logger"
)

// AuditBuffer 异步审计缓冲：流水先进内存队列，worker 攒批后经批量写入落库。
// 队列满时丢弃并告警，流水是尽力而为的旁路，不阻塞主链路。
type AuditBuffer struct {
	ingest     LogIngestService
	ch         chan *model.LikeLog
	flushSize  int
	flushEvery time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

func NewAuditBuffer(ingest LogIngestService, queueSize, flushSize int, flushEvery time.Duration) *AuditBuffer {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if flushSize <= 0 {
		flushSize = defaultBatchSize
	}
	if flushEvery <= 0 {
		flushEvery = time.Second
	}
	return &AuditBuffer{
		ingest:     ingest,
		ch:         make(chan *model.LikeLog, queueSize),
		flushSize:  flushSize,
		flushEvery: flushEvery,
		stopCh:     make(chan struct{}),
	}
}

// Start 启动 workers 个消费协程
func (b *AuditBuffer) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.loop()
	}
}

func (b *AuditBuffer) loop() {
	defer b.wg.Done()
	buf := make([]*model.LikeLog, 0, b.flushSize)
	ticker := time.NewTicker(b.flushEvery)
	defer ticker.Stop()

	flush := func() {
		if len(buf) == 0 {
			return
		}
		if err := b.ingest.BatchInsert(context.Background(), buf); err != nil {
			logger.Error("audit flush failed", zap.Int("entries", len(buf)), zap.Error(err))
		}
		buf = buf[:0]
	}

	for {
		select {
		case entry := <-b.ch:
			buf = append(buf, entry)
			if len(buf) >= b.flushSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-b.stopCh:
			// 停机前排空队列
			for {
				select {
				case entry := <-b.ch:
					buf = append(buf, entry)
					if len(buf) >= b.flushSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Append 入队；队列满则丢弃该条并告警
func (b *AuditBuffer) Append(_ context.Context, entry *model.LikeLog) error {
	select {
	case b.ch <- entry:
	default:
		logger.Warn("audit queue full, drop entry",
			zap.Int64("liker", entry.LikerID), zap.Int64("target", entry.TargetID))
	}
	return nil
}

// Stop 通知 worker 退出并等待排空
func (b *AuditBuffer) Stop() {
	close(b.stopCh)
	b.wg.Wait()
}
