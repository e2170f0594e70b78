package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-interaction/internal/counter"
	"github.com/d60-Lab/social-interaction/pkg/logger"
)

// RiskService 风控：统计用户敏感操作频次，超阈值返回 true。
// 引擎只负责判定，拉黑动作由调用方执行；计数只增不减。
type RiskService interface {
	CheckSensitiveBehavior(ctx context.Context, userID int64) (bool, error)
}

const userOperationPrefix = "user:operation:"

// 自增、首增设置过期、阈值比较必须在同一次脚本执行内完成，
// 并发调用方不能观察到"已自增未设 TTL"的中间态。
const counterScript = `local cnt = redis.call('INCR', KEYS[1])
if cnt == 1 then redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1])) end
if cnt >= tonumber(ARGV[2]) then return 1 else return 0 end`

type riskService struct {
	store         counter.Scripter
	expireSeconds int
	limitCount    int64

	// sha 是进程内唯一的可变共享状态，读写都在锁内
	mu  sync.Mutex
	sha string
}

func NewRiskService(store counter.Scripter, expireSeconds int, limitCount int64) RiskService {
	return &riskService{store: store, expireSeconds: expireSeconds, limitCount: limitCount}
}

func (s *riskService) CheckSensitiveBehavior(ctx context.Context, userID int64) (bool, error) {
	key := userOperationPrefix + strconv.FormatInt(userID, 10)
	args := []interface{}{
		strconv.Itoa(s.expireSeconds),
		strconv.FormatInt(s.limitCount, 10),
	}

	sha, err := s.scriptSHA(ctx)
	if err != nil {
		return false, err
	}

	result, err := s.store.EvalSHA(ctx, sha, []string{key}, args...)
	if errors.Is(err, counter.ErrNoScript) {
		// 存储端脚本缓存被清空（如重启），重新注册后重试一次
		logger.Warn("counter script evicted, reloading", zap.String("sha", sha))
		sha, err = s.reloadScript(ctx)
		if err != nil {
			return false, err
		}
		result, err = s.store.EvalSHA(ctx, sha, []string{key}, args...)
	}
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func (s *riskService) scriptSHA(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sha != "" {
		return s.sha, nil
	}
	sha, err := s.store.Load(ctx, counterScript)
	if err != nil {
		return "", err
	}
	s.sha = sha
	return sha, nil
}

func (s *riskService) reloadScript(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sha, err := s.store.Load(ctx, counterScript)
	if err != nil {
		return "", err
	}
	s.sha = sha
	return sha, nil
}
