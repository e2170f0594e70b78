// Package counter wraps the remote atomic counter store used by risk control.
package counter

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNoScript 表示缓存的脚本标识已失效（如存储端重启后脚本缓存被清空）
var ErrNoScript = errors.New("counter: script not found in store")

// Scripter 计数存储端口：按缓存标识执行原子脚本 / 注册脚本。
// 计数的自增、过期、阈值比较必须在一次脚本执行内完成。
type Scripter interface {
	// EvalSHA 按标识执行脚本，返回整数结果；标识失效时返回 ErrNoScript
	EvalSHA(ctx context.Context, sha string, keys []string, args ...interface{}) (int64, error)

	// Load 注册脚本并返回其标识
	Load(ctx context.Context, script string) (string, error)
}

type redisScripter struct {
	client *redis.Client
}

// NewRedisScripter 基于 go-redis 客户端构造 Scripter
func NewRedisScripter(client *redis.Client) Scripter {
	return &redisScripter{client: client}
}

func (s *redisScripter) EvalSHA(ctx context.Context, sha string, keys []string, args ...interface{}) (int64, error) {
	result, err := s.client.EvalSha(ctx, sha, keys, args...).Int64()
	if err != nil {
		if redis.HasErrorPrefix(err, "NOSCRIPT") {
			return 0, ErrNoScript
		}
		return 0, err
	}
	return result, nil
}

func (s *redisScripter) Load(ctx context.Context, script string) (string, error) {
	return s.client.ScriptLoad(ctx, script).Result()
}
