package counter

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `return redis.call('INCR', KEYS[1])`

func setupScripter(t *testing.T) Scripter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisScripter(client)
}

func TestRedisScripter_LoadAndEval(t *testing.T) {
	s := setupScripter(t)
	ctx := context.Background()

	sha, err := s.Load(ctx, testScript)
	require.NoError(t, err)
	require.NotEmpty(t, sha)

	n, err := s.EvalSHA(ctx, sha, []string{"k"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.EvalSHA(ctx, sha, []string{"k"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRedisScripter_UnknownSHAIsErrNoScript(t *testing.T) {
	s := setupScripter(t)

	_, err := s.EvalSHA(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", []string{"k"})
	require.ErrorIs(t, err, ErrNoScript)
}
