package store_test

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedHook answers single commands locally and fails every pipeline,
// recording the command names it sees.
type scriptedHook struct {
	mu       sync.Mutex
	commands []string
}

func (h *scriptedHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *scriptedHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		h.record(cmd.Name())

		if boolCmd, ok := cmd.(*redis.BoolCmd); ok {
			boolCmd.SetVal(true)
		}

		return nil
	}
}

func (h *scriptedHook) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(context.Context, []redis.Cmder) error {
		return errors.New("connection reset")
	}
}

func (h *scriptedHook) record(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.commands = append(h.commands, name)
}

func (h *scriptedHook) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.commands...)
}

func TestRedisStore_Save_ReleasesClaimOnWriteFailure(t *testing.T) {
	hook := &scriptedHook{}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })

	s := store.NewRedisStore(client, 0)

	err := s.Save(context.Background(), record("orphan1", time.Now()))

	require.Error(t, err)
	assert.Equal(t, []string{"hsetnx", "del", "zrem"}, hook.seen())
}
