package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestCacheLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.OrderListKey("principal-1")
	if err := client.Set(ctx, key, `[{"id":1}]`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `[{"id":1}]` {
		t.Fatalf("expected cached payload, got %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err != ErrCacheMiss {
		t.Fatalf("expected cache miss after del, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.OrderListKey("abc"); got != "sb:cache:orders:list:abc" {
		t.Fatalf("unexpected order list key %s", got)
	}
	if got := client.OrderDetailKey("abc", 42); got != "sb:cache:orders:detail:abc:42" {
		t.Fatalf("unexpected order detail key %s", got)
	}
	if got := client.AdminOrderListKey(); got != "sb:cache:admin:orders:list" {
		t.Fatalf("unexpected admin list key %s", got)
	}
	if got := client.AdminOrderDetailKey(42); got != "sb:cache:admin:orders:detail:42" {
		t.Fatalf("unexpected admin detail key %s", got)
	}
	if got := client.ProfileKey("abc"); got != "sb:cache:profile:abc" {
		t.Fatalf("unexpected profile key %s", got)
	}
	if got := client.RoleKey("abc"); got != "sb:cache:role:abc" {
		t.Fatalf("unexpected role key %s", got)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
