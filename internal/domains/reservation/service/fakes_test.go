package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	otelMocks "edurooms/infras/otel/mocks"
	"edurooms/internal/domains/reservation/event"
	"edurooms/shared/cache"
	"edurooms/shared/constant"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var errCacheMiss = errors.New("cache miss")

// missCache never holds anything, so every read goes to the repository.
type missCache struct{}

func (missCache) Save(context.Context, string, any, int) error          { return nil }
func (missCache) Get(context.Context, string, any) error                { return errCacheMiss }
func (missCache) Delete(context.Context, string) error                  { return nil }
func (missCache) Clear(context.Context, string) error                   { return nil }
func (missCache) Increment(context.Context, string, int) (int64, error) { return 1, nil }

// newRedisCache backs the cache with an in-process redis so cached reads survive between calls.
func newRedisCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, otelMocks.NewOtel()), server
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
}

func (p *recordingPublisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]event.Event(nil), p.events...)
}

func userContext(id int64, email, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}
