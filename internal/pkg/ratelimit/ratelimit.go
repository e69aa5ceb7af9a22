// Package ratelimit provides per-key request limiting for inbound routes.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/moodify/core/internal/pkg/redis"
	"golang.org/x/time/rate"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Keyed is an in-process token bucket per key.
type Keyed struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps per key with the given burst.
// Buckets idle for longer than ten minutes are evicted.
func New(rps float64, burst int) *Keyed {
	k := &Keyed{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		done:     make(chan struct{}),
	}
	go k.cleanup(time.Minute)
	return k
}

func (k *Keyed) Allow(_ context.Context, key string) bool {
	return k.get(key).Allow()
}

func (k *Keyed) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Stop shuts down the cleanup goroutine.
func (k *Keyed) Stop() {
	k.stopOnce.Do(func() { close(k.done) })
}

func (k *Keyed) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-k.done:
			return
		case now := <-ticker.C:
			k.evict(now)
		}
	}
}

func (k *Keyed) evict(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, e := range k.limiters {
		if now.Sub(e.lastSeen) > k.idleTTL {
			delete(k.limiters, key)
		}
	}
}

func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// Window is a fixed one-second window counter shared through redis, so the
// limit holds across server instances.
type Window struct {
	client *redis.Client
	prefix string
	max    int64
}

// NewWindow allows rps requests plus burst per second per key.
func NewWindow(client *redis.Client, prefix string, rps float64, burst int) *Window {
	return &Window{
		client: client,
		prefix: prefix,
		max:    int64(math.Ceil(rps)) + int64(burst),
	}
}

// Allow fails open when redis is unreachable.
func (w *Window) Allow(ctx context.Context, key string) bool {
	redisKey := fmt.Sprintf("%s:%s:%d", w.prefix, key, time.Now().Unix())
	count, err := w.client.IncrWindow(ctx, redisKey, time.Second)
	if err != nil {
		return true
	}
	return count <= w.max
}
