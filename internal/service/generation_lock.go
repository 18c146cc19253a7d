package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// GenerationLocker serialises question generation per content item so that
// concurrent first requests trigger a single upstream call.
type GenerationLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// NewGenerationLocker prefers redis so the lock holds across replicas.
func NewGenerationLocker(rdb *redis.Client, cfg *config.Config) GenerationLocker {
	if rdb == nil {
		return NewKeyedMutex()
	}
	return NewRedisLocker(rdb, cfg.Gemini.Timeout+15*time.Second)
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() GenerationLocker {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

func (k *keyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		k.unref(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			k.unref(key, entry)
		})
	}, nil
}

func (k *keyedMutex) unref(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type redisLocker struct {
	rdb          *redis.Client
	ttl          time.Duration
	pollInterval time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) GenerationLocker {
	return &redisLocker{rdb: rdb, ttl: ttl, pollInterval: 100 * time.Millisecond}
}

func lockKey(key string) string {
	return "lock:mcq-generation:" + key
}

func (r *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := lockKey(key)
	token := uuid.NewString()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		ok, err := r.rdb.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("acquire generation lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.rdb, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				log.Warn().Err(err).Str("key", redisKey).Msg("Failed to release generation lock")
			}
		})
	}, nil
}
