package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMutualExclusion(t *testing.T, locker GenerationLocker) {
	t.Helper()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), "editorial:1")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestKeyedMutexSerialisesSameKey(t *testing.T) {
	assertMutualExclusion(t, NewKeyedMutex())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	locker := NewKeyedMutex()
	releaseA, err := locker.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := locker.Acquire(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestKeyedMutexHonoursContext(t *testing.T) {
	locker := NewKeyedMutex()
	release, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()
	again, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)
	again()
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLockerSerialisesSameKey(t *testing.T) {
	_, rdb := newTestRedis(t)
	locker := &redisLocker{rdb: rdb, ttl: time.Minute, pollInterval: 2 * time.Millisecond}
	assertMutualExclusion(t, locker)
}

func TestRedisLockerReleaseOnlyDeletesOwnToken(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisLocker(rdb, time.Minute)

	release, err := locker.Acquire(context.Background(), "article:42")
	require.NoError(t, err)
	assert.True(t, mr.Exists(lockKey("article:42")))

	// Simulate expiry and takeover by another holder.
	mr.Set(lockKey("article:42"), "someone-else")
	release()
	got, err := mr.Get(lockKey("article:42"))
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLockerTimesOutWhileHeld(t *testing.T) {
	_, rdb := newTestRedis(t)
	locker := &redisLocker{rdb: rdb, ttl: time.Minute, pollInterval: 5 * time.Millisecond}

	release, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "k")
	assert.Error(t, err)
}

func TestNewGenerationLockerFallsBackWithoutRedis(t *testing.T) {
	_, ok := NewGenerationLocker(nil, nil).(*keyedMutex)
	assert.True(t, ok)
}
