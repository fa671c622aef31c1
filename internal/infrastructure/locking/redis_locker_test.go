package locking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"orcafacil/internal/infrastructure/locking"
	"orcafacil/internal/infrastructure/logging"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestWithLock_Serializes(t *testing.T) {
	_, client := newClient(t)
	locker := locking.NewRedisLocker(client, "", time.Second, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var (
		mu     sync.Mutex
		order  []string
		wg     sync.WaitGroup
		inside = make(chan struct{})
		resume = make(chan struct{})
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := locker.WithLock(ctx, "orcamentos", func(context.Context) error {
			close(inside)
			<-resume
			mu.Lock()
			order = append(order, "first")
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}()

	<-inside
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := locker.WithLock(ctx, "orcamentos", func(context.Context) error {
			mu.Lock()
			order = append(order, "second")
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}()

	time.Sleep(20 * time.Millisecond)
	close(resume)
	wg.Wait()

	require.Equal(t, []string{"first", "second"}, order)
}

func TestWithLock_ReleasesAndPropagatesError(t *testing.T) {
	mr, client := newClient(t)
	locker := locking.NewRedisLocker(client, "", time.Second, logging.Discard())

	boom := errors.New("boom")
	err := locker.WithLock(context.Background(), "empresa_config", func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	require.False(t, mr.Exists("lock:empresa_config"))
}

func TestWithLock_Busy(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set("lock:orcamentos", "someone-else"))

	locker := locking.NewRedisLocker(client, "", 100*time.Millisecond, logging.Discard())
	called := false
	err := locker.WithLock(context.Background(), "orcamentos", func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, locking.ErrLockBusy)
	require.False(t, called)
}

func TestWithLock_PrefixIsolatesDeployments(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set("lock:prod:orcamentos", "prod-writer"))

	staging := locking.NewRedisLocker(client, "staging:", 100*time.Millisecond, logging.Discard())
	var seen []string
	err := staging.WithLock(context.Background(), "orcamentos", func(context.Context) error {
		seen = mr.Keys()
		return nil
	})
	require.NoError(t, err)
	require.Contains(t, seen, "lock:staging:orcamentos")
	require.False(t, mr.Exists("lock:staging:orcamentos"))

	prod := locking.NewRedisLocker(client, "prod:", 100*time.Millisecond, logging.Discard())
	err = prod.WithLock(context.Background(), "orcamentos", func(context.Context) error { return nil })
	require.ErrorIs(t, err, locking.ErrLockBusy)
}
