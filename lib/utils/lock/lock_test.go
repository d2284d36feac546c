package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func keyCount() int {
	keyLocksMu.Lock()
	defer keyLocksMu.Unlock()
	return len(keyLocks)
}

func TestWithDelay(t *testing.T) {
	t.Run(`serializes by key`, func(t *testing.T) {
		counter := 0
		wg := sync.WaitGroup{}
		for n := 0; n < 20; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := WithDelay(context.Background(), "counter", time.Second*5, func() error {
					value := counter
					time.Sleep(time.Millisecond)
					counter = value + 1
					return nil
				})
				require.True(t, ok)
				require.Nil(t, err)
			}()
		}
		wg.Wait()
		require.Equal(t, 20, counter)
		require.Equal(t, 0, keyCount())
	})

	t.Run(`timeout`, func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "busy", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "busy", 20*time.Millisecond, func() error { return nil })
		require.False(t, ok)
		require.Nil(t, err)
		require.Equal(t, 1, keyCount())
		close(release)
		require.Eventually(t, func() bool { return keyCount() == 0 }, time.Second, 5*time.Millisecond)
	})
}

func TestResourceLock(t *testing.T) {
	t.Run(`acquire respects context`, func(t *testing.T) {
		res := NewResourceLock(1)
		require.True(t, res.Acquire(context.Background()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		require.False(t, res.Acquire(ctx))
		res.Release()
		require.True(t, res.Acquire(context.Background()))
	})
}
