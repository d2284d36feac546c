package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`runs until cancelled and survives panic`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var runs int32
		done := make(chan struct{})
		go func() {
			NewInstance("test", 0, time.Millisecond).Run(ctx, func(ctx context.Context) {
				if atomic.AddInt32(&runs, 1) == 1 {
					panic("first run")
				}
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 3 }, time.Second, time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker not stopped")
		}
	})
}
