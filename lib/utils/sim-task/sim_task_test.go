package simtask

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

func TestRunner(t *testing.T) {
	t.Run(`reports progress up to 100`, func(t *testing.T) {
		runner := NewRunner(4, 0)
		progress := []int{}
		err := runner.Run(context.Background(), func(percent int) {
			progress = append(progress, percent)
		})
		require.Nil(t, err)
		require.Equal(t, []int{0, 25, 50, 75, 100}, progress)
	})

	t.Run(`stops on cancel`, func(t *testing.T) {
		runner := NewRunner(100, 10*time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		last := 0
		go func() {
			time.Sleep(25 * time.Millisecond)
			cancel()
		}()
		err := runner.Run(ctx, func(percent int) { last = percent })
		require.ErrorIs(t, err, context.Canceled)
		require.Less(t, last, 100)
	})

	t.Run(`step error`, func(t *testing.T) {
		runner := NewRunner(3, 0)
		runner.Step = func(ctx context.Context, step int) error {
			if step == 2 {
				return errors.New("boom")
			}
			return nil
		}
		err := runner.Run(context.Background(), nil)
		require.Equal(t, "ошибка на шаге 2: boom", err.Error())
	})
}

func TestRegistry(t *testing.T) {
	t.Run(`done task`, func(t *testing.T) {
		registry := NewRegistry(nil)
		id := registry.Start(context.Background(), models.TaskKindEvaluation, func(ctx context.Context, taskID string) error {
			registry.SetProgress(taskID, 40)
			registry.Update(taskID, func(task *dbmodels.EvaluationTask) {
				task.Evaluation = &dbmodels.EvaluationResult{OverallScore: 77}
			})
			return nil
		})
		<-registry.Done(id)
		task, ok := registry.Get(id)
		require.True(t, ok)
		require.Equal(t, models.TaskStatusDone, task.Status)
		require.Equal(t, 100, task.Progress)
		require.Equal(t, 77, task.Evaluation.OverallScore)
		require.ErrorIs(t, registry.Cancel(id), ErrTaskFinished)

		registry.mu.Lock()
		require.Empty(t, registry.done)
		require.Empty(t, registry.cancels)
		registry.mu.Unlock()
		<-registry.Done(id)
	})

	t.Run(`complete after cancel is refused`, func(t *testing.T) {
		registry := NewRegistry(nil)
		cancelled := make(chan struct{})
		completed := make(chan bool, 1)
		id := registry.Start(context.Background(), models.TaskKindEvaluation, func(ctx context.Context, taskID string) error {
			<-cancelled
			completed <- registry.Complete(taskID, func(task *dbmodels.EvaluationTask) {
				task.Evaluation = &dbmodels.EvaluationResult{OverallScore: 50}
			})
			return context.Canceled
		})
		require.Nil(t, registry.Cancel(id))
		close(cancelled)
		<-registry.Done(id)
		require.False(t, <-completed)
		task, _ := registry.Get(id)
		require.Equal(t, models.TaskStatusCancelled, task.Status)
		require.Nil(t, task.Evaluation)
	})

	t.Run(`failed task`, func(t *testing.T) {
		registry := NewRegistry(nil)
		id := registry.Start(context.Background(), models.TaskKindBulkParse, func(ctx context.Context, taskID string) error {
			return errors.New("storage unavailable")
		})
		<-registry.Done(id)
		task, _ := registry.Get(id)
		require.Equal(t, models.TaskStatusFailed, task.Status)
		require.Equal(t, "storage unavailable", task.Error)
	})

	t.Run(`panic is failure`, func(t *testing.T) {
		registry := NewRegistry(nil)
		id := registry.Start(context.Background(), models.TaskKindEvaluation, func(ctx context.Context, taskID string) error {
			panic("unexpected")
		})
		<-registry.Done(id)
		task, _ := registry.Get(id)
		require.Equal(t, models.TaskStatusFailed, task.Status)
	})

	t.Run(`cancel running task`, func(t *testing.T) {
		registry := NewRegistry(nil)
		started := make(chan struct{})
		id := registry.Start(context.Background(), models.TaskKindEvaluation, func(ctx context.Context, taskID string) error {
			close(started)
			<-ctx.Done()
			registry.SetProgress(taskID, 90)
			return ctx.Err()
		})
		<-started
		require.Nil(t, registry.Cancel(id))
		<-registry.Done(id)
		task, _ := registry.Get(id)
		require.Equal(t, models.TaskStatusCancelled, task.Status)
		require.Equal(t, 0, task.Progress)
		require.ErrorIs(t, registry.Cancel("missing"), ErrNotFound)
	})

	t.Run(`parent context stops tasks`, func(t *testing.T) {
		registry := NewRegistry(nil)
		ctx, cancel := context.WithCancel(context.Background())
		wg := sync.WaitGroup{}
		ids := []string{}
		for n := 0; n < 3; n++ {
			ids = append(ids, registry.Start(ctx, models.TaskKindEvaluation, func(ctx context.Context, taskID string) error {
				return NewRunner(1000, 5*time.Millisecond).Run(ctx, func(percent int) {
					registry.SetProgress(taskID, percent)
				})
			}))
		}
		cancel()
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				<-registry.Done(id)
			}(id)
		}
		wg.Wait()
		for _, id := range ids {
			task, _ := registry.Get(id)
			require.Equal(t, models.TaskStatusCancelled, task.Status)
		}
	})
}
