package simtask

import (
	"context"
	"hr-dashboard-backend/lib/memdb"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"runtime/debug"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("задача не найдена")
	ErrTaskFinished = errors.New("задача уже завершена")
)

// TaskFunc тело фоновой задачи. Результат сохраняется через Registry.Update.
type TaskFunc func(ctx context.Context, taskID string) error

// Registry хранит состояние фоновых задач и функции их отмены
type Registry struct {
	tasks *memdb.Table[dbmodels.EvaluationTask]
	now   func() time.Time

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	done    map[string]chan struct{}
}

func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		tasks:   memdb.NewTable(func(rec dbmodels.EvaluationTask) string { return rec.ID }, cloneTask),
		now:     now,
		cancels: map[string]context.CancelFunc{},
		done:    map[string]chan struct{}{},
	}
}

// Start регистрирует задачу и запускает ее в отдельной горутине.
// Задача останавливается при отмене parent или вызове Cancel.
func (r *Registry) Start(parent context.Context, kind models.TaskKind, fn TaskFunc) string {
	now := r.now()
	id := memdb.NewID()
	r.tasks.Insert(dbmodels.EvaluationTask{
		ID:        id,
		Kind:      kind,
		Status:    models.TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	r.mu.Lock()
	r.cancels[id] = cancel
	r.done[id] = done
	r.mu.Unlock()

	go r.run(ctx, id, fn, done)
	return id
}

func (r *Registry) run(ctx context.Context, id string, fn TaskFunc, done chan struct{}) {
	logger := log.WithField("task_id", id)
	defer func() {
		r.mu.Lock()
		if cancel, ok := r.cancels[id]; ok {
			cancel()
			delete(r.cancels, id)
		}
		delete(r.done, id)
		r.mu.Unlock()
		close(done)
	}()
	r.setStatus(id, models.TaskStatusRunning, "")
	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithField("panic_stack", string(debug.Stack())).Errorf("panic: (%v)", rec)
				err = errors.Errorf("panic: %v", rec)
			}
		}()
		return fn(ctx, id)
	}()
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		logger.Info("задача отменена")
		r.setStatus(id, models.TaskStatusCancelled, "")
	case err != nil:
		logger.WithError(err).Error("задача завершилась с ошибкой")
		r.setStatus(id, models.TaskStatusFailed, err.Error())
	default:
		r.Complete(id, nil)
	}
}

func (r *Registry) Get(id string) (dbmodels.EvaluationTask, bool) {
	return r.tasks.Get(id)
}

// Find задачи, удовлетворяющие условию, в порядке запуска
func (r *Registry) Find(match func(task dbmodels.EvaluationTask) bool) []dbmodels.EvaluationTask {
	return r.tasks.Find(match)
}

// Update изменяет незавершенную задачу
func (r *Registry) Update(id string, fn func(task *dbmodels.EvaluationTask)) bool {
	return r.tasks.Update(id, func(task *dbmodels.EvaluationTask) {
		if task.Status.IsFinished() {
			return
		}
		fn(task)
		task.UpdatedAt = r.now()
	})
}

func (r *Registry) SetProgress(id string, percent int) {
	r.Update(id, func(task *dbmodels.EvaluationTask) {
		if percent > task.Progress {
			task.Progress = percent
		}
	})
}

// Complete сохраняет результат и завершает задачу одной операцией.
// Возвращает false, если задача уже отменена или завершена.
func (r *Registry) Complete(id string, fn func(task *dbmodels.EvaluationTask)) bool {
	completed := false
	r.tasks.Update(id, func(task *dbmodels.EvaluationTask) {
		if task.Status.IsFinished() {
			return
		}
		if fn != nil {
			fn(task)
		}
		task.Progress = 100
		task.Status = models.TaskStatusDone
		task.Error = ""
		task.UpdatedAt = r.now()
		completed = true
	})
	return completed
}

// Cancel отменяет выполняющуюся задачу, статус меняется сразу
func (r *Registry) Cancel(id string) error {
	finished := false
	found := r.tasks.Update(id, func(task *dbmodels.EvaluationTask) {
		if task.Status.IsFinished() {
			finished = true
			return
		}
		task.Status = models.TaskStatusCancelled
		task.Error = ""
		task.UpdatedAt = r.now()
	})
	if !found {
		return ErrNotFound
	}
	if finished {
		return ErrTaskFinished
	}
	r.mu.Lock()
	cancel, ok := r.cancels[id]
	r.mu.Unlock()
	if ok {
		cancel()
	}
	return nil
}

// Done закрывается после завершения горутины задачи.
// Для завершенной или неизвестной задачи канал уже закрыт.
func (r *Registry) Done(id string) <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	done, ok := r.done[id]
	if !ok {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return done
}

func (r *Registry) setStatus(id string, status models.TaskStatus, errText string) {
	r.Update(id, func(task *dbmodels.EvaluationTask) {
		task.Status = status
		task.Error = errText
	})
}

func cloneTask(task dbmodels.EvaluationTask) dbmodels.EvaluationTask {
	if task.Evaluation != nil {
		evaluation := *task.Evaluation
		evaluation.MatchedSkills = append([]string(nil), evaluation.MatchedSkills...)
		evaluation.Strengths = append([]string(nil), evaluation.Strengths...)
		evaluation.Gaps = append([]string(nil), evaluation.Gaps...)
		task.Evaluation = &evaluation
	}
	if task.BulkParse != nil {
		task.BulkParse = append([]dbmodels.ParsedCV(nil), task.BulkParse...)
	}
	return task
}
