package boardtask

import (
	"context"
	"encoding/json"
	boardtaskstore "hr-dashboard-backend/lib/board-task/store"
	"hr-dashboard-backend/lib/memdb"
	"hr-dashboard-backend/lib/utils/lock"
	boardtaskapimodels "hr-dashboard-backend/models/api/board-task"
	dbmodels "hr-dashboard-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("задача не найдена")
	ErrEmptyTitle   = errors.New("не указано название задачи")
	ErrNoSession    = errors.New("не указан идентификатор сессии")
	ErrSessionBusy  = errors.New("сессия занята, повторите запрос")
	sessionLockWait = 2 * time.Second
)

type Provider interface {
	List(sessionID string) ([]dbmodels.BoardTask, error)
	Replace(sessionID string, tasks []dbmodels.BoardTask) ([]dbmodels.BoardTask, error)
	Add(sessionID string, data boardtaskapimodels.BoardTaskData) (dbmodels.BoardTask, error)
	Toggle(sessionID, taskID string) (dbmodels.BoardTask, error)
	Delete(sessionID, taskID string) error
}

var Instance Provider

func NewHandler(store boardtaskstore.Provider) {
	Instance = NewInstance(store, time.Now)
}

func NewInstance(store boardtaskstore.Provider, now func() time.Time) Provider {
	return &impl{
		store: store,
		now:   now,
	}
}

type impl struct {
	store boardtaskstore.Provider
	now   func() time.Time
}

func (i impl) List(sessionID string) ([]dbmodels.BoardTask, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrNoSession
	}
	return i.load(sessionID)
}

func (i impl) Replace(sessionID string, tasks []dbmodels.BoardTask) (result []dbmodels.BoardTask, err error) {
	err = i.modify(sessionID, func(_ []dbmodels.BoardTask) ([]dbmodels.BoardTask, error) {
		result = make([]dbmodels.BoardTask, 0, len(tasks))
		for _, task := range tasks {
			if strings.TrimSpace(task.Title) == "" {
				return nil, ErrEmptyTitle
			}
			if task.ID == "" {
				task.ID = memdb.NewID()
			}
			if task.CreatedAt.IsZero() {
				task.CreatedAt = i.now()
			}
			result = append(result, task)
		}
		return result, nil
	})
	return result, err
}

func (i impl) Add(sessionID string, data boardtaskapimodels.BoardTaskData) (task dbmodels.BoardTask, err error) {
	if err = data.Validate(); err != nil {
		return task, err
	}
	err = i.modify(sessionID, func(tasks []dbmodels.BoardTask) ([]dbmodels.BoardTask, error) {
		task = data.ToDbModel(memdb.NewID(), i.now())
		return append(tasks, task), nil
	})
	return task, err
}

func (i impl) Toggle(sessionID, taskID string) (task dbmodels.BoardTask, err error) {
	err = i.modify(sessionID, func(tasks []dbmodels.BoardTask) ([]dbmodels.BoardTask, error) {
		for idx := range tasks {
			if tasks[idx].ID == taskID {
				tasks[idx].Done = !tasks[idx].Done
				task = tasks[idx]
				return tasks, nil
			}
		}
		return nil, ErrNotFound
	})
	return task, err
}

func (i impl) Delete(sessionID, taskID string) error {
	return i.modify(sessionID, func(tasks []dbmodels.BoardTask) ([]dbmodels.BoardTask, error) {
		for idx := range tasks {
			if tasks[idx].ID == taskID {
				return append(tasks[:idx], tasks[idx+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func (i impl) modify(sessionID string, fn func(tasks []dbmodels.BoardTask) ([]dbmodels.BoardTask, error)) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrNoSession
	}
	ok, err := lock.WithDelay(context.Background(), "board-session-"+sessionID, sessionLockWait, func() error {
		tasks, err := i.load(sessionID)
		if err != nil {
			return err
		}
		tasks, err = fn(tasks)
		if err != nil {
			return err
		}
		body, err := json.Marshal(tasks)
		if err != nil {
			return errors.Wrap(err, "ошибка сериализации задач")
		}
		return i.store.Put(sessionID, string(body))
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionBusy
	}
	return nil
}

// load неизвестная сессия и поврежденные данные дают пустой список
func (i impl) load(sessionID string) ([]dbmodels.BoardTask, error) {
	data, found, err := i.store.Get(sessionID)
	if err != nil {
		log.WithError(err).WithField("session_id", sessionID).Error("ошибка чтения сессии доски задач")
		return nil, err
	}
	tasks := []dbmodels.BoardTask{}
	if !found || strings.TrimSpace(data) == "" {
		return tasks, nil
	}
	if err = json.Unmarshal([]byte(data), &tasks); err != nil {
		log.WithError(err).WithField("session_id", sessionID).Warn("поврежденные данные доски задач, используется пустой список")
		return []dbmodels.BoardTask{}, nil
	}
	return tasks, nil
}
