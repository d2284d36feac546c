package boardtaskapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

type BoardTaskData struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	DueDate     *time.Time               `json:"due_date"`
	Priority    models.BoardTaskPriority `json:"priority"`
}

func (b BoardTaskData) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("не указано название задачи")
	}
	switch b.Priority {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return errors.New("неизвестный приоритет задачи")
	}
	return nil
}

func (b BoardTaskData) ToDbModel(id string, now time.Time) dbmodels.BoardTask {
	priority := b.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	return dbmodels.BoardTask{
		ID:          id,
		Title:       strings.TrimSpace(b.Title),
		Description: b.Description,
		DueDate:     b.DueDate,
		Priority:    priority,
		CreatedAt:   now,
	}
}
