package dbmodels

import (
	"hr-dashboard-backend/models"
	"time"
)

// BoardTask задача личной доски рекрутера, хранится в сессии в виде json
type BoardTask struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	DueDate     *time.Time               `json:"due_date,omitempty"`
	Priority    models.BoardTaskPriority `json:"priority"`
	Done        bool                     `json:"done"`
	CreatedAt   time.Time                `json:"created_at"`
}

// BoardSession сессионное хранилище доски задач, Data - список задач в json
type BoardSession struct {
	ID        string `gorm:"primaryKey;type:varchar(128)"`
	Data      string `gorm:"type:text"`
	UpdatedAt time.Time
}
