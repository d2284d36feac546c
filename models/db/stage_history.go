package dbmodels

import (
	"hr-dashboard-backend/models"
	"time"
)

// StageHistory журнал смены этапов, ведется только для отображения
type StageHistory struct {
	BaseModel
	CandidateID string       `gorm:"type:varchar(36);index"`
	FromStage   models.Stage `gorm:"type:varchar(50)"`
	ToStage     models.Stage `gorm:"type:varchar(50)"`
	ChangedAt   time.Time
	ChangedBy   string `gorm:"type:varchar(255)"`
}
