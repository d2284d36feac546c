package dbmodels

import "hr-dashboard-backend/models"

type Notification struct {
	BaseModel
	Type        models.NotificationType `gorm:"type:varchar(50)"`
	Title       string                  `gorm:"type:varchar(255)"`
	Message     string
	Read        bool `gorm:"index"`
	CandidateID string `gorm:"type:varchar(36)"`
}
