package notificationapimodels

import (
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"time"
)

type NotificationView struct {
	ID          string                  `json:"id"`
	Type        models.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	Read        bool                    `json:"read"`
	CandidateID string                  `json:"candidate_id,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

type UnreadCountView struct {
	Count int64 `json:"count"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:          rec.ID,
		Type:        rec.Type,
		Title:       rec.Title,
		Message:     rec.Message,
		Read:        rec.Read,
		CandidateID: rec.CandidateID,
		CreatedAt:   rec.CreatedAt,
	}
}
