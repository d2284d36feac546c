package dbmodels

import (
	"hr-dashboard-backend/models"
	"strings"
	"time"
)

type Candidate struct {
	BaseModel
	FirstName       string                 `gorm:"type:varchar(255)"`
	LastName        string                 `gorm:"type:varchar(255)"`
	Email           string                 `gorm:"type:varchar(255);index"`
	Phone           string                 `gorm:"type:varchar(100)"`
	JobID           string                 `gorm:"type:varchar(36);index"`
	Source          models.CandidateSource `gorm:"type:varchar(100)"`
	Stage           models.Stage           `gorm:"type:varchar(50);index"`
	StageEnteredAt  time.Time
	AppliedAt       time.Time
	Rating          int
	Skills          []string `gorm:"serializer:json"`
	Location        string   `gorm:"type:varchar(255)"`
	ExperienceYears int
	Notes           string
}

func (c Candidate) GetFullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DaysInStage количество полных дней на текущем этапе
func (c Candidate) DaysInStage(now time.Time) int {
	if c.StageEnteredAt.IsZero() || now.Before(c.StageEnteredAt) {
		return 0
	}
	return int(now.Sub(c.StageEnteredAt).Hours() / 24)
}

// IsBlocked кандидат задержался на незавершающем этапе дольше порога
func (c Candidate) IsBlocked(now time.Time, blockedAfterDays int) bool {
	if c.Stage.IsTerminal() {
		return false
	}
	return c.DaysInStage(now) > blockedAfterDays
}

type CandidateFilter struct {
	Search   string
	Stage    models.Stage
	JobID    string
	Source   models.CandidateSource
	Page     int
	Limit    int
	NoPaging bool
}
