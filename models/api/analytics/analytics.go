package analyticsapimodels

import (
	"hr-dashboard-backend/models"
	pipelineapimodels "hr-dashboard-backend/models/api/pipeline"
)

type SourceStat struct {
	Source models.CandidateSource `json:"source"`
	Count  int                    `json:"count"`
}

type Summary struct {
	CandidatesTotal     int                           `json:"candidates_total"`
	ByStage             []pipelineapimodels.StageStat `json:"by_stage"`
	BySource            []SourceStat                  `json:"by_source"`
	OpenJobs            int                           `json:"open_jobs"`
	BlockedCount        int                           `json:"blocked_count"`
	AvgDaysInStage      float64                       `json:"avg_days_in_stage"` // по кандидатам на незавершающих этапах
	HireRate            float64                       `json:"hire_rate"`         // процент нанятых от всех кандидатов
	RejectionRate       float64                       `json:"rejection_rate"`
	BudgetUtilization   float64                       `json:"budget_utilization"`
	UnreadNotifications int64                         `json:"unread_notifications"`
}
