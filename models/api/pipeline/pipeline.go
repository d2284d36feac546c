package pipelineapimodels

import (
	"hr-dashboard-backend/models"
	candidateapimodels "hr-dashboard-backend/models/api/candidate"
	dbmodels "hr-dashboard-backend/models/db"
	"time"
)

type StageColumn struct {
	Stage      models.Stage                       `json:"stage"`
	Count      int                                `json:"count"`
	Candidates []candidateapimodels.CandidateView `json:"candidates"`
}

type MoveResult struct {
	Moved     bool                              `json:"moved"` // false - кандидат не найден или уже на этапе
	Candidate *candidateapimodels.CandidateView `json:"candidate,omitempty"`
}

type StageStat struct {
	Stage models.Stage `json:"stage"`
	Count int          `json:"count"`
}

type StageInfo struct {
	Stage    models.Stage `json:"stage"`
	Order    int          `json:"order"`
	Terminal bool         `json:"terminal"`
}

type StageHistoryView struct {
	ID        string       `json:"id"`
	FromStage models.Stage `json:"from_stage"`
	ToStage   models.Stage `json:"to_stage"`
	ChangedAt time.Time    `json:"changed_at"`
	ChangedBy string       `json:"changed_by"`
}

func StageHistoryConvert(rec dbmodels.StageHistory) StageHistoryView {
	return StageHistoryView{
		ID:        rec.ID,
		FromStage: rec.FromStage,
		ToStage:   rec.ToStage,
		ChangedAt: rec.ChangedAt,
		ChangedBy: rec.ChangedBy,
	}
}
