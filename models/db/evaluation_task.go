package dbmodels

import (
	"hr-dashboard-backend/models"
	"time"
)

type EvaluationTask struct {
	ID        string
	Kind      models.TaskKind
	Status    models.TaskStatus
	Progress  int
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Evaluation *EvaluationResult
	BulkParse  []ParsedCV
}

type EvaluationResult struct {
	CandidateID       string
	JobID             string
	OverallScore      int
	SkillsMatch       int
	ExperienceMatch   int
	MatchedSkills     []string
	Strengths         []string
	Gaps              []string
	Recommendation    models.Recommendation
	Summary           string
	MissingInfo       bool
	PossibleDuplicate bool
}

type ParsedCV struct {
	FileName          string
	FileID            string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Skills            []string
	MissingInfo       bool
	PossibleDuplicate bool
	CandidateID       string
	Error             string
}
