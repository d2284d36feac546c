package cvevaluationapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

type EvaluateRequest struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`  // по умолчанию вакансия кандидата
	CVText      string `json:"cv_text"` // текст резюме, если есть
}

func (r EvaluateRequest) Validate() error {
	if strings.TrimSpace(r.CandidateID) == "" {
		return errors.New("не указан кандидат")
	}
	return nil
}

// CVFile загруженный файл резюме
type CVFile struct {
	Name string
	Body []byte
}

type TaskCreated struct {
	TaskID string `json:"task_id"`
}

type EvaluationView struct {
	CandidateID       string                `json:"candidate_id"`
	JobID             string                `json:"job_id,omitempty"`
	OverallScore      int                   `json:"overall_score"`
	SkillsMatch       int                   `json:"skills_match"`
	ExperienceMatch   int                   `json:"experience_match"`
	MatchedSkills     []string              `json:"matched_skills"`
	Strengths         []string              `json:"strengths"`
	Gaps              []string              `json:"gaps"`
	Recommendation    models.Recommendation `json:"recommendation"`
	Summary           string                `json:"summary"`
	MissingInfo       bool                  `json:"missing_info"`
	PossibleDuplicate bool                  `json:"possible_duplicate"`
}

type ParsedCVView struct {
	FileName          string   `json:"file_name"`
	FileID            string   `json:"file_id,omitempty"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Skills            []string `json:"skills"`
	MissingInfo       bool     `json:"missing_info"`
	PossibleDuplicate bool     `json:"possible_duplicate"`
	CandidateID       string   `json:"candidate_id,omitempty"` // создан при auto_create
	Error             string   `json:"error,omitempty"`
}

type TaskView struct {
	ID         string            `json:"id"`
	Kind       models.TaskKind   `json:"kind"`
	Status     models.TaskStatus `json:"status"`
	Progress   int               `json:"progress"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Evaluation *EvaluationView   `json:"evaluation,omitempty"`
	BulkParse  []ParsedCVView    `json:"bulk_parse,omitempty"`
}

// TaskProgress сообщение о ходе выполнения задачи для websocket
type TaskProgress struct {
	TaskID   string            `json:"task_id"`
	Kind     models.TaskKind   `json:"kind"`
	Status   models.TaskStatus `json:"status"`
	Progress int               `json:"progress"`
}

func EvaluationConvert(rec dbmodels.EvaluationResult) EvaluationView {
	return EvaluationView{
		CandidateID:       rec.CandidateID,
		JobID:             rec.JobID,
		OverallScore:      rec.OverallScore,
		SkillsMatch:       rec.SkillsMatch,
		ExperienceMatch:   rec.ExperienceMatch,
		MatchedSkills:     nonNil(rec.MatchedSkills),
		Strengths:         nonNil(rec.Strengths),
		Gaps:              nonNil(rec.Gaps),
		Recommendation:    rec.Recommendation,
		Summary:           rec.Summary,
		MissingInfo:       rec.MissingInfo,
		PossibleDuplicate: rec.PossibleDuplicate,
	}
}

func TaskConvert(rec dbmodels.EvaluationTask) TaskView {
	result := TaskView{
		ID:        rec.ID,
		Kind:      rec.Kind,
		Status:    rec.Status,
		Progress:  rec.Progress,
		Error:     rec.Error,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.Evaluation != nil {
		evaluation := EvaluationConvert(*rec.Evaluation)
		result.Evaluation = &evaluation
	}
	for _, parsed := range rec.BulkParse {
		result.BulkParse = append(result.BulkParse, ParsedCVView{
			FileName:          parsed.FileName,
			FileID:            parsed.FileID,
			FirstName:         parsed.FirstName,
			LastName:          parsed.LastName,
			Email:             parsed.Email,
			Phone:             parsed.Phone,
			Skills:            nonNil(parsed.Skills),
			MissingInfo:       parsed.MissingInfo,
			PossibleDuplicate: parsed.PossibleDuplicate,
			CandidateID:       parsed.CandidateID,
			Error:             parsed.Error,
		})
	}
	return result
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
