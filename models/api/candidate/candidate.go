package candidateapimodels

import (
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-dashboard-backend/models"
	apimodels "hr-dashboard-backend/models/api"
	dbmodels "hr-dashboard-backend/models/db"
)

type CandidateData struct {
	FirstName       string                 `json:"first_name"`
	LastName        string                 `json:"last_name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	JobID           string                 `json:"job_id"`
	Source          models.CandidateSource `json:"source"`
	Rating          int                    `json:"rating"`
	Skills          []string               `json:"skills"`
	Location        string                 `json:"location"`
	ExperienceYears int                    `json:"experience_years"`
	Notes           string                 `json:"notes"`
}

func (c CandidateData) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return errors.New("не указано имя кандидата")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return errors.New("не указана фамилия кандидата")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("не указана почта кандидата")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("некорректный адрес почты кандидата")
	}
	if c.Rating < 0 || c.Rating > 5 {
		return errors.New("рейтинг должен быть от 0 до 5")
	}
	if c.ExperienceYears < 0 {
		return errors.New("опыт работы не может быть отрицательным")
	}
	return nil
}

func (c CandidateData) ToDbModel(rec *dbmodels.Candidate) {
	rec.FirstName = strings.TrimSpace(c.FirstName)
	rec.LastName = strings.TrimSpace(c.LastName)
	rec.Email = strings.TrimSpace(c.Email)
	rec.Phone = c.Phone
	rec.JobID = c.JobID
	rec.Source = c.Source
	rec.Rating = c.Rating
	rec.Skills = c.Skills
	rec.Location = c.Location
	rec.ExperienceYears = c.ExperienceYears
	rec.Notes = c.Notes
}

type CandidateView struct {
	ID string `json:"id"`
	CandidateData
	FullName       string       `json:"full_name"`
	JobTitle       string       `json:"job_title,omitempty"`
	Stage          models.Stage `json:"stage"`
	StageEnteredAt time.Time    `json:"stage_entered_at"`
	Duration       int          `json:"duration"` // дней на текущем этапе
	Blocked        bool         `json:"blocked"`
	AppliedAt      time.Time    `json:"applied_at"`
}

func CandidateConvert(rec dbmodels.Candidate, jobTitle string, now time.Time, blockedAfterDays int) CandidateView {
	return CandidateView{
		ID: rec.ID,
		CandidateData: CandidateData{
			FirstName:       rec.FirstName,
			LastName:        rec.LastName,
			Email:           rec.Email,
			Phone:           rec.Phone,
			JobID:           rec.JobID,
			Source:          rec.Source,
			Rating:          rec.Rating,
			Skills:          rec.Skills,
			Location:        rec.Location,
			ExperienceYears: rec.ExperienceYears,
			Notes:           rec.Notes,
		},
		FullName:       rec.GetFullName(),
		JobTitle:       jobTitle,
		Stage:          rec.Stage,
		StageEnteredAt: rec.StageEnteredAt,
		Duration:       rec.DaysInStage(now),
		Blocked:        rec.IsBlocked(now, blockedAfterDays),
		AppliedAt:      rec.AppliedAt,
	}
}

type CandidateFilter struct {
	apimodels.Pagination
	Search string                 `json:"search" query:"search"`
	Stage  models.Stage           `json:"stage" query:"stage"`
	JobID  string                 `json:"job_id" query:"job_id"`
	Source models.CandidateSource `json:"source" query:"source"`
}

func (f CandidateFilter) Validate() error {
	if f.Stage != "" && !f.Stage.IsValid() {
		return errors.New("неизвестный этап")
	}
	return nil
}

func (f CandidateFilter) ToDbFilter() dbmodels.CandidateFilter {
	page, limit := f.GetPage()
	return dbmodels.CandidateFilter{
		Search: f.Search,
		Stage:  f.Stage,
		JobID:  f.JobID,
		Source: f.Source,
		Page:   page,
		Limit:  limit,
	}
}
