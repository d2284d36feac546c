package jobapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

type JobData struct {
	Title          string                `json:"title"`
	Department     string                `json:"department"`
	Location       string                `json:"location"`
	EmploymentType models.EmploymentType `json:"employment_type"`
	SalaryFrom     int                   `json:"salary_from"`
	SalaryTo       int                   `json:"salary_to"`
	Description    string                `json:"description"`
	Requirements   []string              `json:"requirements"`
	Openings       int                   `json:"openings"`
}

func (j JobData) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return errors.New("не указано название вакансии")
	}
	if strings.TrimSpace(j.Department) == "" {
		return errors.New("не указан отдел")
	}
	if strings.TrimSpace(j.Location) == "" {
		return errors.New("не указана локация")
	}
	if j.SalaryFrom < 0 || j.SalaryTo < 0 {
		return errors.New("зарплата не может быть отрицательной")
	}
	if j.SalaryTo > 0 && j.SalaryFrom > j.SalaryTo {
		return errors.New("нижняя граница зарплаты больше верхней")
	}
	if j.Openings < 0 {
		return errors.New("количество позиций не может быть отрицательным")
	}
	return nil
}

func (j JobData) ToDbModel(rec *dbmodels.JobPosting) {
	rec.Title = strings.TrimSpace(j.Title)
	rec.Department = strings.TrimSpace(j.Department)
	rec.Location = strings.TrimSpace(j.Location)
	rec.EmploymentType = j.EmploymentType
	rec.SalaryFrom = j.SalaryFrom
	rec.SalaryTo = j.SalaryTo
	rec.Description = j.Description
	rec.Requirements = j.Requirements
	rec.Openings = j.Openings
}

type JobView struct {
	ID string `json:"id"`
	JobData
	Status         models.JobStatus `json:"status"`
	CandidateCount int              `json:"candidate_count"`
	CreatedAt      time.Time        `json:"created_at"`
}

func JobConvert(rec dbmodels.JobPosting, candidateCount int) JobView {
	return JobView{
		ID: rec.ID,
		JobData: JobData{
			Title:          rec.Title,
			Department:     rec.Department,
			Location:       rec.Location,
			EmploymentType: rec.EmploymentType,
			SalaryFrom:     rec.SalaryFrom,
			SalaryTo:       rec.SalaryTo,
			Description:    rec.Description,
			Requirements:   rec.Requirements,
			Openings:       rec.Openings,
		},
		Status:         rec.Status,
		CandidateCount: candidateCount,
		CreatedAt:      rec.CreatedAt,
	}
}

type JobFilter struct {
	Status     models.JobStatus `json:"status"`
	Department string           `json:"department"`
	Search     string           `json:"search"`
}

func (f JobFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.New("неизвестный статус вакансии")
	}
	return nil
}
