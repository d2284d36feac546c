package dbmodels

import "hr-dashboard-backend/models"

type JobPosting struct {
	BaseModel
	Title          string                `gorm:"type:varchar(255)"`
	Department     string                `gorm:"type:varchar(255);index"`
	Location       string                `gorm:"type:varchar(255)"`
	EmploymentType models.EmploymentType `gorm:"type:varchar(50)"`
	Status         models.JobStatus      `gorm:"type:varchar(50);index"`
	SalaryFrom     int
	SalaryTo       int
	Description    string
	Requirements   []string `gorm:"serializer:json"`
	Openings       int
}

type JobFilter struct {
	Status     models.JobStatus
	Department string
	Search     string
}
