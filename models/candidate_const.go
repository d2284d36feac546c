package models

type CandidateSource string

const (
	CandidateSourceLinkedIn   CandidateSource = "LinkedIn"
	CandidateSourceReferral   CandidateSource = "Referral"
	CandidateSourceCareerSite CandidateSource = "Career Site"
	CandidateSourceAgency     CandidateSource = "Agency"
	CandidateSourceJobBoard   CandidateSource = "Job Board"
	CandidateSourceBulkUpload CandidateSource = "Bulk Upload"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusPaused, JobStatusClosed:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "internship"
)
