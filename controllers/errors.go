package controllers

import (
	"hr-dashboard-backend/lib/auth"
	boardtask "hr-dashboard-backend/lib/board-task"
	"hr-dashboard-backend/lib/budget"
	"hr-dashboard-backend/lib/candidate"
	cvevaluation "hr-dashboard-backend/lib/cv-evaluation"
	filestorage "hr-dashboard-backend/lib/file-storage"
	gpthandler "hr-dashboard-backend/lib/gpt"
	"hr-dashboard-backend/lib/job"
	messagetemplate "hr-dashboard-backend/lib/message-template"
	"hr-dashboard-backend/lib/notification"
	"hr-dashboard-backend/lib/pipeline"
	simtask "hr-dashboard-backend/lib/utils/sim-task"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

var errorStatuses = []struct {
	status int
	errs   []error
}{
	{fiber.StatusNotFound, []error{
		candidate.ErrNotFound,
		candidate.ErrJobNotFound,
		job.ErrNotFound,
		cvevaluation.ErrCandidateNotFound,
		cvevaluation.ErrJobNotFound,
		cvevaluation.ErrTaskNotFound,
		cvevaluation.ErrNoEvaluation,
		simtask.ErrNotFound,
		messagetemplate.ErrNotFound,
		messagetemplate.ErrCandidateNotFound,
		budget.ErrNotFound,
		notification.ErrNotFound,
		boardtask.ErrNotFound,
		filestorage.ErrNotFound,
	}},
	{fiber.StatusBadRequest, []error{
		pipeline.ErrUnknownStage,
		job.ErrUnknownStatus,
		cvevaluation.ErrNoFiles,
		messagetemplate.ErrNoEmail,
		boardtask.ErrNoSession,
		boardtask.ErrEmptyTitle,
	}},
	{fiber.StatusConflict, []error{
		pipeline.ErrTransitionNotAllowed,
		pipeline.ErrStageChanged,
		cvevaluation.ErrTaskFinished,
		simtask.ErrTaskFinished,
		boardtask.ErrSessionBusy,
	}},
	{fiber.StatusUnauthorized, []error{
		auth.ErrInvalidCredentials,
	}},
	{fiber.StatusServiceUnavailable, []error{
		messagetemplate.ErrSmtpNotConfigured,
		gpthandler.ErrNotConfigured,
	}},
}

// ErrorStatus http статус для ошибки обработчика
func ErrorStatus(err error) int {
	for _, item := range errorStatuses {
		for _, target := range item.errs {
			if errors.Is(err, target) {
				return item.status
			}
		}
	}
	return fiber.StatusInternalServerError
}
