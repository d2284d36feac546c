package xlsexport

import (
	"bytes"
	"fmt"
	"hr-dashboard-backend/models"
	candidateapimodels "hr-dashboard-backend/models/api/candidate"
	pipelineapimodels "hr-dashboard-backend/models/api/pipeline"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCandidateList(list []candidateapimodels.CandidateView) (*bytes.Buffer, error)
	ExportPipeline(columns []pipelineapimodels.StageColumn) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	candidatesSheet = "Candidates"
	pipelineSheet   = "Pipeline"
)

var candidateHeaders = []string{"Name", "Email", "Phone", "Job", "Source", "Stage", "Days in stage", "Rating", "Applied"}

func (i impl) ExportCandidateList(list []candidateapimodels.CandidateView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	for _, item := range list {
		row++
		applied := ""
		if !item.AppliedAt.IsZero() {
			applied = item.AppliedAt.Format("02.01.2006")
		}
		values := []interface{}{
			item.FullName,
			item.Email,
			item.Phone,
			item.JobTitle,
			string(item.Source),
			string(item.Stage),
			item.Duration,
			item.Rating,
			applied,
		}
		if err = writeRow(f, sheet, row, values); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, candidatesSheet); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// ExportPipeline одна колонка на этап, как на канбан-доске
func (i impl) ExportPipeline(columns []pipelineapimodels.StageColumn) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, fmt.Sprintf("%s (%d)", column.Stage, column.Count))
	}
	if len(headers) == 0 {
		for _, stage := range models.StageList {
			headers = append(headers, string(stage))
		}
	}
	row, err := writeHeader(f, sheet, 0, headers)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	for col, column := range columns {
		for idx, candidate := range column.Candidates {
			value := candidate.FullName
			if candidate.Blocked {
				value = fmt.Sprintf("%s (%d d)", candidate.FullName, candidate.Duration)
			}
			if err = writeColumn(f, sheet, col+1, row+idx+1, value); err != nil {
				return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
			}
		}
	}
	if err = f.SetSheetName(sheet, pipelineSheet); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
