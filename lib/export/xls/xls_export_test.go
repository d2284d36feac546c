package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"hr-dashboard-backend/models"
	candidateapimodels "hr-dashboard-backend/models/api/candidate"
	pipelineapimodels "hr-dashboard-backend/models/api/pipeline"
)

func TestXlsExport(t *testing.T) {
	NewHandler()
	anna := candidateapimodels.CandidateView{
		ID:        "a",
		FullName:  "Anna Petrova",
		Stage:     models.StageOffer,
		Duration:  9,
		Blocked:   true,
		JobTitle:  "Go Developer",
		AppliedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	anna.Email = "anna@mail.test"

	t.Run(`candidate list`, func(t *testing.T) {
		buf, err := Instance.ExportCandidateList([]candidateapimodels.CandidateView{anna})
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		value, err := f.GetCellValue(candidatesSheet, "A1")
		require.Nil(t, err)
		require.Equal(t, "Name", value)
		value, err = f.GetCellValue(candidatesSheet, "A2")
		require.Nil(t, err)
		require.Equal(t, "Anna Petrova", value)
		value, err = f.GetCellValue(candidatesSheet, "F2")
		require.Nil(t, err)
		require.Equal(t, "Offer", value)
		value, err = f.GetCellValue(candidatesSheet, "I2")
		require.Nil(t, err)
		require.Equal(t, "02.01.2026", value)
	})

	t.Run(`pipeline`, func(t *testing.T) {
		columns := []pipelineapimodels.StageColumn{
			{Stage: models.StageApplied, Count: 0, Candidates: []candidateapimodels.CandidateView{}},
			{Stage: models.StageOffer, Count: 1, Candidates: []candidateapimodels.CandidateView{anna}},
		}
		buf, err := Instance.ExportPipeline(columns)
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		value, err := f.GetCellValue(pipelineSheet, "B1")
		require.Nil(t, err)
		require.Equal(t, "Offer (1)", value)
		value, err = f.GetCellValue(pipelineSheet, "B2")
		require.Nil(t, err)
		require.Equal(t, "Anna Petrova (9 d)", value)
	})
}
