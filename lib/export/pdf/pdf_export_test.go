package pdfexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-dashboard-backend/models"
)

func TestEvaluationReport(t *testing.T) {
	t.Run(`core font fallback`, func(t *testing.T) {
		provider := NewInstance(t.TempDir())
		body, err := provider.EvaluationReport(ReportData{
			CandidateName:   "Anna Petrova",
			Email:           "anna@mail.test",
			JobTitle:        "Go Developer",
			Stage:           models.StageInterview,
			OverallScore:    82,
			SkillsMatch:     90,
			ExperienceMatch: 70,
			Strengths:       []string{"Go", "PostgreSQL"},
			Gaps:            nil,
			Recommendation:  models.RecommendationYes,
			Summary:         "Strong backend profile",
			MissingInfo:     true,
			GeneratedAt:     time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		})
		require.Nil(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	})
}
