package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-dashboard-backend/lib/budget"
	budgetstore "hr-dashboard-backend/lib/budget/store"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/lib/notification"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	analyticsapimodels "hr-dashboard-backend/models/api/analytics"
	budgetapimodels "hr-dashboard-backend/models/api/budget"
	dbmodels "hr-dashboard-backend/models/db"
)

func TestSummary(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	days := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }

	t.Run(`empty`, func(t *testing.T) {
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		handler := NewInstance(candidatestore.NewMemoryInstance(), jobstore.NewMemoryInstance(),
			budget.NewInstance(budgetstore.NewMemoryInstance(), notifier, time.Now), notifier, 7, func() time.Time { return now })
		summary, err := handler.Summary()
		require.Nil(t, err)
		require.Equal(t, 0, summary.CandidatesTotal)
		require.Len(t, summary.ByStage, len(models.StageList))
		require.Empty(t, summary.BySource)
		require.Equal(t, 0.0, summary.HireRate)
	})

	t.Run(`filled`, func(t *testing.T) {
		candidates := candidatestore.NewMemoryInstance()
		jobs := jobstore.NewMemoryInstance()
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		budgets := budget.NewInstance(budgetstore.NewMemoryInstance(), notifier, time.Now)

		for _, rec := range []dbmodels.Candidate{
			{FirstName: "A", Stage: models.StageApplied, StageEnteredAt: days(2), Source: models.CandidateSourceLinkedIn},
			{FirstName: "B", Stage: models.StageInterview, StageEnteredAt: days(10), Source: models.CandidateSourceReferral},
			{FirstName: "C", Stage: models.StageHired, StageEnteredAt: days(30), Source: models.CandidateSourceLinkedIn},
			{FirstName: "D", Stage: models.StageRejected, StageEnteredAt: days(40), Source: models.CandidateSourceAgency},
		} {
			_, err := candidates.Create(rec)
			require.Nil(t, err)
		}
		_, err := jobs.Create(dbmodels.JobPosting{Title: "Open", Status: models.JobStatusOpen})
		require.Nil(t, err)
		_, err = jobs.Create(dbmodels.JobPosting{Title: "Draft", Status: models.JobStatusDraft})
		require.Nil(t, err)
		budgetID, err := budgets.Create(budgetapimodels.BudgetData{Name: "Q3", Department: "IT", Allocated: 1000})
		require.Nil(t, err)
		_, err = budgets.AddExpense(budgetID, budgetapimodels.ExpenseData{Category: models.ExpenseTools, Amount: 250})
		require.Nil(t, err)
		notifier.Notify(models.NotificationInfo, "t", "m", "")

		handler := NewInstance(candidates, jobs, budgets, notifier, 7, func() time.Time { return now })
		summary, err := handler.Summary()
		require.Nil(t, err)
		require.Equal(t, 4, summary.CandidatesTotal)
		require.Equal(t, 1, summary.ByStage[0].Count)
		require.Equal(t, models.StageInterview, summary.ByStage[2].Stage)
		require.Equal(t, 1, summary.ByStage[2].Count)
		require.Equal(t, []analyticsapimodels.SourceStat{
			{Source: models.CandidateSourceLinkedIn, Count: 2},
			{Source: models.CandidateSourceReferral, Count: 1},
			{Source: models.CandidateSourceAgency, Count: 1},
		}, summary.BySource)
		require.Equal(t, 1, summary.OpenJobs)
		require.Equal(t, 1, summary.BlockedCount)
		require.Equal(t, 6.0, summary.AvgDaysInStage)
		require.Equal(t, 25.0, summary.HireRate)
		require.Equal(t, 25.0, summary.RejectionRate)
		require.Equal(t, 25.0, summary.BudgetUtilization)
		require.Equal(t, int64(1), summary.UnreadNotifications)
	})
}
