package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	budgetstore "hr-dashboard-backend/lib/budget/store"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	messagetemplatestore "hr-dashboard-backend/lib/message-template/store"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

func memoryStores() Stores {
	return Stores{
		Candidates:    candidatestore.NewMemoryInstance(),
		Jobs:          jobstore.NewMemoryInstance(),
		Templates:     messagetemplatestore.NewMemoryInstance(),
		Budgets:       budgetstore.NewMemoryInstance(),
		Notifications: notificationstore.NewMemoryInstance(),
	}
}

func TestLoad(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run(`empty storage`, func(t *testing.T) {
		stores := memoryStores()
		require.Nil(t, Load(stores, now))

		count, err := stores.Candidates.Count()
		require.Nil(t, err)
		require.EqualValues(t, len(sampleCandidates), count)

		jobs, err := stores.Jobs.List(dbmodels.JobFilter{})
		require.Nil(t, err)
		require.Len(t, jobs, len(sampleJobs))

		candidates, err := stores.Candidates.ListAll()
		require.Nil(t, err)
		jobIDs := map[string]bool{}
		for _, job := range jobs {
			jobIDs[job.ID] = true
		}
		for _, rec := range candidates {
			require.True(t, jobIDs[rec.JobID])
			require.True(t, rec.Stage.IsValid())
		}

		autoSend, err := stores.Templates.ListAutoSend(models.StageInterview)
		require.Nil(t, err)
		require.Len(t, autoSend, 1)

		budgets, err := stores.Budgets.List()
		require.Nil(t, err)
		require.Len(t, budgets, len(sampleBudgets))
		expenses, err := stores.Budgets.ListExpenses(budgets[0].ID)
		require.Nil(t, err)
		require.NotEmpty(t, expenses)

		unread, err := stores.Notifications.UnreadCount()
		require.Nil(t, err)
		require.EqualValues(t, len(sampleNotifications), unread)
	})

	t.Run(`filled storage is kept`, func(t *testing.T) {
		stores := memoryStores()
		_, err := stores.Jobs.Create(dbmodels.JobPosting{Title: "Own job", Status: models.JobStatusOpen})
		require.Nil(t, err)
		require.Nil(t, Load(stores, now))

		jobs, err := stores.Jobs.List(dbmodels.JobFilter{})
		require.Nil(t, err)
		require.Len(t, jobs, 1)
		count, err := stores.Candidates.Count()
		require.Nil(t, err)
		require.EqualValues(t, 0, count)
	})

	t.Run(`seed is idempotent`, func(t *testing.T) {
		stores := memoryStores()
		require.Nil(t, Load(stores, now))
		require.Nil(t, Load(stores, now))
		count, err := stores.Candidates.Count()
		require.Nil(t, err)
		require.EqualValues(t, len(sampleCandidates), count)
	})
}
