package blockedcandidateworker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	"hr-dashboard-backend/lib/notification"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

func TestHandle(t *testing.T) {
	now := time.Now()
	days := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }

	blockedCount := func(t *testing.T, notifier notification.Provider) int {
		list, err := notifier.List(false)
		require.Nil(t, err)
		count := 0
		for _, item := range list {
			if item.Type == models.NotificationCandidateBlocked {
				count++
			}
		}
		return count
	}

	t.Run(`notify once per stage entry`, func(t *testing.T) {
		candidates := candidatestore.NewMemoryInstance()
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		stuckID, err := candidates.Create(dbmodels.Candidate{FirstName: "Анна", Stage: models.StageScreening, StageEnteredAt: days(10)})
		require.Nil(t, err)
		_, err = candidates.Create(dbmodels.Candidate{FirstName: "Fresh", Stage: models.StageApplied, StageEnteredAt: days(1)})
		require.Nil(t, err)
		_, err = candidates.Create(dbmodels.Candidate{FirstName: "Hired", Stage: models.StageHired, StageEnteredAt: days(60)})
		require.Nil(t, err)

		worker := newInstance(candidates, notifier, 7, time.Minute, func() time.Time { return now })
		worker.handle(context.Background())
		require.Equal(t, 1, blockedCount(t, notifier))

		list, err := notifier.List(false)
		require.Nil(t, err)
		require.Equal(t, stuckID, list[0].CandidateID)

		worker.handle(context.Background())
		require.Equal(t, 1, blockedCount(t, notifier))
	})

	t.Run(`notify again after re-entering stage`, func(t *testing.T) {
		candidates := candidatestore.NewMemoryInstance()
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		id, err := candidates.Create(dbmodels.Candidate{FirstName: "Борис", Stage: models.StageScreening, StageEnteredAt: days(10)})
		require.Nil(t, err)

		worker := newInstance(candidates, notifier, 7, time.Minute, func() time.Time { return now })
		worker.handle(context.Background())
		require.Equal(t, 1, blockedCount(t, notifier))

		later := now.Add(time.Minute)
		changed, err := candidates.ChangeStage(id, models.StageScreening, models.StageInterview, later)
		require.Nil(t, err)
		require.True(t, changed)

		worker.now = func() time.Time { return later.Add(9 * 24 * time.Hour) }
		worker.handle(context.Background())
		require.Equal(t, 2, blockedCount(t, notifier))
	})

	t.Run(`cancelled context`, func(t *testing.T) {
		candidates := candidatestore.NewMemoryInstance()
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		_, err := candidates.Create(dbmodels.Candidate{FirstName: "X", Stage: models.StageScreening, StageEnteredAt: days(10)})
		require.Nil(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		newInstance(candidates, notifier, 7, time.Minute, func() time.Time { return now }).handle(ctx)
		require.Equal(t, 0, blockedCount(t, notifier))
	})
}
