package candidatestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryInstance()
	add := func(first, last, email, jobID string, stage models.Stage) string {
		id, err := store.Create(dbmodels.Candidate{
			FirstName: first,
			LastName:  last,
			Email:     email,
			JobID:     jobID,
			Stage:     stage,
			Skills:    []string{"sql"},
		})
		require.Nil(t, err)
		return id
	}
	annaID := add("Anna", "Petrova", "anna@mail.test", "job-1", models.StageApplied)
	add("Boris", "Ivanov", "boris@mail.test", "job-2", models.StageInterview)
	add("Clara", "Smith", "clara@corp.test", "job-1", models.StageApplied)

	t.Run(`filter and paging`, func(t *testing.T) {
		list, count, err := store.List(dbmodels.CandidateFilter{JobID: "job-1"})
		require.Nil(t, err)
		require.Equal(t, int64(2), count)
		require.Len(t, list, 2)

		list, count, err = store.List(dbmodels.CandidateFilter{Search: "MAIL.test"})
		require.Nil(t, err)
		require.Equal(t, int64(2), count)

		list, count, err = store.List(dbmodels.CandidateFilter{Page: 2, Limit: 2})
		require.Nil(t, err)
		require.Equal(t, int64(3), count)
		require.Len(t, list, 1)
		require.Equal(t, "Clara", list[0].FirstName)

		list, _, err = store.List(dbmodels.CandidateFilter{Page: 5, Limit: 2})
		require.Nil(t, err)
		require.Empty(t, list)
	})

	t.Run(`change stage`, func(t *testing.T) {
		at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		changed, err := store.ChangeStage(annaID, models.StageApplied, models.StageOffer, at)
		require.Nil(t, err)
		require.True(t, changed)

		changed, err = store.ChangeStage(annaID, models.StageOffer, models.StageOffer, at.Add(time.Hour))
		require.Nil(t, err)
		require.False(t, changed)

		// этап уже изменен другим запросом
		changed, err = store.ChangeStage(annaID, models.StageApplied, models.StageRejected, at.Add(time.Hour))
		require.Nil(t, err)
		require.False(t, changed)

		changed, err = store.ChangeStage("unknown", models.StageApplied, models.StageOffer, at)
		require.Nil(t, err)
		require.False(t, changed)

		rec, err := store.GetByID(annaID)
		require.Nil(t, err)
		require.Equal(t, models.StageOffer, rec.Stage)
		require.Equal(t, at, rec.StageEnteredAt)
	})

	t.Run(`save keeps stage`, func(t *testing.T) {
		rec, err := store.GetByID(annaID)
		require.Nil(t, err)
		rec.Phone = "+100"
		rec.Stage = models.StageRejected
		require.Nil(t, store.Save(*rec))
		stored, err := store.GetByID(annaID)
		require.Nil(t, err)
		require.Equal(t, "+100", stored.Phone)
		require.Equal(t, models.StageOffer, stored.Stage)

		require.NotNil(t, store.Save(dbmodels.Candidate{}))
	})

	t.Run(`get unknown`, func(t *testing.T) {
		rec, err := store.GetByID("unknown")
		require.Nil(t, err)
		require.Nil(t, rec)
	})
}
