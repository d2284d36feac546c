package board

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

func newCandidate(id string, stage models.Stage) dbmodels.Candidate {
	c := dbmodels.Candidate{
		FirstName:      "First-" + id,
		LastName:       "Last-" + id,
		Email:          id + "@mail.test",
		Stage:          stage,
		StageEnteredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Skills:         []string{"go"},
		Rating:         3,
	}
	c.ID = id
	return c
}

func randomCandidates(r *rand.Rand, n int) []dbmodels.Candidate {
	list := make([]dbmodels.Candidate, 0, n)
	for i := 0; i < n; i++ {
		stage := models.StageList[r.Intn(len(models.StageList))]
		list = append(list, newCandidate(fmt.Sprintf("c%d", i), stage))
	}
	return list
}

func TestMoveCandidateToStage(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run(`concrete scenario`, func(t *testing.T) {
		list := []dbmodels.Candidate{
			newCandidate("A", models.StageApplied),
			newCandidate("B", models.StageInterview),
			newCandidate("C", models.StageApplied),
		}
		bBefore := list[1]
		moved := MoveCandidateToStage(list, "A", models.StageOffer, now)
		require.True(t, moved)

		groups := GroupByStage(list)
		byStage := map[models.Stage][]string{}
		for _, group := range groups {
			for _, c := range group.Candidates {
				byStage[group.Stage] = append(byStage[group.Stage], c.ID)
			}
		}
		require.Equal(t, []string{"C"}, byStage[models.StageApplied])
		require.Equal(t, []string{"A"}, byStage[models.StageOffer])
		require.Equal(t, []string{"B"}, byStage[models.StageInterview])
		require.Empty(t, byStage[models.StageScreening])
		require.Empty(t, byStage[models.StageTechnical])
		require.Empty(t, byStage[models.StageHired])
		require.Empty(t, byStage[models.StageRejected])
		require.Equal(t, bBefore, list[1])
	})

	t.Run(`move to current stage is no-op`, func(t *testing.T) {
		list := []dbmodels.Candidate{
			newCandidate("A", models.StageScreening),
			newCandidate("B", models.StageApplied),
		}
		before := append([]dbmodels.Candidate(nil), list...)
		require.False(t, MoveCandidateToStage(list, "A", models.StageScreening, now))
		require.Equal(t, before, list)
	})

	t.Run(`unknown id is no-op`, func(t *testing.T) {
		list := []dbmodels.Candidate{newCandidate("A", models.StageApplied)}
		before := append([]dbmodels.Candidate(nil), list...)
		for _, stage := range models.StageList {
			require.NotPanics(t, func() {
				require.False(t, MoveCandidateToStage(list, "nonexistent", stage, now))
			})
		}
		require.Equal(t, before, list)
	})

	t.Run(`unknown stage is no-op`, func(t *testing.T) {
		list := []dbmodels.Candidate{newCandidate("A", models.StageApplied)}
		require.False(t, MoveCandidateToStage(list, "A", models.Stage("Archived"), now))
		require.Equal(t, models.StageApplied, list[0].Stage)
	})

	t.Run(`move isolation`, func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for round := 0; round < 50; round++ {
			list := randomCandidates(r, 20)
			before := append([]dbmodels.Candidate(nil), list...)
			target := models.StageList[r.Intn(len(models.StageList))]
			pos := r.Intn(len(list))
			moved := MoveCandidateToStage(list, list[pos].ID, target, now)
			require.Equal(t, before[pos].Stage != target, moved)
			for idx := range list {
				if idx != pos || !moved {
					require.Equal(t, before[idx], list[idx])
					continue
				}
				expected := before[idx]
				expected.Stage = target
				expected.StageEnteredAt = now
				require.Equal(t, expected, list[idx])
			}
		}
	})

	t.Run(`terminal stages are not locked`, func(t *testing.T) {
		list := []dbmodels.Candidate{newCandidate("A", models.StageHired)}
		require.True(t, MoveCandidateToStage(list, "A", models.StageApplied, now))
		require.Equal(t, models.StageApplied, list[0].Stage)
	})
}

func TestGroupByStage(t *testing.T) {
	t.Run(`partition property`, func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for round := 0; round < 50; round++ {
			list := randomCandidates(r, r.Intn(40))
			groups := GroupByStage(list)
			require.Len(t, groups, len(models.StageList))
			seen := map[string]int{}
			total := 0
			for idx, group := range groups {
				require.Equal(t, models.StageList[idx], group.Stage)
				for _, c := range group.Candidates {
					require.Equal(t, group.Stage, c.Stage)
					seen[c.ID]++
					total++
				}
			}
			require.Equal(t, len(list), total)
			for _, c := range list {
				require.Equal(t, 1, seen[c.ID])
			}
		}
	})

	t.Run(`order preservation`, func(t *testing.T) {
		r := rand.New(rand.NewSource(11))
		list := randomCandidates(r, 60)
		position := map[string]int{}
		for idx, c := range list {
			position[c.ID] = idx
		}
		for _, group := range GroupByStage(list) {
			for idx := 1; idx < len(group.Candidates); idx++ {
				require.Less(t, position[group.Candidates[idx-1].ID], position[group.Candidates[idx].ID])
			}
		}
	})

	t.Run(`empty input gives empty groups`, func(t *testing.T) {
		groups := GroupByStage(nil)
		require.Len(t, groups, 7)
		for _, group := range groups {
			require.NotNil(t, group.Candidates)
			require.Empty(t, group.Candidates)
		}
	})

	t.Run(`count by stage`, func(t *testing.T) {
		list := []dbmodels.Candidate{
			newCandidate("A", models.StageApplied),
			newCandidate("B", models.StageApplied),
			newCandidate("C", models.StageHired),
		}
		counts := CountByStage(list)
		require.Equal(t, 2, counts[models.StageApplied])
		require.Equal(t, 1, counts[models.StageHired])
		require.Equal(t, 0, counts[models.StageOffer])
		require.Len(t, counts, 7)
	})
}
