package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	xlsexport "hr-dashboard-backend/lib/export/xls"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/lib/notification"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	historystore "hr-dashboard-backend/lib/pipeline/history-store"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

type listenerMock struct {
	mu    sync.Mutex
	calls []dbmodels.Candidate
	block chan struct{}
}

func (l *listenerMock) OnStageChanged(_ context.Context, candidate dbmodels.Candidate) {
	if l.block != nil {
		<-l.block
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, candidate)
}

func (l *listenerMock) list() []dbmodels.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]dbmodels.Candidate(nil), l.calls...)
}

// barrierStore первые reads вызовов GetByID ждут друг друга,
// чтобы параллельные запросы прочитали этап до записи
type barrierStore struct {
	candidatestore.Provider
	reads   int32
	counter int32
	wg      *sync.WaitGroup
}

func newBarrierStore(store candidatestore.Provider, reads int) *barrierStore {
	wg := &sync.WaitGroup{}
	wg.Add(reads)
	return &barrierStore{Provider: store, reads: int32(reads), wg: wg}
}

func (s *barrierStore) GetByID(id string) (*dbmodels.Candidate, error) {
	rec, err := s.Provider.GetByID(id)
	if atomic.AddInt32(&s.counter, 1) <= s.reads {
		s.wg.Done()
		s.wg.Wait()
	}
	return rec, err
}

type testEnv struct {
	handler    Provider
	candidates candidatestore.Provider
	notifier   notification.Provider
	listener   *listenerMock
	now        time.Time
}

func newTestEnv(t *testing.T, strict bool) testEnv {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	candidates := candidatestore.NewMemoryInstance()
	jobs := jobstore.NewMemoryInstance()
	jobID, err := jobs.Create(dbmodels.JobPosting{Title: "Go Developer", Status: models.JobStatusOpen})
	require.Nil(t, err)
	add := func(id, first string, stage models.Stage, days int) {
		rec := dbmodels.Candidate{
			FirstName:      first,
			LastName:       "Test",
			Email:          first + "@mail.test",
			JobID:          jobID,
			Stage:          stage,
			StageEnteredAt: now.Add(-time.Duration(days) * 24 * time.Hour),
		}
		rec.ID = id
		_, err := candidates.Create(rec)
		require.Nil(t, err)
	}
	add("A", "Anna", models.StageApplied, 2)
	add("B", "Boris", models.StageInterview, 10)
	add("C", "Clara", models.StageApplied, 1)

	notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
	listener := &listenerMock{}
	handler := NewInstance(context.Background(), candidates, jobs, historystore.NewMemoryInstance(), notifier, listener, Config{
		Policy: NewPolicy(strict),
		Now:    func() time.Time { return now },
	})
	return testEnv{
		handler:    handler,
		candidates: candidates,
		notifier:   notifier,
		listener:   listener,
		now:        now,
	}
}

func columnIDs(t *testing.T, handler Provider) map[models.Stage][]string {
	columns, err := handler.Board("")
	require.Nil(t, err)
	require.Len(t, columns, len(models.StageList))
	result := map[models.Stage][]string{}
	for _, column := range columns {
		require.Equal(t, len(column.Candidates), column.Count)
		for _, c := range column.Candidates {
			result[column.Stage] = append(result[column.Stage], c.ID)
		}
	}
	return result
}

func TestPipelineHandler(t *testing.T) {
	t.Run(`move candidate to stage`, func(t *testing.T) {
		env := newTestEnv(t, false)
		before, err := env.candidates.GetByID("B")
		require.Nil(t, err)

		result, err := env.handler.MoveCandidateToStage("recruiter", "A", models.StageOffer)
		require.Nil(t, err)
		require.True(t, result.Moved)
		require.Equal(t, models.StageOffer, result.Candidate.Stage)
		require.Equal(t, 0, result.Candidate.Duration)
		require.Equal(t, "Go Developer", result.Candidate.JobTitle)

		ids := columnIDs(t, env.handler)
		require.Equal(t, []string{"C"}, ids[models.StageApplied])
		require.Equal(t, []string{"A"}, ids[models.StageOffer])
		require.Equal(t, []string{"B"}, ids[models.StageInterview])

		after, err := env.candidates.GetByID("B")
		require.Nil(t, err)
		require.Equal(t, before, after)

		history, err := env.handler.History("A")
		require.Nil(t, err)
		require.Len(t, history, 1)
		require.Equal(t, models.StageApplied, history[0].FromStage)
		require.Equal(t, models.StageOffer, history[0].ToStage)
		require.Equal(t, "recruiter", history[0].ChangedBy)

		notifications, err := env.notifier.List(false)
		require.Nil(t, err)
		require.Len(t, notifications, 1)
		require.Contains(t, notifications[0].Message, "Anna Test")
		require.Contains(t, notifications[0].Message, "Offer")
		require.Equal(t, models.NotificationStageChange, notifications[0].Type)

		require.Eventually(t, func() bool { return len(env.listener.list()) == 1 }, time.Second, 10*time.Millisecond)
		require.Equal(t, models.StageOffer, env.listener.list()[0].Stage)
	})

	t.Run(`unknown candidate is no-op`, func(t *testing.T) {
		env := newTestEnv(t, false)
		before := columnIDs(t, env.handler)
		result, err := env.handler.MoveCandidateToStage("recruiter", "nonexistent", models.StageHired)
		require.Nil(t, err)
		require.False(t, result.Moved)
		require.Nil(t, result.Candidate)
		require.Equal(t, before, columnIDs(t, env.handler))
		count, err := env.notifier.UnreadCount()
		require.Nil(t, err)
		require.Equal(t, int64(0), count)
		require.Empty(t, env.listener.list())
	})

	t.Run(`move to current stage is no-op`, func(t *testing.T) {
		env := newTestEnv(t, false)
		before, err := env.candidates.GetByID("B")
		require.Nil(t, err)
		result, err := env.handler.MoveCandidateToStage("recruiter", "B", models.StageInterview)
		require.Nil(t, err)
		require.False(t, result.Moved)
		require.Equal(t, 10, result.Candidate.Duration)
		require.True(t, result.Candidate.Blocked)
		after, err := env.candidates.GetByID("B")
		require.Nil(t, err)
		require.Equal(t, before, after)
		history, err := env.handler.History("B")
		require.Nil(t, err)
		require.Empty(t, history)
	})

	t.Run(`unknown stage`, func(t *testing.T) {
		env := newTestEnv(t, false)
		_, err := env.handler.MoveCandidateToStage("recruiter", "A", models.Stage("Archived"))
		require.ErrorIs(t, err, ErrUnknownStage)
	})

	t.Run(`terminal stage can be left by default`, func(t *testing.T) {
		env := newTestEnv(t, false)
		_, err := env.handler.MoveCandidateToStage("recruiter", "A", models.StageHired)
		require.Nil(t, err)
		result, err := env.handler.MoveCandidateToStage("recruiter", "A", models.StageApplied)
		require.Nil(t, err)
		require.True(t, result.Moved)
	})

	t.Run(`strict policy`, func(t *testing.T) {
		env := newTestEnv(t, true)
		_, err := env.handler.MoveCandidateToStage("recruiter", "A", models.StageHired)
		require.True(t, errors.Is(err, ErrTransitionNotAllowed))

		result, err := env.handler.MoveCandidateToStage("recruiter", "A", models.StageScreening)
		require.Nil(t, err)
		require.True(t, result.Moved)

		result, err = env.handler.MoveCandidateToStage("recruiter", "A", models.StageRejected)
		require.Nil(t, err)
		require.True(t, result.Moved)

		_, err = env.handler.MoveCandidateToStage("recruiter", "A", models.StageApplied)
		require.ErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run(`concurrent moves from one stage`, func(t *testing.T) {
		base := candidatestore.NewMemoryInstance()
		rec := dbmodels.Candidate{FirstName: "Olga", LastName: "Test", Email: "olga@mail.test", Stage: models.StageOffer}
		rec.ID = "O"
		_, err := base.Create(rec)
		require.Nil(t, err)
		history := historystore.NewMemoryInstance()
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		handler := NewInstance(context.Background(), newBarrierStore(base, 2), jobstore.NewMemoryInstance(), history,
			notifier, nil, Config{Policy: StrictPolicy{}})

		targets := []models.Stage{models.StageHired, models.StageRejected}
		errs := make([]error, len(targets))
		moved := make([]bool, len(targets))
		wg := sync.WaitGroup{}
		for idx, target := range targets {
			wg.Add(1)
			go func(idx int, target models.Stage) {
				defer wg.Done()
				result, err := handler.MoveCandidateToStage("recruiter", "O", target)
				errs[idx] = err
				moved[idx] = result.Moved
			}(idx, target)
		}
		wg.Wait()

		winner, loser := 0, 1
		if !moved[0] {
			winner, loser = 1, 0
		}
		require.True(t, moved[winner])
		require.Nil(t, errs[winner])
		require.False(t, moved[loser])
		require.ErrorIs(t, errs[loser], ErrStageChanged)

		stored, err := base.GetByID("O")
		require.Nil(t, err)
		require.Equal(t, targets[winner], stored.Stage)
		rows, err := handler.History("O")
		require.Nil(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, models.StageOffer, rows[0].FromStage)
		require.Equal(t, targets[winner], rows[0].ToStage)
	})

	t.Run(`concurrent moves to one stage`, func(t *testing.T) {
		base := candidatestore.NewMemoryInstance()
		rec := dbmodels.Candidate{FirstName: "Olga", LastName: "Test", Email: "olga@mail.test", Stage: models.StageOffer}
		rec.ID = "O"
		_, err := base.Create(rec)
		require.Nil(t, err)
		handler := NewInstance(context.Background(), newBarrierStore(base, 2), jobstore.NewMemoryInstance(),
			historystore.NewMemoryInstance(), nil, nil, Config{})

		errs := make([]error, 2)
		moved := make([]bool, 2)
		wg := sync.WaitGroup{}
		for idx := range errs {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				result, err := handler.MoveCandidateToStage("recruiter", "O", models.StageHired)
				errs[idx] = err
				moved[idx] = result.Moved
			}(idx)
		}
		wg.Wait()
		require.Nil(t, errs[0])
		require.Nil(t, errs[1])
		require.True(t, moved[0] != moved[1])
	})

	t.Run(`slow automation does not delay the move`, func(t *testing.T) {
		env := newTestEnv(t, false)
		env.listener.block = make(chan struct{})
		result, err := env.handler.MoveCandidateToStage("recruiter", "A", models.StageScreening)
		require.Nil(t, err)
		require.True(t, result.Moved)
		require.Empty(t, env.listener.list())

		close(env.listener.block)
		require.Eventually(t, func() bool { return len(env.listener.list()) == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run(`stats and stages`, func(t *testing.T) {
		env := newTestEnv(t, false)
		stats, err := env.handler.Stats("")
		require.Nil(t, err)
		require.Len(t, stats, 7)
		require.Equal(t, models.StageApplied, stats[0].Stage)
		require.Equal(t, 2, stats[0].Count)

		stages := env.handler.Stages()
		require.Len(t, stages, 7)
		require.True(t, stages[5].Terminal)
		require.False(t, stages[0].Terminal)
	})

	t.Run(`export pipeline`, func(t *testing.T) {
		env := newTestEnv(t, false)
		xlsexport.NewHandler()
		buf, err := env.handler.ExportXls("")
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		header, err := f.GetCellValue("Pipeline", "A1")
		require.Nil(t, err)
		require.Equal(t, "Applied (2)", header)
	})
}

func TestStrictPolicy(t *testing.T) {
	policy := StrictPolicy{}
	require.True(t, policy.IsAllowed(models.StageApplied, models.StageScreening))
	require.True(t, policy.IsAllowed(models.StageTechnical, models.StageInterview))
	require.True(t, policy.IsAllowed(models.StageOffer, models.StageRejected))
	require.False(t, policy.IsAllowed(models.StageApplied, models.StageHired))
	require.False(t, policy.IsAllowed(models.StageHired, models.StageApplied))
	require.False(t, policy.IsAllowed(models.StageRejected, models.StageScreening))
	require.True(t, AllowAllPolicy{}.IsAllowed(models.StageHired, models.StageApplied))
}
