package cvevaluation

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	pdfexport "hr-dashboard-backend/lib/export/pdf"
	filestorage "hr-dashboard-backend/lib/file-storage"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/lib/notification"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	cvevaluationapimodels "hr-dashboard-backend/models/api/cv-evaluation"
	dbmodels "hr-dashboard-backend/models/db"
)

type pusherMock struct {
	mu       sync.Mutex
	progress []cvevaluationapimodels.TaskProgress
}

func (p *pusherMock) Broadcast(code, msg string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if item, ok := data.(cvevaluationapimodels.TaskProgress); ok {
		p.progress = append(p.progress, item)
	}
}

// blockingAnalyzer отдает результат только после release, контекст не проверяет
type blockingAnalyzer struct {
	entered chan struct{}
	release chan struct{}
}

func (a blockingAnalyzer) Analyze(_ context.Context, _ AnalyzeInput) (dbmodels.EvaluationResult, error) {
	close(a.entered)
	<-a.release
	return dbmodels.EvaluationResult{OverallScore: 80}, nil
}

type testEnv struct {
	handler     Provider
	candidates  candidatestore.Provider
	notifier    notification.Provider
	pusher      *pusherMock
	candidateID string
	jobID       string
}

func newTestEnv(t *testing.T, ctx context.Context, delay time.Duration) testEnv {
	candidates := candidatestore.NewMemoryInstance()
	jobs := jobstore.NewMemoryInstance()
	jobID, err := jobs.Create(dbmodels.JobPosting{Title: "Go Developer", Requirements: []string{"Go", "SQL"}})
	require.Nil(t, err)
	candidateID, err := candidates.Create(dbmodels.Candidate{
		FirstName: "Anna", LastName: "Petrova", Email: "anna@mail.test", JobID: jobID,
		Stage: models.StageScreening, Skills: []string{"Go"}, ExperienceYears: 3,
	})
	require.Nil(t, err)
	notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
	pusher := &pusherMock{}
	handler := NewInstance(ctx, Deps{
		CandidateStore: candidates,
		JobStore:       jobs,
		Storage:        filestorage.NewMemoryInstance(),
		Notifier:       notifier,
		Pusher:         pusher,
		Analyzer:       NewSimulatedAnalyzer(5),
		Flags:          RulesFlagStrategy{},
		Reports:        pdfexport.NewInstance(""),
	}, Config{Steps: 3, StepDelay: delay, Workers: 2})
	return testEnv{
		handler:     handler,
		candidates:  candidates,
		notifier:    notifier,
		pusher:      pusher,
		candidateID: candidateID,
		jobID:       jobID,
	}
}

func waitTask(t *testing.T, handler Provider, id string) cvevaluationapimodels.TaskView {
	var task cvevaluationapimodels.TaskView
	require.Eventually(t, func() bool {
		var err error
		task, err = handler.GetTask(id)
		require.Nil(t, err)
		return task.Status.IsFinished()
	}, 5*time.Second, 5*time.Millisecond)
	return task
}

func TestEvaluate(t *testing.T) {
	t.Run(`validation`, func(t *testing.T) {
		env := newTestEnv(t, context.Background(), 0)
		_, err := env.handler.Evaluate(cvevaluationapimodels.EvaluateRequest{})
		require.Equal(t, "не указан кандидат", err.Error())
		_, err = env.handler.Evaluate(cvevaluationapimodels.EvaluateRequest{CandidateID: "missing"})
		require.ErrorIs(t, err, ErrCandidateNotFound)
		_, err = env.handler.Evaluate(cvevaluationapimodels.EvaluateRequest{CandidateID: env.candidateID, JobID: "missing"})
		require.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run(`done with result and report`, func(t *testing.T) {
		env := newTestEnv(t, context.Background(), 0)
		taskID, err := env.handler.Evaluate(cvevaluationapimodels.EvaluateRequest{CandidateID: env.candidateID, CVText: "SQL daily"})
		require.Nil(t, err)
		task := waitTask(t, env.handler, taskID)
		require.Equal(t, models.TaskStatusDone, task.Status)
		require.Equal(t, 100, task.Progress)
		require.NotNil(t, task.Evaluation)
		require.Equal(t, env.jobID, task.Evaluation.JobID)
		require.Equal(t, []string{"Go", "SQL"}, task.Evaluation.MatchedSkills)
		require.True(t, task.Evaluation.MissingInfo)
		require.False(t, task.Evaluation.PossibleDuplicate)

		list, err := env.notifier.List(true)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, models.NotificationEvaluationDone, list[0].Type)
		require.Equal(t, env.candidateID, list[0].CandidateID)

		env.pusher.mu.Lock()
		require.NotEmpty(t, env.pusher.progress)
		require.Equal(t, models.TaskStatusDone, env.pusher.progress[len(env.pusher.progress)-1].Status)
		env.pusher.mu.Unlock()

		report, err := env.handler.Report(env.candidateID, taskID)
		require.Nil(t, err)
		require.True(t, bytes.HasPrefix(report, []byte("%PDF-")))
		_, err = env.handler.Report("other", taskID)
		require.ErrorIs(t, err, ErrTaskNotFound)
		latest, err := env.handler.Report(env.candidateID, "")
		require.Nil(t, err)
		require.True(t, bytes.HasPrefix(latest, []byte("%PDF-")))
		_, err = env.handler.Report("other", "")
		require.ErrorIs(t, err, ErrNoEvaluation)

		require.ErrorIs(t, env.handler.CancelTask(taskID), ErrTaskFinished)
	})

	t.Run(`cancel`, func(t *testing.T) {
		env := newTestEnv(t, context.Background(), time.Second)
		taskID, err := env.handler.Evaluate(cvevaluationapimodels.EvaluateRequest{CandidateID: env.candidateID})
		require.Nil(t, err)
		require.Nil(t, env.handler.CancelTask(taskID))
		task := waitTask(t, env.handler, taskID)
		require.Equal(t, models.TaskStatusCancelled, task.Status)
		require.Nil(t, task.Evaluation)
		_, err = env.handler.Report(env.candidateID, taskID)
		require.ErrorIs(t, err, ErrNoEvaluation)
		require.ErrorIs(t, env.handler.CancelTask("missing"), ErrTaskNotFound)
	})

	t.Run(`cancel during analysis sends no completion`, func(t *testing.T) {
		candidates := candidatestore.NewMemoryInstance()
		candidateID, err := candidates.Create(dbmodels.Candidate{FirstName: "Anna", LastName: "Petrova", Email: "anna@mail.test"})
		require.Nil(t, err)
		notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
		pusher := &pusherMock{}
		analyzer := blockingAnalyzer{entered: make(chan struct{}), release: make(chan struct{})}
		handler := NewInstance(context.Background(), Deps{
			CandidateStore: candidates,
			JobStore:       jobstore.NewMemoryInstance(),
			Notifier:       notifier,
			Pusher:         pusher,
			Analyzer:       analyzer,
		}, Config{Steps: 1})

		taskID, err := handler.Evaluate(cvevaluationapimodels.EvaluateRequest{CandidateID: candidateID})
		require.Nil(t, err)
		<-analyzer.entered
		require.Nil(t, handler.CancelTask(taskID))
		close(analyzer.release)
		<-handler.(*impl).registry.Done(taskID)

		task, err := handler.GetTask(taskID)
		require.Nil(t, err)
		require.Equal(t, models.TaskStatusCancelled, task.Status)
		require.Nil(t, task.Evaluation)
		list, err := notifier.List(false)
		require.Nil(t, err)
		require.Empty(t, list)
		pusher.mu.Lock()
		for _, item := range pusher.progress {
			require.NotEqual(t, models.TaskStatusDone, item.Status)
		}
		pusher.mu.Unlock()
	})

	t.Run(`service shutdown cancels tasks`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		env := newTestEnv(t, ctx, time.Second)
		taskID, err := env.handler.Evaluate(cvevaluationapimodels.EvaluateRequest{CandidateID: env.candidateID})
		require.Nil(t, err)
		cancel()
		task := waitTask(t, env.handler, taskID)
		require.Equal(t, models.TaskStatusCancelled, task.Status)
	})
}

func TestBulkParse(t *testing.T) {
	files := []cvevaluationapimodels.CVFile{
		{Name: "anna.txt", Body: []byte("Anna Petrova\nanna@mail.test +7 912 555 12 34\nGo, Docker")},
		{Name: "john_smith_cv.pdf", Body: []byte("%PDF-1.7 ...")},
		{Name: "123.pdf", Body: []byte("%PDF-1.7 ...")},
	}

	t.Run(`no files`, func(t *testing.T) {
		env := newTestEnv(t, context.Background(), 0)
		_, err := env.handler.BulkParse(nil, true)
		require.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run(`parse and auto create`, func(t *testing.T) {
		env := newTestEnv(t, context.Background(), 0)
		before, err := env.candidates.Count()
		require.Nil(t, err)
		taskID, err := env.handler.BulkParse(files, true)
		require.Nil(t, err)
		task := waitTask(t, env.handler, taskID)
		require.Equal(t, models.TaskStatusDone, task.Status)
		require.Len(t, task.BulkParse, 3)

		anna := task.BulkParse[0]
		require.Equal(t, "anna.txt", anna.FileName)
		require.NotEmpty(t, anna.FileID)
		require.Equal(t, "anna@mail.test", anna.Email)
		require.Equal(t, []string{"Go", "Docker"}, anna.Skills)
		require.True(t, anna.PossibleDuplicate)
		require.False(t, anna.MissingInfo)
		require.NotEmpty(t, anna.CandidateID)

		john := task.BulkParse[1]
		require.Equal(t, "John", john.FirstName)
		require.Equal(t, "Smith", john.LastName)
		require.True(t, john.MissingInfo)
		require.NotEmpty(t, john.CandidateID)

		require.NotEmpty(t, task.BulkParse[2].Error)
		require.Empty(t, task.BulkParse[2].CandidateID)

		after, err := env.candidates.Count()
		require.Nil(t, err)
		require.Equal(t, before+2, after)
		created, err := env.candidates.GetByID(john.CandidateID)
		require.Nil(t, err)
		require.Equal(t, models.StageApplied, created.Stage)
		require.Equal(t, models.CandidateSourceBulkUpload, created.Source)

		list, err := env.notifier.List(true)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Обработано файлов: 3, создано кандидатов: 2", list[0].Message)
	})

	t.Run(`without auto create`, func(t *testing.T) {
		env := newTestEnv(t, context.Background(), 0)
		taskID, err := env.handler.BulkParse(files[:2], false)
		require.Nil(t, err)
		task := waitTask(t, env.handler, taskID)
		require.Equal(t, models.TaskStatusDone, task.Status)
		require.Empty(t, task.BulkParse[0].CandidateID)
		count, err := env.candidates.Count()
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
	})
}
