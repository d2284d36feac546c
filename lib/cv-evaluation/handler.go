package cvevaluation

import (
	"context"
	"fmt"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	pdfexport "hr-dashboard-backend/lib/export/pdf"
	filestorage "hr-dashboard-backend/lib/file-storage"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/lib/notification"
	initchecker "hr-dashboard-backend/lib/utils/init-checker"
	simtask "hr-dashboard-backend/lib/utils/sim-task"
	connectionhub "hr-dashboard-backend/lib/ws/hub/connection-hub"
	"hr-dashboard-backend/models"
	cvevaluationapimodels "hr-dashboard-backend/models/api/cv-evaluation"
	dbmodels "hr-dashboard-backend/models/db"
	wsmodels "hr-dashboard-backend/models/ws"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCandidateNotFound = errors.New("кандидат не найден")
	ErrJobNotFound       = errors.New("вакансия не найдена")
	ErrTaskNotFound      = errors.New("задача не найдена")
	ErrTaskFinished      = errors.New("задача уже завершена")
	ErrNoFiles           = errors.New("не переданы файлы резюме")
	ErrNoEvaluation      = errors.New("оценка кандидата еще не готова")
)

type Provider interface {
	Evaluate(req cvevaluationapimodels.EvaluateRequest) (taskID string, err error)
	BulkParse(files []cvevaluationapimodels.CVFile, autoCreate bool) (taskID string, err error)
	GetTask(id string) (cvevaluationapimodels.TaskView, error)
	CancelTask(id string) error
	Report(candidateID, taskID string) ([]byte, error)
}

// Pusher доставка прогресса задач подключенным клиентам
type Pusher interface {
	Broadcast(code, msg string, data interface{})
}

type Config struct {
	Steps     int
	StepDelay time.Duration
	Workers   int
	Now       func() time.Time
}

var Instance Provider

type impl struct {
	ctx            context.Context
	candidateStore candidatestore.Provider
	jobStore       jobstore.Provider
	storage        filestorage.Provider
	notifier       notification.Provider
	pusher         Pusher
	analyzer       Analyzer
	flags          FlagStrategy
	reports        pdfexport.Provider
	registry       *simtask.Registry
	runner         simtask.Runner
	workers        int
	now            func() time.Time
}

type Deps struct {
	CandidateStore candidatestore.Provider
	JobStore       jobstore.Provider
	Storage        filestorage.Provider
	Notifier       notification.Provider
	Pusher         Pusher
	Analyzer       Analyzer
	Flags          FlagStrategy
	Reports        pdfexport.Provider
}

func NewHandler(ctx context.Context, candidateStore candidatestore.Provider, jobStore jobstore.Provider,
	analyzer Analyzer, flags FlagStrategy, cfg Config) {
	initchecker.CheckInit(
		"file storage", filestorage.Instance,
		"notification", notification.Instance,
		"pdf export", pdfexport.Instance,
	)
	Instance = NewInstance(ctx, Deps{
		CandidateStore: candidateStore,
		JobStore:       jobStore,
		Storage:        filestorage.Instance,
		Notifier:       notification.Instance,
		Pusher:         connectionhub.Instance,
		Analyzer:       analyzer,
		Flags:          flags,
		Reports:        pdfexport.Instance,
	}, cfg)
}

// NewInstance ctx - время жизни сервиса, при его отмене фоновые задачи останавливаются
func NewInstance(ctx context.Context, deps Deps, cfg Config) Provider {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if deps.Flags == nil {
		deps.Flags = RulesFlagStrategy{}
	}
	return &impl{
		ctx:            ctx,
		candidateStore: deps.CandidateStore,
		jobStore:       deps.JobStore,
		storage:        deps.Storage,
		notifier:       deps.Notifier,
		pusher:         deps.Pusher,
		analyzer:       deps.Analyzer,
		flags:          deps.Flags,
		reports:        deps.Reports,
		registry:       simtask.NewRegistry(cfg.Now),
		runner:         simtask.NewRunner(cfg.Steps, cfg.StepDelay),
		workers:        cfg.Workers,
		now:            cfg.Now,
	}
}

func (i *impl) Evaluate(req cvevaluationapimodels.EvaluateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	candidate, err := i.candidateStore.GetByID(req.CandidateID)
	if err != nil {
		log.WithError(err).WithField("candidate_id", req.CandidateID).Error("ошибка получения кандидата")
		return "", err
	}
	if candidate == nil {
		return "", ErrCandidateNotFound
	}
	jobID := req.JobID
	if jobID == "" {
		jobID = candidate.JobID
	}
	var job *dbmodels.JobPosting
	if jobID != "" {
		job, err = i.jobStore.GetByID(jobID)
		if err != nil {
			return "", err
		}
		if job == nil {
			return "", ErrJobNotFound
		}
	}
	input := AnalyzeInput{
		Candidate: *candidate,
		Job:       job,
		CVText:    req.CVText,
	}
	taskID := i.registry.Start(i.ctx, models.TaskKindEvaluation, func(ctx context.Context, taskID string) error {
		return i.evaluate(ctx, taskID, input)
	})
	log.WithFields(log.Fields{"task_id": taskID, "candidate_id": candidate.ID}).Info("запущена оценка резюме")
	return taskID, nil
}

func (i *impl) evaluate(ctx context.Context, taskID string, input AnalyzeInput) error {
	if err := i.runner.Run(ctx, i.progress(taskID, models.TaskKindEvaluation, 90)); err != nil {
		return err
	}
	result, err := i.analyzer.Analyze(ctx, input)
	if err != nil {
		return errors.Wrap(err, "ошибка оценки резюме")
	}
	existing, err := i.candidateStore.ListAll()
	if err != nil {
		return err
	}
	result.MissingInfo = i.flags.HasMissingInfo(input.Candidate)
	result.PossibleDuplicate = i.flags.ShouldFlagAsDuplicate(input.Candidate, existing)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	completed := i.registry.Complete(taskID, func(task *dbmodels.EvaluationTask) {
		task.Evaluation = &result
	})
	if !completed {
		return context.Canceled
	}
	i.push(taskID, models.TaskKindEvaluation, models.TaskStatusDone, 100)
	if i.notifier != nil {
		i.notifier.Notify(models.NotificationEvaluationDone, "Оценка резюме завершена",
			fmt.Sprintf("%s: %d баллов из 100", input.Candidate.GetFullName(), result.OverallScore), input.Candidate.ID)
	}
	return nil
}

func (i *impl) BulkParse(files []cvevaluationapimodels.CVFile, autoCreate bool) (string, error) {
	if len(files) == 0 {
		return "", ErrNoFiles
	}
	taskID := i.registry.Start(i.ctx, models.TaskKindBulkParse, func(ctx context.Context, taskID string) error {
		return i.bulkParse(ctx, taskID, files, autoCreate)
	})
	log.WithFields(log.Fields{"task_id": taskID, "files": len(files)}).Info("запущен разбор резюме")
	return taskID, nil
}

func (i *impl) bulkParse(ctx context.Context, taskID string, files []cvevaluationapimodels.CVFile, autoCreate bool) error {
	results := make([]dbmodels.ParsedCV, len(files))
	progress := i.progress(taskID, models.TaskKindBulkParse, 90)
	var processed int32
	fileRunner := simtask.NewRunner(1, i.runner.Delay)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for idx, file := range files {
		g.Go(func() error {
			results[idx] = i.parseFile(gctx, file)
			if err := fileRunner.Run(gctx, nil); err != nil {
				return err
			}
			progress(int(atomic.AddInt32(&processed, 1)) * 100 / len(files))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	existing, err := i.candidateStore.ListAll()
	if err != nil {
		return err
	}
	created := 0
	now := i.now()
	for idx := range results {
		parsed := &results[idx]
		if parsed.Error != "" {
			continue
		}
		candidate := dbmodels.Candidate{
			FirstName:      parsed.FirstName,
			LastName:       parsed.LastName,
			Email:          parsed.Email,
			Phone:          parsed.Phone,
			Skills:         parsed.Skills,
			Source:         models.CandidateSourceBulkUpload,
			Stage:          models.StageApplied,
			StageEnteredAt: now,
			AppliedAt:      now,
			Notes:          "Загружен из файла " + parsed.FileName,
		}
		parsed.MissingInfo = i.flags.HasMissingInfo(candidate)
		parsed.PossibleDuplicate = i.flags.ShouldFlagAsDuplicate(candidate, existing)
		if autoCreate {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			id, err := i.candidateStore.Create(candidate)
			if err != nil {
				log.WithError(err).WithField("file_name", parsed.FileName).Error("ошибка создания кандидата из резюме")
				parsed.Error = "ошибка создания кандидата"
				continue
			}
			candidate.ID = id
			parsed.CandidateID = id
			created++
		}
		existing = append(existing, candidate)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	completed := i.registry.Complete(taskID, func(task *dbmodels.EvaluationTask) {
		task.BulkParse = results
	})
	if !completed {
		return context.Canceled
	}
	i.push(taskID, models.TaskKindBulkParse, models.TaskStatusDone, 100)
	if i.notifier != nil {
		i.notifier.Notify(models.NotificationBulkParseDone, "Разбор резюме завершен",
			fmt.Sprintf("Обработано файлов: %d, создано кандидатов: %d", len(files), created), "")
	}
	return nil
}

func (i *impl) parseFile(ctx context.Context, file cvevaluationapimodels.CVFile) dbmodels.ParsedCV {
	result := dbmodels.ParsedCV{FileName: file.Name}
	if i.storage != nil {
		fileID, err := i.storage.UploadCV(ctx, file.Name, file.Body)
		if err != nil {
			result.Error = "ошибка сохранения файла"
			return result
		}
		result.FileID = fileID
	}
	content := parseCV(file.Name, file.Body)
	if content.FirstName == "" {
		result.Error = "не удалось определить имя кандидата"
		return result
	}
	result.FirstName = content.FirstName
	result.LastName = content.LastName
	result.Email = content.Email
	result.Phone = content.Phone
	result.Skills = content.Skills
	return result
}

func (i *impl) GetTask(id string) (cvevaluationapimodels.TaskView, error) {
	task, ok := i.registry.Get(id)
	if !ok {
		return cvevaluationapimodels.TaskView{}, ErrTaskNotFound
	}
	return cvevaluationapimodels.TaskConvert(task), nil
}

func (i *impl) CancelTask(id string) error {
	err := i.registry.Cancel(id)
	switch {
	case errors.Is(err, simtask.ErrNotFound):
		return ErrTaskNotFound
	case errors.Is(err, simtask.ErrTaskFinished):
		return ErrTaskFinished
	case err != nil:
		return err
	}
	task, _ := i.registry.Get(id)
	i.push(id, task.Kind, models.TaskStatusCancelled, task.Progress)
	log.WithField("task_id", id).Info("задача отменена пользователем")
	return nil
}

// Report pdf отчет по результатам оценки кандидата, без taskID по последней завершенной оценке
func (i *impl) Report(candidateID, taskID string) ([]byte, error) {
	if taskID == "" {
		taskID = i.lastEvaluationTask(candidateID)
		if taskID == "" {
			return nil, ErrNoEvaluation
		}
	}
	task, ok := i.registry.Get(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if task.Evaluation == nil || task.Status != models.TaskStatusDone {
		return nil, ErrNoEvaluation
	}
	if task.Evaluation.CandidateID != candidateID {
		return nil, ErrTaskNotFound
	}
	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}
	data := pdfexport.ReportData{
		CandidateName:     candidate.GetFullName(),
		Email:             candidate.Email,
		Stage:             candidate.Stage,
		OverallScore:      task.Evaluation.OverallScore,
		SkillsMatch:       task.Evaluation.SkillsMatch,
		ExperienceMatch:   task.Evaluation.ExperienceMatch,
		Strengths:         task.Evaluation.Strengths,
		Gaps:              task.Evaluation.Gaps,
		Recommendation:    task.Evaluation.Recommendation,
		Summary:           task.Evaluation.Summary,
		MissingInfo:       task.Evaluation.MissingInfo,
		PossibleDuplicate: task.Evaluation.PossibleDuplicate,
		GeneratedAt:       i.now(),
	}
	if task.Evaluation.JobID != "" {
		job, err := i.jobStore.GetByID(task.Evaluation.JobID)
		if err != nil {
			return nil, err
		}
		if job != nil {
			data.JobTitle = job.Title
		}
	}
	return i.reports.EvaluationReport(data)
}

func (i *impl) lastEvaluationTask(candidateID string) string {
	list := i.registry.Find(func(task dbmodels.EvaluationTask) bool {
		return task.Status == models.TaskStatusDone &&
			task.Evaluation != nil &&
			task.Evaluation.CandidateID == candidateID
	})
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1].ID
}

// progress прогресс шагов масштабируется в диапазон 0..maxPercent, 100 выставляется по завершении
func (i *impl) progress(taskID string, kind models.TaskKind, maxPercent int) func(percent int) {
	return func(percent int) {
		scaled := percent * maxPercent / 100
		i.registry.SetProgress(taskID, scaled)
		i.push(taskID, kind, models.TaskStatusRunning, scaled)
	}
}

func (i *impl) push(taskID string, kind models.TaskKind, status models.TaskStatus, percent int) {
	if i.pusher == nil {
		return
	}
	i.pusher.Broadcast(wsmodels.CodeTaskProgress, string(status), cvevaluationapimodels.TaskProgress{
		TaskID:   taskID,
		Kind:     kind,
		Status:   status,
		Progress: percent,
	})
}
