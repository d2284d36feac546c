package pipeline

import (
	"bytes"
	"context"
	"fmt"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	xlsexport "hr-dashboard-backend/lib/export/xls"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/lib/notification"
	"hr-dashboard-backend/lib/pipeline/board"
	historystore "hr-dashboard-backend/lib/pipeline/history-store"
	"hr-dashboard-backend/models"
	candidateapimodels "hr-dashboard-backend/models/api/candidate"
	pipelineapimodels "hr-dashboard-backend/models/api/pipeline"
	dbmodels "hr-dashboard-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownStage         = errors.New("неизвестный этап")
	ErrTransitionNotAllowed = errors.New("переход между этапами запрещен")
	ErrStageChanged         = errors.New("этап кандидата уже изменен, обновите данные")
)

type Provider interface {
	Board(jobID string) ([]pipelineapimodels.StageColumn, error)
	MoveCandidateToStage(userID, candidateID string, target models.Stage) (pipelineapimodels.MoveResult, error)
	History(candidateID string) ([]pipelineapimodels.StageHistoryView, error)
	Stats(jobID string) ([]pipelineapimodels.StageStat, error)
	Stages() []pipelineapimodels.StageInfo
	ExportXls(jobID string) (*bytes.Buffer, error)
}

// StageListener реакция на смену этапа (автоматические письма)
type StageListener interface {
	OnStageChanged(ctx context.Context, candidate dbmodels.Candidate)
}

var Instance Provider

type Config struct {
	Policy           TransitionPolicy
	BlockedAfterDays int
	Now              func() time.Time
}

func NewHandler(ctx context.Context, candidateStore candidatestore.Provider, jobStore jobstore.Provider, historyStore historystore.Provider,
	notifier notification.Provider, listener StageListener, cfg Config) {
	Instance = NewInstance(ctx, candidateStore, jobStore, historyStore, notifier, listener, cfg)
}

func NewInstance(ctx context.Context, candidateStore candidatestore.Provider, jobStore jobstore.Provider, historyStore historystore.Provider,
	notifier notification.Provider, listener StageListener, cfg Config) Provider {
	if cfg.Policy == nil {
		cfg.Policy = AllowAllPolicy{}
	}
	if cfg.BlockedAfterDays <= 0 {
		cfg.BlockedAfterDays = models.DefaultBlockedAfterDays
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &impl{
		ctx:            ctx,
		candidateStore: candidateStore,
		jobStore:       jobStore,
		historyStore:   historyStore,
		notifier:       notifier,
		listener:       listener,
		cfg:            cfg,
	}
}

type impl struct {
	ctx            context.Context
	candidateStore candidatestore.Provider
	jobStore       jobstore.Provider
	historyStore   historystore.Provider
	notifier       notification.Provider
	listener       StageListener
	cfg            Config
}

func (i impl) Board(jobID string) ([]pipelineapimodels.StageColumn, error) {
	list, _, err := i.candidateStore.List(dbmodels.CandidateFilter{JobID: jobID, NoPaging: true})
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, err
	}
	jobTitles := i.jobTitles()
	now := i.cfg.Now()
	groups := board.GroupByStage(list)
	result := make([]pipelineapimodels.StageColumn, 0, len(groups))
	for _, group := range groups {
		column := pipelineapimodels.StageColumn{
			Stage:      group.Stage,
			Count:      len(group.Candidates),
			Candidates: make([]candidateapimodels.CandidateView, 0, len(group.Candidates)),
		}
		for _, rec := range group.Candidates {
			column.Candidates = append(column.Candidates,
				candidateapimodels.CandidateConvert(rec, jobTitles[rec.JobID], now, i.cfg.BlockedAfterDays))
		}
		result = append(result, column)
	}
	return result, nil
}

func (i impl) ExportXls(jobID string) (*bytes.Buffer, error) {
	columns, err := i.Board(jobID)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportPipeline(columns)
}

func (i impl) MoveCandidateToStage(userID, candidateID string, target models.Stage) (pipelineapimodels.MoveResult, error) {
	logger := log.WithFields(log.Fields{
		"candidate_id": candidateID,
		"stage":        target,
	})
	if !target.IsValid() {
		return pipelineapimodels.MoveResult{}, ErrUnknownStage
	}
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return pipelineapimodels.MoveResult{}, err
	}
	if rec == nil {
		logger.Info("кандидат не найден, этап не изменен")
		return pipelineapimodels.MoveResult{Moved: false}, nil
	}
	if rec.Stage == target {
		return i.moveResult(*rec, false), nil
	}
	if !i.cfg.Policy.IsAllowed(rec.Stage, target) {
		return pipelineapimodels.MoveResult{}, errors.Wrapf(ErrTransitionNotAllowed, "%s -> %s", rec.Stage, target)
	}
	fromStage := rec.Stage
	now := i.cfg.Now()
	changed, err := i.candidateStore.ChangeStage(candidateID, fromStage, target, now)
	if err != nil {
		logger.WithError(err).Error("ошибка смены этапа кандидата")
		return pipelineapimodels.MoveResult{}, err
	}
	if !changed {
		return i.concurrentMoveResult(candidateID, fromStage, target)
	}
	rec.Stage = target
	rec.StageEnteredAt = now

	_, err = i.historyStore.Create(dbmodels.StageHistory{
		CandidateID: candidateID,
		FromStage:   fromStage,
		ToStage:     target,
		ChangedAt:   now,
		ChangedBy:   userID,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка записи истории этапов")
	}
	if i.notifier != nil {
		i.notifier.Notify(models.NotificationStageChange, "Смена этапа",
			fmt.Sprintf("%s переведен(а) на этап %s", rec.GetFullName(), target), candidateID)
	}
	if i.listener != nil {
		go i.runListener(*rec)
	}
	logger.WithField("from_stage", fromStage).Info("кандидат переведен на новый этап")
	return i.moveResult(*rec, true), nil
}

// runListener выполняется вне запроса, отмена контекста сервиса прекращает рассылку
func (i impl) runListener(candidate dbmodels.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("candidate_id", candidate.ID).Errorf("ошибка обработки смены этапа: %v", r)
		}
	}()
	if i.ctx.Err() != nil {
		return
	}
	i.listener.OnStageChanged(i.ctx, candidate)
}

// concurrentMoveResult этап изменился между чтением и записью
func (i impl) concurrentMoveResult(candidateID string, fromStage, target models.Stage) (pipelineapimodels.MoveResult, error) {
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	if rec == nil {
		return pipelineapimodels.MoveResult{Moved: false}, nil
	}
	if rec.Stage == target {
		return i.moveResult(*rec, false), nil
	}
	return pipelineapimodels.MoveResult{}, errors.Wrapf(ErrStageChanged, "%s -> %s", fromStage, rec.Stage)
}

func (i impl) History(candidateID string) ([]pipelineapimodels.StageHistoryView, error) {
	list, err := i.historyStore.List(candidateID)
	if err != nil {
		log.WithError(err).WithField("candidate_id", candidateID).Error("ошибка получения истории этапов")
		return nil, err
	}
	result := make([]pipelineapimodels.StageHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, pipelineapimodels.StageHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Stats(jobID string) ([]pipelineapimodels.StageStat, error) {
	list, _, err := i.candidateStore.List(dbmodels.CandidateFilter{JobID: jobID, NoPaging: true})
	if err != nil {
		return nil, err
	}
	counts := board.CountByStage(list)
	result := make([]pipelineapimodels.StageStat, 0, len(models.StageList))
	for _, stage := range models.StageList {
		result = append(result, pipelineapimodels.StageStat{Stage: stage, Count: counts[stage]})
	}
	return result, nil
}

func (i impl) Stages() []pipelineapimodels.StageInfo {
	result := make([]pipelineapimodels.StageInfo, 0, len(models.StageList))
	for idx, stage := range models.StageList {
		result = append(result, pipelineapimodels.StageInfo{
			Stage:    stage,
			Order:    idx,
			Terminal: stage.IsTerminal(),
		})
	}
	return result
}

func (i impl) moveResult(rec dbmodels.Candidate, moved bool) pipelineapimodels.MoveResult {
	view := candidateapimodels.CandidateConvert(rec, i.jobTitles()[rec.JobID], i.cfg.Now(), i.cfg.BlockedAfterDays)
	return pipelineapimodels.MoveResult{
		Moved:     moved,
		Candidate: &view,
	}
}

func (i impl) jobTitles() map[string]string {
	result := map[string]string{}
	if i.jobStore == nil {
		return result
	}
	list, err := i.jobStore.List(dbmodels.JobFilter{})
	if err != nil {
		log.WithError(err).Warn("ошибка получения списка вакансий")
		return result
	}
	for _, job := range list {
		result[job.ID] = job.Title
	}
	return result
}
