package analytics

import (
	"hr-dashboard-backend/lib/budget"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/lib/notification"
	"hr-dashboard-backend/lib/pipeline/board"
	initchecker "hr-dashboard-backend/lib/utils/init-checker"
	"hr-dashboard-backend/models"
	analyticsapimodels "hr-dashboard-backend/models/api/analytics"
	pipelineapimodels "hr-dashboard-backend/models/api/pipeline"
	dbmodels "hr-dashboard-backend/models/db"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Summary() (analyticsapimodels.Summary, error)
}

var Instance Provider

func NewHandler(candidateStore candidatestore.Provider, jobStore jobstore.Provider, blockedAfterDays int) {
	initchecker.CheckInit(
		"budget", budget.Instance,
		"notification", notification.Instance,
	)
	Instance = NewInstance(candidateStore, jobStore, budget.Instance, notification.Instance, blockedAfterDays, time.Now)
}

func NewInstance(candidateStore candidatestore.Provider, jobStore jobstore.Provider, budgetProvider budget.Provider,
	notifier notification.Provider, blockedAfterDays int, now func() time.Time) Provider {
	if blockedAfterDays <= 0 {
		blockedAfterDays = models.DefaultBlockedAfterDays
	}
	return &impl{
		candidateStore:   candidateStore,
		jobStore:         jobStore,
		budgetProvider:   budgetProvider,
		notifier:         notifier,
		blockedAfterDays: blockedAfterDays,
		now:              now,
	}
}

type impl struct {
	candidateStore   candidatestore.Provider
	jobStore         jobstore.Provider
	budgetProvider   budget.Provider
	notifier         notification.Provider
	blockedAfterDays int
	now              func() time.Time
}

func (i impl) Summary() (analyticsapimodels.Summary, error) {
	result := analyticsapimodels.Summary{
		ByStage:  []pipelineapimodels.StageStat{},
		BySource: []analyticsapimodels.SourceStat{},
	}
	candidates, err := i.candidateStore.ListAll()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return result, err
	}
	result.CandidatesTotal = len(candidates)
	counts := board.CountByStage(candidates)
	for _, stage := range models.StageList {
		result.ByStage = append(result.ByStage, pipelineapimodels.StageStat{Stage: stage, Count: counts[stage]})
	}
	result.BySource = sourceStats(candidates)

	now := i.now()
	activeDays, active := 0, 0
	for _, rec := range candidates {
		if rec.IsBlocked(now, i.blockedAfterDays) {
			result.BlockedCount++
		}
		if !rec.Stage.IsTerminal() {
			activeDays += rec.DaysInStage(now)
			active++
		}
	}
	if active > 0 {
		result.AvgDaysInStage = round1(float64(activeDays) / float64(active))
	}
	if result.CandidatesTotal > 0 {
		result.HireRate = round1(float64(counts[models.StageHired]) * 100 / float64(result.CandidatesTotal))
		result.RejectionRate = round1(float64(counts[models.StageRejected]) * 100 / float64(result.CandidatesTotal))
	}

	jobs, err := i.jobStore.List(dbmodels.JobFilter{Status: models.JobStatusOpen})
	if err != nil {
		log.WithError(err).Error("ошибка получения списка вакансий")
		return result, err
	}
	result.OpenJobs = len(jobs)

	budgetSummary, err := i.budgetProvider.Summary()
	if err != nil {
		return result, err
	}
	result.BudgetUtilization = budgetSummary.Utilization

	result.UnreadNotifications, err = i.notifier.UnreadCount()
	if err != nil {
		log.WithError(err).Error("ошибка получения количества уведомлений")
		return result, err
	}
	return result, nil
}

func sourceStats(candidates []dbmodels.Candidate) []analyticsapimodels.SourceStat {
	result := []analyticsapimodels.SourceStat{}
	index := map[models.CandidateSource]int{}
	for _, rec := range candidates {
		idx, ok := index[rec.Source]
		if !ok {
			idx = len(result)
			index[rec.Source] = idx
			result = append(result, analyticsapimodels.SourceStat{Source: rec.Source})
		}
		result[idx].Count++
	}
	return result
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
