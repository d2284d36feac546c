package initializers

import (
	"context"
	"hr-dashboard-backend/config"
	"hr-dashboard-backend/db"
	"hr-dashboard-backend/fiberlog"
	"hr-dashboard-backend/lib/analytics"
	"hr-dashboard-backend/lib/auth"
	boardtask "hr-dashboard-backend/lib/board-task"
	boardtaskstore "hr-dashboard-backend/lib/board-task/store"
	"hr-dashboard-backend/lib/budget"
	budgetstore "hr-dashboard-backend/lib/budget/store"
	"hr-dashboard-backend/lib/candidate"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	cvevaluation "hr-dashboard-backend/lib/cv-evaluation"
	pdfexport "hr-dashboard-backend/lib/export/pdf"
	xlsexport "hr-dashboard-backend/lib/export/xls"
	gpthandler "hr-dashboard-backend/lib/gpt"
	"hr-dashboard-backend/lib/job"
	jobstore "hr-dashboard-backend/lib/job/store"
	messagetemplate "hr-dashboard-backend/lib/message-template"
	messagetemplatestore "hr-dashboard-backend/lib/message-template/store"
	"hr-dashboard-backend/lib/notification"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/lib/pipeline"
	blockedcandidateworker "hr-dashboard-backend/lib/pipeline/blocked-candidate-worker"
	historystore "hr-dashboard-backend/lib/pipeline/history-store"
	"hr-dashboard-backend/lib/seed"
	connectionhub "hr-dashboard-backend/lib/ws/hub/connection-hub"
	"time"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

type stores struct {
	candidates    candidatestore.Provider
	jobs          jobstore.Provider
	history       historystore.Provider
	notifications notificationstore.Provider
	templates     messagetemplatestore.Provider
	budgets       budgetstore.Provider
	boardTasks    boardtaskstore.Provider
}

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	xlsexport.NewHandler()
	pdfexport.NewHandler(config.Conf.Export.FontDir)
	gpthandler.NewHandler(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID, config.Conf.App.CompanyName)
	auth.NewHandler()

	s := initStores()
	if config.Conf.Storage.SeedOnStart == nil || *config.Conf.Storage.SeedOnStart {
		err := seed.Load(seed.Stores{
			Candidates:    s.candidates,
			Jobs:          s.jobs,
			Templates:     s.templates,
			Budgets:       s.budgets,
			Notifications: s.notifications,
		}, time.Now())
		if err != nil {
			log.WithError(err).Error("ошибка загрузки демонстрационных данных")
		}
	}

	blockedAfterDays := config.Conf.Pipeline.BlockedAfterDays
	notification.NewHandler(s.notifications)
	budget.NewHandler(s.budgets, notification.Instance)
	candidate.NewHandler(s.candidates, s.jobs, blockedAfterDays)
	job.NewHandler(s.jobs, s.candidates)
	messagetemplate.NewHandler(s.templates, s.candidates, s.jobs, notification.Instance, messagetemplate.Config{
		CompanyName: config.Conf.App.CompanyName,
		SenderName:  config.Conf.Smtp.SenderName,
	})
	pipeline.NewHandler(ctx, s.candidates, s.jobs, s.history, notification.Instance, messagetemplate.Instance, pipeline.Config{
		Policy:           pipeline.NewPolicy(*config.Conf.Pipeline.StrictTransitions),
		BlockedAfterDays: blockedAfterDays,
	})
	cvevaluation.NewHandler(ctx, s.candidates, s.jobs, newAnalyzer(), newFlagStrategy(), cvevaluation.Config{
		Steps:     config.Conf.Simulation.Steps,
		StepDelay: time.Duration(config.Conf.Simulation.StepDelayMs) * time.Millisecond,
		Workers:   config.Conf.Simulation.Workers,
	})
	boardtask.NewHandler(s.boardTasks)
	analytics.NewHandler(s.candidates, s.jobs, blockedAfterDays)

	initWorkers(ctx, s)
}

func initStores() stores {
	if config.Conf.IsPostgresStorage() {
		return stores{
			candidates:    candidatestore.NewInstance(db.DB),
			jobs:          jobstore.NewInstance(db.DB),
			history:       historystore.NewInstance(db.DB),
			notifications: notificationstore.NewInstance(db.DB),
			templates:     messagetemplatestore.NewInstance(db.DB),
			budgets:       budgetstore.NewInstance(db.DB),
			boardTasks:    boardtaskstore.NewInstance(db.DB),
		}
	}
	return stores{
		candidates:    candidatestore.NewMemoryInstance(),
		jobs:          jobstore.NewMemoryInstance(),
		history:       historystore.NewMemoryInstance(),
		notifications: notificationstore.NewMemoryInstance(),
		templates:     messagetemplatestore.NewMemoryInstance(),
		budgets:       budgetstore.NewMemoryInstance(),
		boardTasks:    boardtaskstore.NewMemoryInstance(),
	}
}

func newAnalyzer() cvevaluation.Analyzer {
	if gpthandler.Client != nil {
		log.Info("оценка резюме выполняется через YandexGPT")
		return cvevaluation.NewGPTAnalyzer(gpthandler.Client)
	}
	return cvevaluation.NewSimulatedAnalyzer(config.Conf.Simulation.Seed)
}

func newFlagStrategy() cvevaluation.FlagStrategy {
	return cvevaluation.NewFlagStrategy(config.Conf.Simulation.FlagStrategy, config.Conf.Simulation.Seed,
		config.Conf.Simulation.DuplicateRate, config.Conf.Simulation.MissingInfoRate)
}

func initWorkers(ctx context.Context, s stores) {
	// Задача поиска кандидатов, задержавшихся на этапе
	blockedcandidateworker.StartWorker(ctx, s.candidates, notification.Instance,
		config.Conf.Pipeline.BlockedAfterDays,
		time.Duration(config.Conf.Pipeline.BlockedCheckIntervalSec)*time.Second)
}
