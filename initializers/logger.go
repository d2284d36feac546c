package initializers

import (
	"hr-dashboard-backend/config"
	"hr-dashboard-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

// InitLogger настраивает logrus и возвращает конфигурацию журнала api
func InitLogger() *fiberlog.Config {
	formatter := &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
	level, err := log.ParseLevel(config.Conf.App.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetFormatter(formatter)
	log.SetLevel(level)
	if err != nil {
		log.WithField("level", config.Conf.App.LogLevel).Warn("неизвестный уровень журнала, используется info")
	}

	apiLogger := log.New()
	apiLogger.SetFormatter(formatter)
	apiLogger.SetLevel(level)
	tags := []string{
		fiberlog.RequestID,
		fiberlog.TagMethod,
		fiberlog.TagPath,
		fiberlog.TagStatus,
		fiberlog.TagLatency,
		fiberlog.TagIP,
	}
	if config.Conf.App.LogBodies != nil && *config.Conf.App.LogBodies {
		tags = append(tags, fiberlog.TagBody, fiberlog.TagResBody)
	}
	return &fiberlog.Config{
		Logger:    apiLogger,
		Tags:      tags,
		SkipPaths: []string{"/api/v1/ws"},
	}
}
