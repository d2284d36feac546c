package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки журнала запросов
type Config struct {
	Logger    *logrus.Logger
	Tags      []string
	SkipPaths []string // пути без записи в журнал, например websocket
}

// ConfigDefault журнал в стандартный logrus без тел запросов
var ConfigDefault = Config{
	Tags: []string{
		RequestID,
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
	},
}

func (c Config) skip(path string) bool {
	for _, item := range c.SkipPaths {
		if item == path {
			return true
		}
	}
	return false
}
