package initializers

import (
	"hr-dashboard-backend/config"
	"hr-dashboard-backend/db"

	log "github.com/sirupsen/logrus"
)

func InitDBConnection() {
	if !config.Conf.IsPostgresStorage() {
		log.Info("используется хранилище в памяти, данные сбрасываются при перезапуске")
		return
	}
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}
}
