package db

import (
	dbmodels "hr-dashboard-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.JobPosting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры JobPosting")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.StageHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StageHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	if err := DB.AutoMigrate(&dbmodels.EmailTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EmailTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.Budget{}, &dbmodels.BudgetExpense{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Budget")
	}
	if err := DB.AutoMigrate(&dbmodels.BoardSession{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BoardSession")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
