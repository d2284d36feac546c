package initializers

import (
	"hr-dashboard-backend/config"
	"hr-dashboard-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() {
	cfg := config.Conf.Smtp
	tlsEnabled := cfg.TLSEnabled == nil || *cfg.TLSEnabled
	if err := smtp.Connect(cfg.User, cfg.Password, cfg.Host, cfg.Port, tlsEnabled, cfg.SenderEmail, cfg.SenderName); err != nil {
		log.WithError(err).Fatal("ошибка инициализации smtp клиента")
	}
	if !smtp.Instance.IsConfigured() {
		log.Warn("smtp не настроен, отправка писем кандидатам недоступна")
	}
}
