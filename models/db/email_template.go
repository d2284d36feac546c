package dbmodels

import "hr-dashboard-backend/models"

type EmailTemplate struct {
	BaseModel
	Name         string
	Subject      string
	Body         string
	Category     string
	TriggerStage models.Stage // этап, при переходе на который шаблон отправляется автоматически
	AutoSend     bool
}
