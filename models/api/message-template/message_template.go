package msgtemplateapimodels

import (
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

type MsgTemplateData struct {
	Name         string       `json:"name"`
	Subject      string       `json:"subject"`
	Body         string       `json:"body"` // текст с подстановками {{.CandidateName}}, {{.JobTitle}} ...
	Category     string       `json:"category"`
	TriggerStage models.Stage `json:"trigger_stage"` // этап для автоматической отправки
	AutoSend     bool         `json:"auto_send"`
}

func (r MsgTemplateData) Validate() error {
	if len(strings.TrimSpace(r.Name)) == 0 {
		return errors.New("не указано название шаблона")
	}
	if len(strings.TrimSpace(r.Subject)) == 0 {
		return errors.New("не указана тема письма")
	}
	if len(strings.TrimSpace(r.Body)) == 0 {
		return errors.New("не указан текст письма")
	}
	if r.TriggerStage != "" && !r.TriggerStage.IsValid() {
		return errors.New("неизвестный этап для автоматической отправки")
	}
	if r.AutoSend && r.TriggerStage == "" {
		return errors.New("для автоматической отправки необходимо указать этап")
	}
	if err := checkTemplate("subject", r.Subject); err != nil {
		return errors.Wrap(err, "ошибка в теме письма")
	}
	if err := checkTemplate("body", r.Body); err != nil {
		return errors.Wrap(err, "ошибка в тексте письма")
	}
	return nil
}

// checkTemplate шаблон должен выполняться на пустых подстановках
func checkTemplate(name, text string) error {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return err
	}
	return tpl.Execute(io.Discard, models.TemplateData{})
}

func (r MsgTemplateData) ToDbModel(rec *dbmodels.EmailTemplate) {
	rec.Name = strings.TrimSpace(r.Name)
	rec.Subject = r.Subject
	rec.Body = r.Body
	rec.Category = r.Category
	rec.TriggerStage = r.TriggerStage
	rec.AutoSend = r.AutoSend
}

type MsgTemplateView struct {
	ID string `json:"id"`
	MsgTemplateData
	UpdatedAt time.Time `json:"updated_at"`
}

func MsgTemplateConvert(rec dbmodels.EmailTemplate) MsgTemplateView {
	return MsgTemplateView{
		ID: rec.ID,
		MsgTemplateData: MsgTemplateData{
			Name:         rec.Name,
			Subject:      rec.Subject,
			Body:         rec.Body,
			Category:     rec.Category,
			TriggerStage: rec.TriggerStage,
			AutoSend:     rec.AutoSend,
		},
		UpdatedAt: rec.UpdatedAt,
	}
}

type RenderRequest struct {
	CandidateID string `json:"candidate_id"`
}

func (r RenderRequest) Validate() error {
	if len(strings.TrimSpace(r.CandidateID)) == 0 {
		return errors.New("не указан кандидат")
	}
	return nil
}

type RenderedMessage struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	HtmlBody string `json:"html_body"`
}

type SendRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

func (r SendRequest) Validate() error {
	if len(r.CandidateIDs) == 0 {
		return errors.New("не указаны кандидаты")
	}
	return nil
}

type SendResult struct {
	Sent      int      `json:"sent"`
	FailMails []string `json:"fail_mails,omitempty"`
}
