package messagetemplate

import (
	"bytes"
	"context"
	"fmt"
	"html"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	messagetemplatestore "hr-dashboard-backend/lib/message-template/store"
	"hr-dashboard-backend/lib/notification"
	"hr-dashboard-backend/lib/smtp"
	initchecker "hr-dashboard-backend/lib/utils/init-checker"
	"hr-dashboard-backend/models"
	msgtemplateapimodels "hr-dashboard-backend/models/api/message-template"
	dbmodels "hr-dashboard-backend/models/db"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound          = errors.New("шаблон сообщения не найден")
	ErrCandidateNotFound = errors.New("не найден кандидат по указанному ID")
	ErrNoEmail           = errors.New("у кандидата не указана почта")
	ErrSmtpNotConfigured = errors.New("smtp клиент не настроен")
)

type Provider interface {
	List() ([]msgtemplateapimodels.MsgTemplateView, error)
	Get(id string) (msgtemplateapimodels.MsgTemplateView, error)
	Create(data msgtemplateapimodels.MsgTemplateData) (id string, err error)
	Update(id string, data msgtemplateapimodels.MsgTemplateData) error
	Delete(id string) error
	Render(templateID, candidateID string) (msgtemplateapimodels.RenderedMessage, error)
	Send(templateID string, candidateIDs []string) (msgtemplateapimodels.SendResult, error)
	OnStageChanged(ctx context.Context, candidate dbmodels.Candidate)
}

var Instance Provider

type Config struct {
	CompanyName string
	SenderName  string
}

func NewHandler(store messagetemplatestore.Provider, candidateStore candidatestore.Provider, jobStore jobstore.Provider,
	notifier notification.Provider, cfg Config) {
	initchecker.CheckInit("smtp", smtp.Instance)
	Instance = NewInstance(store, candidateStore, jobStore, smtp.Instance, notifier, cfg)
}

func NewInstance(store messagetemplatestore.Provider, candidateStore candidatestore.Provider, jobStore jobstore.Provider,
	mailer smtp.Provider, notifier notification.Provider, cfg Config) Provider {
	return &impl{
		store:          store,
		candidateStore: candidateStore,
		jobStore:       jobStore,
		mailer:         mailer,
		notifier:       notifier,
		cfg:            cfg,
	}
}

type impl struct {
	store          messagetemplatestore.Provider
	candidateStore candidatestore.Provider
	jobStore       jobstore.Provider
	mailer         smtp.Provider
	notifier       notification.Provider
	cfg            Config
}

func (i impl) List() ([]msgtemplateapimodels.MsgTemplateView, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка шаблонов сообщения")
		return nil, err
	}
	result := make([]msgtemplateapimodels.MsgTemplateView, 0, len(list))
	for _, rec := range list {
		result = append(result, msgtemplateapimodels.MsgTemplateConvert(rec))
	}
	return result, nil
}

func (i impl) Get(id string) (msgtemplateapimodels.MsgTemplateView, error) {
	rec, err := i.getTemplate(id)
	if err != nil {
		return msgtemplateapimodels.MsgTemplateView{}, err
	}
	return msgtemplateapimodels.MsgTemplateConvert(*rec), nil
}

func (i impl) Create(data msgtemplateapimodels.MsgTemplateData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.EmailTemplate{}
	data.ToDbModel(&rec)
	return i.store.Create(rec)
}

func (i impl) Update(id string, data msgtemplateapimodels.MsgTemplateData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.getTemplate(id)
	if err != nil {
		return err
	}
	data.ToDbModel(rec)
	return i.store.Save(*rec)
}

func (i impl) Delete(id string) error {
	found, err := i.store.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (i impl) Render(templateID, candidateID string) (msgtemplateapimodels.RenderedMessage, error) {
	msgTemplate, err := i.getTemplate(templateID)
	if err != nil {
		return msgtemplateapimodels.RenderedMessage{}, err
	}
	candidate, err := i.getCandidate(candidateID)
	if err != nil {
		return msgtemplateapimodels.RenderedMessage{}, err
	}
	return i.render(*msgTemplate, *candidate)
}

func (i impl) Send(templateID string, candidateIDs []string) (result msgtemplateapimodels.SendResult, err error) {
	logger := log.WithField("template_id", templateID)
	if i.mailer == nil || !i.mailer.IsConfigured() {
		logger.Error("smtp клиент не настроен")
		return result, ErrSmtpNotConfigured
	}
	msgTemplate, err := i.getTemplate(templateID)
	if err != nil {
		return result, err
	}
	for _, candidateID := range candidateIDs {
		candidate, err := i.getCandidate(candidateID)
		if err != nil {
			logger.WithError(err).WithField("candidate_id", candidateID).Warn("письмо не отправлено")
			result.FailMails = append(result.FailMails, candidateID)
			continue
		}
		if err = i.sendToCandidate(*msgTemplate, *candidate); err != nil {
			logger.WithError(err).WithField("candidate_id", candidateID).Error("ошибка отправки почты кандидату")
			result.FailMails = append(result.FailMails, candidate.Email)
			continue
		}
		result.Sent++
	}
	if result.Sent > 0 && i.notifier != nil {
		i.notifier.Notify(models.NotificationEmailSent, "Отправка писем",
			fmt.Sprintf("Шаблон «%s» отправлен кандидатам: %d", msgTemplate.Name, result.Sent), "")
	}
	return result, nil
}

// OnStageChanged автоматическая отправка шаблонов, привязанных к этапу.
// Ошибки только логируются, смену этапа они не отменяют.
func (i impl) OnStageChanged(ctx context.Context, candidate dbmodels.Candidate) {
	logger := log.WithFields(log.Fields{
		"candidate_id": candidate.ID,
		"stage":        candidate.Stage,
	})
	list, err := i.store.ListAutoSend(candidate.Stage)
	if err != nil {
		logger.WithError(err).Error("ошибка получения шаблонов для автоматической отправки")
		return
	}
	if len(list) == 0 {
		return
	}
	if i.mailer == nil || !i.mailer.IsConfigured() {
		logger.Warn("автоматические письма не отправлены, smtp клиент не настроен")
		return
	}
	for _, msgTemplate := range list {
		if ctx.Err() != nil {
			logger.Warn("автоматическая отправка прервана")
			return
		}
		if err = i.sendToCandidate(msgTemplate, candidate); err != nil {
			logger.WithError(err).WithField("template_id", msgTemplate.ID).Error("ошибка автоматической отправки письма")
			continue
		}
		if i.notifier != nil {
			i.notifier.Notify(models.NotificationEmailSent, "Автоматическое письмо",
				fmt.Sprintf("%s: отправлен шаблон «%s»", candidate.GetFullName(), msgTemplate.Name), candidate.ID)
		}
	}
}

func (i impl) sendToCandidate(msgTemplate dbmodels.EmailTemplate, candidate dbmodels.Candidate) error {
	msg, err := i.render(msgTemplate, candidate)
	if err != nil {
		return err
	}
	return i.mailer.SendEMail(msg.To, msg.Subject, msg.Body, msg.HtmlBody)
}

func (i impl) render(msgTemplate dbmodels.EmailTemplate, candidate dbmodels.Candidate) (msgtemplateapimodels.RenderedMessage, error) {
	if candidate.Email == "" {
		return msgtemplateapimodels.RenderedMessage{}, ErrNoEmail
	}
	data := models.TemplateData{
		CandidateName: candidate.GetFullName(),
		FirstName:     candidate.FirstName,
		LastName:      candidate.LastName,
		CompanyName:   i.cfg.CompanyName,
		Stage:         string(candidate.Stage),
		SenderName:    i.cfg.SenderName,
	}
	if candidate.JobID != "" && i.jobStore != nil {
		job, err := i.jobStore.GetByID(candidate.JobID)
		if err != nil {
			return msgtemplateapimodels.RenderedMessage{}, err
		}
		if job != nil {
			data.JobTitle = job.Title
		}
	}
	subject, err := execute("subject", msgTemplate.Subject, data)
	if err != nil {
		return msgtemplateapimodels.RenderedMessage{}, errors.Wrap(err, "ошибка формирования темы письма")
	}
	body, err := execute("body", msgTemplate.Body, data)
	if err != nil {
		return msgtemplateapimodels.RenderedMessage{}, errors.Wrap(err, "ошибка формирования текста письма")
	}
	return msgtemplateapimodels.RenderedMessage{
		To:       candidate.Email,
		Subject:  subject,
		Body:     body,
		HtmlBody: toHtml(body),
	}, nil
}

func (i impl) getTemplate(id string) (*dbmodels.EmailTemplate, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithError(err).WithField("template_id", id).Error("ошибка получения шаблона сообщения")
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) getCandidate(id string) (*dbmodels.Candidate, error) {
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrCandidateNotFound
	}
	return rec, nil
}

func execute(name, text string, data models.TemplateData) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHtml(text string) string {
	lines := strings.Split(html.EscapeString(text), "\n")
	return "<p>" + strings.Join(lines, "<br>") + "</p>"
}
