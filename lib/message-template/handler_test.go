package messagetemplate

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	messagetemplatestore "hr-dashboard-backend/lib/message-template/store"
	"hr-dashboard-backend/lib/notification"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	msgtemplateapimodels "hr-dashboard-backend/models/api/message-template"
	dbmodels "hr-dashboard-backend/models/db"
)

type sentMail struct {
	to, subject, body string
}

type mailerMock struct {
	configured bool
	failFor    string
	sent       []sentMail
}

func (m *mailerMock) SendEMail(to, subject, textBody, htmlBody string) error {
	if to == m.failFor {
		return errors.New("smtp error")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: textBody})
	return nil
}

func (m *mailerMock) IsConfigured() bool {
	return m.configured
}

type testEnv struct {
	handler    Provider
	mailer     *mailerMock
	notifier   notification.Provider
	candidates candidatestore.Provider
	annaID     string
	borisID    string
}

func newTestEnv(t *testing.T, configured bool) testEnv {
	candidates := candidatestore.NewMemoryInstance()
	jobs := jobstore.NewMemoryInstance()
	jobID, err := jobs.Create(dbmodels.JobPosting{Title: "Go Developer"})
	require.Nil(t, err)
	annaID, err := candidates.Create(dbmodels.Candidate{FirstName: "Anna", LastName: "Petrova", Email: "anna@mail.test", JobID: jobID, Stage: models.StageInterview})
	require.Nil(t, err)
	borisID, err := candidates.Create(dbmodels.Candidate{FirstName: "Boris", LastName: "Ivanov", Email: "boris@mail.test", Stage: models.StageApplied})
	require.Nil(t, err)
	mailer := &mailerMock{configured: configured}
	notifier := notification.NewInstance(notificationstore.NewMemoryInstance(), nil)
	handler := NewInstance(messagetemplatestore.NewMemoryInstance(), candidates, jobs, mailer, notifier, Config{
		CompanyName: "Acme",
		SenderName:  "HR Team",
	})
	return testEnv{
		handler:    handler,
		mailer:     mailer,
		notifier:   notifier,
		candidates: candidates,
		annaID:     annaID,
		borisID:    borisID,
	}
}

func TestMessageTemplateHandler(t *testing.T) {
	t.Run(`create validation`, func(t *testing.T) {
		env := newTestEnv(t, true)
		_, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{Subject: "s", Body: "b"})
		require.Equal(t, "не указано название шаблона", err.Error())
		_, err = env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "s", Body: "{{.CandidateName"})
		require.NotNil(t, err)
		_, err = env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "s", Body: "b", AutoSend: true})
		require.Equal(t, "для автоматической отправки необходимо указать этап", err.Error())
		_, err = env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "s", Body: "b", TriggerStage: "Archived"})
		require.NotNil(t, err)
	})

	t.Run(`unknown substitution is rejected`, func(t *testing.T) {
		env := newTestEnv(t, true)
		_, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "s", Body: "Hi {{.Foo}}"})
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "ошибка в тексте письма")
		_, err = env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "{{.Unknown}}", Body: "b"})
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "ошибка в теме письма")

		id, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "s", Body: "Hi {{.FirstName}}"})
		require.Nil(t, err)
		err = env.handler.Update(id, msgtemplateapimodels.MsgTemplateData{Name: "n", Subject: "s", Body: "Hi {{.Foo}}"})
		require.NotNil(t, err)
		msg, err := env.handler.Render(id, env.annaID)
		require.Nil(t, err)
		require.Equal(t, "Hi Anna", msg.Body)
	})

	t.Run(`render`, func(t *testing.T) {
		env := newTestEnv(t, true)
		id, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{
			Name:    "Interview invite",
			Subject: "{{.JobTitle}} at {{.CompanyName}}",
			Body:    "Hi {{.FirstName}},\nyou are at {{.Stage}} stage.\n{{.SenderName}}",
		})
		require.Nil(t, err)
		msg, err := env.handler.Render(id, env.annaID)
		require.Nil(t, err)
		require.Equal(t, "anna@mail.test", msg.To)
		require.Equal(t, "Go Developer at Acme", msg.Subject)
		require.Equal(t, "Hi Anna,\nyou are at Interview stage.\nHR Team", msg.Body)
		require.Equal(t, "<p>Hi Anna,<br>you are at Interview stage.<br>HR Team</p>", msg.HtmlBody)

		_, err = env.handler.Render(id, "missing")
		require.ErrorIs(t, err, ErrCandidateNotFound)
		_, err = env.handler.Render("missing", env.annaID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(`send`, func(t *testing.T) {
		env := newTestEnv(t, true)
		env.mailer.failFor = "boris@mail.test"
		id, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "Hello", Subject: "Hello", Body: "Hello {{.CandidateName}}"})
		require.Nil(t, err)
		result, err := env.handler.Send(id, []string{env.annaID, env.borisID, "missing"})
		require.Nil(t, err)
		require.Equal(t, 1, result.Sent)
		require.Equal(t, []string{"boris@mail.test", "missing"}, result.FailMails)
		require.Len(t, env.mailer.sent, 1)
		require.Equal(t, "Hello Anna Petrova", env.mailer.sent[0].body)
		count, err := env.notifier.UnreadCount()
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run(`send without smtp`, func(t *testing.T) {
		env := newTestEnv(t, false)
		id, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "Hello", Subject: "Hello", Body: "Hello"})
		require.Nil(t, err)
		_, err = env.handler.Send(id, []string{env.annaID})
		require.ErrorIs(t, err, ErrSmtpNotConfigured)
	})

	t.Run(`automation on stage change`, func(t *testing.T) {
		env := newTestEnv(t, true)
		_, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{
			Name: "Offer", Subject: "Offer", Body: "Congratulations {{.FirstName}}",
			TriggerStage: models.StageOffer, AutoSend: true,
		})
		require.Nil(t, err)
		_, err = env.handler.Create(msgtemplateapimodels.MsgTemplateData{
			Name: "Offer draft", Subject: "Offer", Body: "manual",
			TriggerStage: models.StageOffer, AutoSend: false,
		})
		require.Nil(t, err)

		anna, err := env.candidates.GetByID(env.annaID)
		require.Nil(t, err)
		anna.Stage = models.StageScreening
		env.handler.OnStageChanged(context.Background(), *anna)
		require.Empty(t, env.mailer.sent)

		anna.Stage = models.StageOffer
		env.handler.OnStageChanged(context.Background(), *anna)
		require.Len(t, env.mailer.sent, 1)
		require.Equal(t, "Congratulations Anna", env.mailer.sent[0].body)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		env.handler.OnStageChanged(ctx, *anna)
		require.Len(t, env.mailer.sent, 1)
	})

	t.Run(`update and delete`, func(t *testing.T) {
		env := newTestEnv(t, true)
		id, err := env.handler.Create(msgtemplateapimodels.MsgTemplateData{Name: "A", Subject: "A", Body: "A"})
		require.Nil(t, err)
		require.Nil(t, env.handler.Update(id, msgtemplateapimodels.MsgTemplateData{Name: "B", Subject: "B", Body: "B"}))
		view, err := env.handler.Get(id)
		require.Nil(t, err)
		require.Equal(t, "B", view.Name)
		list, err := env.handler.List()
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Nil(t, env.handler.Delete(id))
		require.ErrorIs(t, env.handler.Delete(id), ErrNotFound)
	})
}
