package gpthandler

import (
	"context"
	"fmt"
	yagptclient "hr-dashboard-backend/lib/gpt/yagpt-client"
	gptmodels "hr-dashboard-backend/models/api/gpt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotConfigured = errors.New("YandexGPT не настроен")

const jobDescriptionPromt = "Ты - рекрутер компании %s. Пиши описание вакансии коротко и по делу, " +
	"выдели обязанности, требования и условия отдельными списками."

type Provider interface {
	GenerateJobDescription(ctx context.Context, text string) (resp gptmodels.GenJobDescResponse, err error)
}

var Instance Provider

// Client клиент YandexGPT, nil если интеграция не настроена
var Client yagptclient.Provider

func NewHandler(iamToken, catalogID, companyName string) {
	if iamToken != "" && catalogID != "" {
		Client = yagptclient.NewClient(iamToken, catalogID)
	}
	Instance = NewInstance(Client, companyName)
}

func NewInstance(client yagptclient.Provider, companyName string) Provider {
	return impl{
		client:      client,
		companyName: companyName,
	}
}

type impl struct {
	client      yagptclient.Provider
	companyName string
}

func (i impl) GenerateJobDescription(ctx context.Context, text string) (resp gptmodels.GenJobDescResponse, err error) {
	if i.client == nil {
		return resp, ErrNotConfigured
	}
	resp.Description, err = i.client.Complete(ctx, yagptclient.Request{
		Instruction: fmt.Sprintf(jobDescriptionPromt, i.companyName),
		Text:        fmt.Sprintf("Сгенерируй описание для вакансии имея эти вводные данные: %s", text),
	})
	if err != nil {
		log.WithError(err).Error("ошибка генерации описания через YandexGPT")
		return resp, err
	}
	return resp, nil
}
