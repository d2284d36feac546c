package yagptclient

import (
	"context"
	"time"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
	log "github.com/sirupsen/logrus"
)

// Request системная инструкция и пользовательский текст для генерации
type Request struct {
	Instruction string
	Text        string
	Strict      bool // пониженная температура, ответ в заданном формате
}

type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
}

func NewClient(iamToken, catalogID string) Provider {
	return impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(iamToken),
		catalogID: catalogID,
	}
}

func (i impl) Complete(ctx context.Context, req Request) (string, error) {
	options := yandexgptclient.YandexGPTCompletionOptions{
		Stream:      false,
		Temperature: 0.6,
		MaxTokens:   2000,
	}
	if req.Strict {
		options.Temperature = 0.1
	}
	started := time.Now()
	response, err := i.client.CreateRequest(ctx, yandexgptclient.YandexGPTRequest{
		ModelURI:          yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: options,
		Messages: []yandexgptclient.YandexGPTMessage{
			{Role: yandexgptclient.YandexGPTMessageRoleSystem, Text: req.Instruction},
			{Role: yandexgptclient.YandexGPTMessageRoleUser, Text: req.Text},
		},
	})
	logger := log.WithFields(log.Fields{
		"strict":  req.Strict,
		"latency": time.Since(started).String(),
	})
	if err != nil {
		logger.WithError(err).Warn("запрос к YandexGPT завершился ошибкой")
		return "", errors.Wrap(err, "ошибка запроса к YandexGPT")
	}
	if len(response.Result.Alternatives) == 0 {
		return "", errors.New("YandexGPT не вернул вариантов ответа")
	}
	logger.Debug("получен ответ YandexGPT")
	return response.Result.Alternatives[0].Message.Text, nil
}
