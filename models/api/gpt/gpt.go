package gptmodels

import (
	"strings"

	"github.com/pkg/errors"
)

type GenJobDescRequest struct {
	Text string `json:"text"` // Текст, на основе которого необходимо сгенерировать описание
}

func (r GenJobDescRequest) Validate() error {
	if len(strings.TrimSpace(r.Text)) == 0 {
		return errors.New("текст не должен быть пустым")
	}
	return nil
}

type GenJobDescResponse struct {
	Description string `json:"description"` // сгенерированное описание вакансии
}
