package authapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

// JWTResponse пара токенов рекрутера
type JWTResponse struct {
	Token            string `json:"token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`         // время жизни token, сек
	RefreshExpiresIn int64  `json:"refresh_expires_in"` // время жизни refresh_token, сек
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r JWTRefreshRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return errors.New("не указан refresh_token")
	}
	return nil
}
