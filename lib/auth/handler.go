package auth

import (
	"crypto/subtle"
	"hr-dashboard-backend/config"
	authutils "hr-dashboard-backend/lib/utils/auth-utils"
	authapimodels "hr-dashboard-backend/models/api/auth"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = errors.New("неверный логин или пароль")

type Provider interface {
	Login(login, password string) (response authapimodels.JWTResponse, err error)
	RefreshToken(refreshToken string) (response authapimodels.JWTResponse, err error)
}

type Account struct {
	Login          string
	Password       string
	Secret         string
	ExpireIn       time.Duration
	RefreshExpires time.Duration
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(Account{
		Login:          config.Conf.Auth.Login,
		Password:       config.Conf.Auth.Password,
		Secret:         config.Conf.Auth.JWTSecret,
		ExpireIn:       time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec),
		RefreshExpires: time.Second * time.Duration(config.Conf.Auth.JWTRefreshExpireInSec),
	})
}

func NewInstance(account Account) Provider {
	return impl{account: account}
}

type impl struct {
	account Account
}

func (i impl) Login(login, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("login", login)
	if i.account.Password == "" || i.account.Secret == "" {
		logger.Warn("учетная запись рекрутера не настроена")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	if login != i.account.Login ||
		subtle.ConstantTimeCompare([]byte(password), []byte(i.account.Password)) != 1 {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	return i.issue(login)
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	claims, err := authutils.ParseRefreshToken(i.account.Secret, refreshToken)
	if err != nil {
		log.WithError(err).Debug("refresh токен не прошел проверку")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	if sub, _ := claims["sub"].(string); sub != i.account.Login {
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	return i.issue(i.account.Login)
}

func (i impl) issue(login string) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(i.account.Secret, i.account.ExpireIn, login, login)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка генерации JWT")
	}
	refresh, err := authutils.GetRefreshToken(i.account.Secret, i.account.RefreshExpires, login, login)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка генерации refresh JWT")
	}
	return authapimodels.JWTResponse{
		Token:            token,
		RefreshToken:     refresh,
		ExpiresIn:        int64(i.account.ExpireIn.Seconds()),
		RefreshExpiresIn: int64(i.account.RefreshExpires.Seconds()),
	}, nil
}
