package middleware

import (
	"hr-dashboard-backend/config"
	apimodels "hr-dashboard-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthorizationRequired проверяет bearer токен, если авторизация включена
func AuthorizationRequired() fiber.Handler {
	if !config.Conf.IsAuthEnabled() {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}
	return JWTRequired(config.Conf.Auth.JWTSecret)
}

func JWTRequired(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}
