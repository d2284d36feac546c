package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func GetToken(secret string, expireIn time.Duration, userID, name string) (tokenString string, err error) {
	return signToken(secret, expireIn, userID, name, tokenTypeAccess)
}

func GetRefreshToken(secret string, expireIn time.Duration, userID, name string) (tokenString string, err error) {
	return signToken(secret, expireIn, userID, name, tokenTypeRefresh)
}

func signToken(secret string, expireIn time.Duration, userID, name, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"typ":  tokenType,
		"exp":  now.Add(expireIn).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRefreshToken проверяет подпись и срок действия refresh токена
func ParseRefreshToken(secret, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "недействительный токен")
	}
	if claims["typ"] != tokenTypeRefresh {
		return nil, errors.New("токен не является refresh токеном")
	}
	return claims, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetUserID(ctx *fiber.Ctx) string {
	sub, _ := GetClaims(ctx)["sub"].(string)
	return sub
}
