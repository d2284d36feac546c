package authutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshToken(t *testing.T) {
	t.Run(`valid refresh token`, func(t *testing.T) {
		token, err := GetRefreshToken("secret", time.Hour, "recruiter", "Recruiter")
		require.Nil(t, err)
		claims, err := ParseRefreshToken("secret", token)
		require.Nil(t, err)
		require.Equal(t, "recruiter", claims["sub"])
	})
	t.Run(`access token rejected`, func(t *testing.T) {
		token, err := GetToken("secret", time.Hour, "recruiter", "Recruiter")
		require.Nil(t, err)
		_, err = ParseRefreshToken("secret", token)
		require.NotNil(t, err)
	})
	t.Run(`wrong secret`, func(t *testing.T) {
		token, err := GetRefreshToken("secret", time.Hour, "recruiter", "Recruiter")
		require.Nil(t, err)
		_, err = ParseRefreshToken("other", token)
		require.NotNil(t, err)
	})
	t.Run(`expired`, func(t *testing.T) {
		token, err := GetRefreshToken("secret", -time.Minute, "recruiter", "Recruiter")
		require.Nil(t, err)
		_, err = ParseRefreshToken("secret", token)
		require.NotNil(t, err)
	})
}
