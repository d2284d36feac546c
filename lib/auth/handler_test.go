package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	handler := NewInstance(Account{
		Login:          "recruiter",
		Password:       "secret-pass",
		Secret:         "jwt-secret",
		ExpireIn:       time.Hour,
		RefreshExpires: 24 * time.Hour,
	})

	t.Run(`valid credentials`, func(t *testing.T) {
		resp, err := handler.Login("recruiter", "secret-pass")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.NotEmpty(t, resp.RefreshToken)
		require.EqualValues(t, 3600, resp.ExpiresIn)
		require.EqualValues(t, 86400, resp.RefreshExpiresIn)

		refreshed, err := handler.RefreshToken(resp.RefreshToken)
		require.Nil(t, err)
		require.NotEmpty(t, refreshed.Token)
	})
	t.Run(`wrong password`, func(t *testing.T) {
		_, err := handler.Login("recruiter", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run(`wrong login`, func(t *testing.T) {
		_, err := handler.Login("admin", "secret-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run(`access token is not refresh token`, func(t *testing.T) {
		resp, err := handler.Login("recruiter", "secret-pass")
		require.Nil(t, err)
		_, err = handler.RefreshToken(resp.Token)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run(`account not configured`, func(t *testing.T) {
		_, err := NewInstance(Account{Login: "recruiter"}).Login("recruiter", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
