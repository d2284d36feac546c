package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run(`build message`, func(t *testing.T) {
		body, err := BuildMessage("hr@acme.test", "Recruiting", "anna@mail.test", "Interview", "Hello Anna", "<p>Hello Anna</p>")
		require.Nil(t, err)
		msg := string(body)
		require.True(t, strings.Contains(msg, "To: anna@mail.test"))
		require.True(t, strings.Contains(msg, "Subject: Interview"))
		require.True(t, strings.Contains(msg, "text/plain"))
		require.True(t, strings.Contains(msg, "text/html"))
		require.True(t, strings.Contains(msg, "hr@acme.test"))
	})

	t.Run(`build message without recipient`, func(t *testing.T) {
		_, err := BuildMessage("hr@acme.test", "", "", "s", "b", "")
		require.NotNil(t, err)
	})

	t.Run(`not configured client skips sending`, func(t *testing.T) {
		require.Nil(t, Connect("", "", "", "", true, "", ""))
		require.False(t, Instance.IsConfigured())
		require.Nil(t, Instance.SendEMail("anna@mail.test", "s", "b", ""))
	})
}
