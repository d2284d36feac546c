package connectionhub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	t.Run(`broadcast without clients`, func(t *testing.T) {
		hub := NewInstance()
		require.NotPanics(t, func() {
			hub.Broadcast("notification", "test", nil)
		})
		require.Equal(t, 0, hub.ClientsCount())
	})

	t.Run(`add and delete client without connection`, func(t *testing.T) {
		hub := NewInstance()
		hub.AddClient("c1", nil)
		hub.AddClient("c2", nil)
		require.Equal(t, 2, hub.ClientsCount())
		hub.Broadcast("notification", "test", map[string]string{"a": "b"})
		require.True(t, hub.SendTo("c2", "pong", "pong", nil))
		require.False(t, hub.SendTo("unknown", "pong", "pong", nil))
		hub.DeleteClient("c1")
		hub.DeleteClient("unknown")
		require.Equal(t, 1, hub.ClientsCount())
		hub.DeleteClient("c2")
		require.Equal(t, 0, hub.ClientsCount())
	})
}
