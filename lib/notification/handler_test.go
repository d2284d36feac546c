package notification

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	notificationapimodels "hr-dashboard-backend/models/api/notification"
)

type pusherMock struct {
	mu   sync.Mutex
	msgs []string
	data []interface{}
}

func (p *pusherMock) Broadcast(code, msg string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	p.data = append(p.data, data)
}

func TestNotificationHandler(t *testing.T) {
	pusher := &pusherMock{}
	handler := NewInstance(notificationstore.NewMemoryInstance(), pusher)

	t.Run(`notify stores and pushes`, func(t *testing.T) {
		handler.Notify(models.NotificationStageChange, "Смена этапа", "Anna -> Offer", "c1")
		handler.Notify(models.NotificationInfo, "Инфо", "hello", "")
		require.Equal(t, []string{"Anna -> Offer", "hello"}, pusher.msgs)
		view, ok := pusher.data[0].(notificationapimodels.NotificationView)
		require.True(t, ok)
		require.Equal(t, "c1", view.CandidateID)

		list, err := handler.List(false)
		require.Nil(t, err)
		require.Len(t, list, 2)
		count, err := handler.UnreadCount()
		require.Nil(t, err)
		require.Equal(t, int64(2), count)
	})

	t.Run(`mark read`, func(t *testing.T) {
		list, err := handler.List(true)
		require.Nil(t, err)
		require.Nil(t, handler.MarkRead(list[0].ID))
		require.ErrorIs(t, handler.MarkRead("unknown"), ErrNotFound)

		unread, err := handler.List(true)
		require.Nil(t, err)
		require.Len(t, unread, 1)

		require.Nil(t, handler.MarkAllRead())
		count, err := handler.UnreadCount()
		require.Nil(t, err)
		require.Equal(t, int64(0), count)
	})

	t.Run(`nil pusher`, func(t *testing.T) {
		h := NewInstance(notificationstore.NewMemoryInstance(), nil)
		require.NotPanics(t, func() {
			h.Notify(models.NotificationInfo, "t", "m", "")
		})
	})
}
