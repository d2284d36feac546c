package notification

import (
	notificationstore "hr-dashboard-backend/lib/notification/store"
	connectionhub "hr-dashboard-backend/lib/ws/hub/connection-hub"
	"hr-dashboard-backend/models"
	notificationapimodels "hr-dashboard-backend/models/api/notification"
	dbmodels "hr-dashboard-backend/models/db"
	wsmodels "hr-dashboard-backend/models/ws"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("уведомление не найдено")

type Provider interface {
	Notify(notificationType models.NotificationType, title, message, candidateID string)
	List(onlyUnread bool) ([]notificationapimodels.NotificationView, error)
	UnreadCount() (int64, error)
	MarkRead(id string) error
	MarkAllRead() error
}

// Pusher доставка уведомления подключенным клиентам
type Pusher interface {
	Broadcast(code, msg string, data interface{})
}

var Instance Provider

func NewHandler(store notificationstore.Provider) {
	Instance = NewInstance(store, connectionhub.Instance)
}

func NewInstance(store notificationstore.Provider, pusher Pusher) Provider {
	return &impl{
		store:  store,
		pusher: pusher,
	}
}

type impl struct {
	store  notificationstore.Provider
	pusher Pusher
}

func (i impl) Notify(notificationType models.NotificationType, title, message, candidateID string) {
	logger := log.WithFields(log.Fields{
		"notification_type": notificationType,
		"candidate_id":      candidateID,
	})
	rec, err := i.store.Create(dbmodels.Notification{
		Type:        notificationType,
		Title:       title,
		Message:     message,
		CandidateID: candidateID,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения уведомления")
		return
	}
	if i.pusher != nil {
		i.pusher.Broadcast(wsmodels.CodeNotification, message, notificationapimodels.NotificationConvert(rec))
	}
}

func (i impl) List(onlyUnread bool) ([]notificationapimodels.NotificationView, error) {
	list, err := i.store.List(onlyUnread)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка уведомлений")
		return nil, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, nil
}

func (i impl) UnreadCount() (int64, error) {
	return i.store.UnreadCount()
}

func (i impl) MarkRead(id string) error {
	found, err := i.store.MarkRead(id)
	if err != nil {
		log.WithError(err).WithField("notification_id", id).Error("ошибка обновления уведомления")
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (i impl) MarkAllRead() error {
	return i.store.MarkAllRead()
}
