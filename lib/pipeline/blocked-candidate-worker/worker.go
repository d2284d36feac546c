package blockedcandidateworker

import (
	"context"
	"fmt"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	"hr-dashboard-backend/lib/notification"
	baseworker "hr-dashboard-backend/lib/utils/base-worker"
	"hr-dashboard-backend/lib/utils/helpers"
	"hr-dashboard-backend/models"
	"time"
)

// Задача поиска кандидатов, задержавшихся на этапе дольше порога.
// По каждому кандидату уведомление создается один раз за время нахождения на этапе.
func StartWorker(ctx context.Context, candidateStore candidatestore.Provider, notifier notification.Provider,
	blockedAfterDays int, interval time.Duration) {
	i := newInstance(candidateStore, notifier, blockedAfterDays, interval, time.Now)
	go i.Run(ctx, i.handle)
}

func newInstance(candidateStore candidatestore.Provider, notifier notification.Provider,
	blockedAfterDays int, interval time.Duration, now func() time.Time) *impl {
	if blockedAfterDays <= 0 {
		blockedAfterDays = models.DefaultBlockedAfterDays
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &impl{
		BaseImpl:         *baseworker.NewInstance("BlockedCandidateWorker", 10*time.Second, interval),
		candidateStore:   candidateStore,
		notifier:         notifier,
		blockedAfterDays: blockedAfterDays,
		now:              now,
	}
}

type impl struct {
	baseworker.BaseImpl
	candidateStore   candidatestore.Provider
	notifier         notification.Provider
	blockedAfterDays int
	now              func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.candidateStore.ListAll()
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка кандидатов")
		return
	}
	notified, err := i.notifiedAt()
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка уведомлений")
		return
	}
	now := i.now()
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		if !rec.IsBlocked(now, i.blockedAfterDays) {
			continue
		}
		if last, ok := notified[rec.ID]; ok && !last.Before(rec.StageEnteredAt) {
			continue
		}
		i.notifier.Notify(models.NotificationCandidateBlocked, "Кандидат задержался на этапе",
			fmt.Sprintf("%s находится на этапе %s %d дн.", rec.GetFullName(), rec.Stage, rec.DaysInStage(now)), rec.ID)
		logger.
			WithField("candidate_id", rec.ID).
			WithField("stage", rec.Stage).
			Info("создано уведомление о задержке кандидата на этапе")
	}
}

// notifiedAt время последнего уведомления о задержке по каждому кандидату
func (i impl) notifiedAt() (map[string]time.Time, error) {
	list, err := i.notifier.List(false)
	if err != nil {
		return nil, err
	}
	result := map[string]time.Time{}
	for _, item := range list {
		if item.Type != models.NotificationCandidateBlocked || item.CandidateID == "" {
			continue
		}
		if item.CreatedAt.After(result[item.CandidateID]) {
			result[item.CandidateID] = item.CreatedAt
		}
	}
	return result, nil
}
