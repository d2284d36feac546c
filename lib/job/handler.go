package job

import (
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/models"
	jobapimodels "hr-dashboard-backend/models/api/job"
	dbmodels "hr-dashboard-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound      = errors.New("вакансия не найдена")
	ErrUnknownStatus = errors.New("неизвестный статус вакансии")
)

type Provider interface {
	List(filter jobapimodels.JobFilter) ([]jobapimodels.JobView, error)
	Get(id string) (jobapimodels.JobView, error)
	Create(data jobapimodels.JobData) (id string, err error)
	Update(id string, data jobapimodels.JobData) error
	ChangeStatus(id string, status models.JobStatus) error
}

var Instance Provider

func NewHandler(store jobstore.Provider, candidateStore candidatestore.Provider) {
	Instance = NewInstance(store, candidateStore)
}

func NewInstance(store jobstore.Provider, candidateStore candidatestore.Provider) Provider {
	return &impl{
		store:          store,
		candidateStore: candidateStore,
	}
}

type impl struct {
	store          jobstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) List(filter jobapimodels.JobFilter) ([]jobapimodels.JobView, error) {
	list, err := i.store.List(dbmodels.JobFilter{
		Status:     filter.Status,
		Department: filter.Department,
		Search:     filter.Search,
	})
	if err != nil {
		log.WithError(err).Error("ошибка получения списка вакансий")
		return nil, err
	}
	counts, err := i.candidateCounts()
	if err != nil {
		return nil, err
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.JobConvert(rec, counts[rec.ID]))
	}
	return result, nil
}

func (i impl) Get(id string) (jobapimodels.JobView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil {
		return jobapimodels.JobView{}, ErrNotFound
	}
	counts, err := i.candidateCounts()
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	return jobapimodels.JobConvert(*rec, counts[rec.ID]), nil
}

func (i impl) Create(data jobapimodels.JobData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.JobPosting{
		Status: models.JobStatusDraft,
	}
	data.ToDbModel(&rec)
	if rec.EmploymentType == "" {
		rec.EmploymentType = models.EmploymentFullTime
	}
	if rec.Openings == 0 {
		rec.Openings = 1
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка создания вакансии")
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data jobapimodels.JobData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	data.ToDbModel(rec)
	return i.store.Save(*rec)
}

func (i impl) ChangeStatus(id string, status models.JobStatus) error {
	if !status.IsValid() {
		return ErrUnknownStatus
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if rec.Status == status {
		return nil
	}
	rec.Status = status
	if err = i.store.Save(*rec); err != nil {
		log.WithError(err).WithField("job_id", id).Error("ошибка смены статуса вакансии")
		return err
	}
	log.WithFields(log.Fields{"job_id": id, "status": status}).Info("статус вакансии изменен")
	return nil
}

func (i impl) candidateCounts() (map[string]int, error) {
	list, err := i.candidateStore.ListAll()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, err
	}
	result := map[string]int{}
	for _, rec := range list {
		result[rec.JobID]++
	}
	return result, nil
}
