package candidate

import (
	"bytes"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	xlsexport "hr-dashboard-backend/lib/export/xls"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/models"
	candidateapimodels "hr-dashboard-backend/models/api/candidate"
	dbmodels "hr-dashboard-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound    = errors.New("кандидат не найден")
	ErrJobNotFound = errors.New("вакансия не найдена")
)

type Provider interface {
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	Get(id string) (candidateapimodels.CandidateView, error)
	Create(data candidateapimodels.CandidateData) (id string, err error)
	Update(id string, data candidateapimodels.CandidateData) error
	ExportXls(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider, jobStore jobstore.Provider, blockedAfterDays int) {
	Instance = NewInstance(store, jobStore, blockedAfterDays, time.Now)
}

func NewInstance(store candidatestore.Provider, jobStore jobstore.Provider, blockedAfterDays int, now func() time.Time) Provider {
	if blockedAfterDays <= 0 {
		blockedAfterDays = models.DefaultBlockedAfterDays
	}
	return &impl{
		store:            store,
		jobStore:         jobStore,
		blockedAfterDays: blockedAfterDays,
		now:              now,
	}
}

type impl struct {
	store            candidatestore.Provider
	jobStore         jobstore.Provider
	blockedAfterDays int
	now              func() time.Time
}

func (i impl) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	list, rowCount, err := i.store.List(filter.ToDbFilter())
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, 0, err
	}
	return i.convertList(list), rowCount, nil
}

func (i impl) Get(id string) (candidateapimodels.CandidateView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithError(err).WithField("candidate_id", id).Error("ошибка получения кандидата")
		return candidateapimodels.CandidateView{}, err
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, ErrNotFound
	}
	return candidateapimodels.CandidateConvert(*rec, i.jobTitle(rec.JobID), i.now(), i.blockedAfterDays), nil
}

func (i impl) Create(data candidateapimodels.CandidateData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	if err := i.checkJob(data.JobID); err != nil {
		return "", err
	}
	now := i.now()
	rec := dbmodels.Candidate{
		Stage:          models.StageApplied,
		StageEnteredAt: now,
		AppliedAt:      now,
	}
	data.ToDbModel(&rec)
	if rec.Source == "" {
		rec.Source = models.CandidateSourceCareerSite
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка создания кандидата")
		return "", err
	}
	log.WithField("candidate_id", id).Info("кандидат добавлен")
	return id, nil
}

func (i impl) Update(id string, data candidateapimodels.CandidateData) error {
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
	if err = i.checkJob(data.JobID); err != nil {
		return err
	}
	data.ToDbModel(rec)
	if err = i.store.Save(*rec); err != nil {
		log.WithError(err).WithField("candidate_id", id).Error("ошибка обновления кандидата")
		return err
	}
	return nil
}

func (i impl) ExportXls(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	dbFilter := filter.ToDbFilter()
	dbFilter.NoPaging = true
	list, _, err := i.store.List(dbFilter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportCandidateList(i.convertList(list))
}

func (i impl) checkJob(jobID string) error {
	if jobID == "" {
		return nil
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	return nil
}

func (i impl) jobTitle(jobID string) string {
	if jobID == "" {
		return ""
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil || job == nil {
		return ""
	}
	return job.Title
}

func (i impl) convertList(list []dbmodels.Candidate) []candidateapimodels.CandidateView {
	titles := map[string]string{}
	now := i.now()
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		title, ok := titles[rec.JobID]
		if !ok {
			title = i.jobTitle(rec.JobID)
			titles[rec.JobID] = title
		}
		result = append(result, candidateapimodels.CandidateConvert(rec, title, now, i.blockedAfterDays))
	}
	return result
}
