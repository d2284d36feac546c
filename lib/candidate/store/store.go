package candidatestore

import (
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	Save(rec dbmodels.Candidate) error
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	List(filter dbmodels.CandidateFilter) (list []dbmodels.Candidate, rowCount int64, err error)
	ListAll() ([]dbmodels.Candidate, error)
	// ChangeStage меняет этап, только если кандидат все еще находится на этапе from
	ChangeStage(id string, from, to models.Stage, at time.Time) (changed bool, err error)
	Count() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.Candidate) error {
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", rec.ID).
		Omit("stage", "stage_entered_at", "created_at").
		Select("*").
		Updates(&rec)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dbmodels.CandidateFilter) (list []dbmodels.Candidate, rowCount int64, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(&dbmodels.Candidate{})
	i.addFilter(tx, filter)
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	tx = tx.Order("applied_at, created_at")
	if !filter.NoPaging && filter.Limit > 0 {
		tx = tx.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)
	}
	if err = tx.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListAll() (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Order("applied_at, created_at").
		Find(&list).
		Error
	return list, err
}

func (i impl) ChangeStage(id string, from, to models.Stage, at time.Time) (bool, error) {
	if from == to {
		return false, nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ? and stage = ?", id, from).
		Updates(map[string]interface{}{
			"stage":            to,
			"stage_entered_at": at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Count() (count int64, err error) {
	err = i.db.Model(&dbmodels.Candidate{}).Count(&count).Error
	return count, err
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.CandidateFilter) {
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(CONCAT(first_name, ' ', last_name)) like ? or LOWER(email) like ?", searchValue, searchValue)
	}
	if filter.Stage != "" {
		tx.Where("stage = ?", filter.Stage)
	}
	if filter.JobID != "" {
		tx.Where("job_id = ?", filter.JobID)
	}
	if filter.Source != "" {
		tx.Where("source = ?", filter.Source)
	}
}
