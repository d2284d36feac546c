package messagetemplatestore

import (
	"hr-dashboard-backend/lib/memdb"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.EmailTemplate) (id string, err error)
	Save(rec dbmodels.EmailTemplate) error
	GetByID(id string) (*dbmodels.EmailTemplate, error)
	List() ([]dbmodels.EmailTemplate, error)
	ListAutoSend(stage models.Stage) ([]dbmodels.EmailTemplate, error)
	Delete(id string) (found bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EmailTemplate) (string, error) {
	if err := i.db.Create(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.EmailTemplate) error {
	tx := i.db.
		Model(&dbmodels.EmailTemplate{}).
		Where("id = ?", rec.ID).
		Select("*").
		Omit("created_at").
		Updates(&rec)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.EmailTemplate, error) {
	rec := dbmodels.EmailTemplate{}
	err := i.db.
		Model(&dbmodels.EmailTemplate{}).
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

func (i impl) List() (list []dbmodels.EmailTemplate, err error) {
	list = []dbmodels.EmailTemplate{}
	err = i.db.
		Model(&dbmodels.EmailTemplate{}).
		Order("created_at").
		Find(&list).
		Error
	return list, err
}

func (i impl) ListAutoSend(stage models.Stage) (list []dbmodels.EmailTemplate, err error) {
	list = []dbmodels.EmailTemplate{}
	err = i.db.
		Model(&dbmodels.EmailTemplate{}).
		Where("auto_send = ? and trigger_stage = ?", true, stage).
		Order("created_at").
		Find(&list).
		Error
	return list, err
}

func (i impl) Delete(id string) (bool, error) {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.EmailTemplate{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		table: memdb.NewTable(func(rec dbmodels.EmailTemplate) string { return rec.ID }, nil),
	}
}

type memoryImpl struct {
	table *memdb.Table[dbmodels.EmailTemplate]
}

func (i memoryImpl) Create(rec dbmodels.EmailTemplate) (string, error) {
	if rec.ID == "" {
		rec.ID = memdb.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	i.table.Insert(rec)
	return rec.ID, nil
}

func (i memoryImpl) Save(rec dbmodels.EmailTemplate) error {
	found := i.table.Update(rec.ID, func(stored *dbmodels.EmailTemplate) {
		rec.CreatedAt = stored.CreatedAt
		rec.UpdatedAt = time.Now()
		*stored = rec
	})
	if !found {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i memoryImpl) GetByID(id string) (*dbmodels.EmailTemplate, error) {
	rec, ok := i.table.Get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (i memoryImpl) List() ([]dbmodels.EmailTemplate, error) {
	return i.table.List(), nil
}

func (i memoryImpl) ListAutoSend(stage models.Stage) ([]dbmodels.EmailTemplate, error) {
	return i.table.Find(func(rec dbmodels.EmailTemplate) bool {
		return rec.AutoSend && rec.TriggerStage == stage
	}), nil
}

func (i memoryImpl) Delete(id string) (bool, error) {
	return i.table.Delete(id), nil
}
