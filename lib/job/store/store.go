package jobstore

import (
	"hr-dashboard-backend/lib/memdb"
	dbmodels "hr-dashboard-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.JobPosting) (id string, err error)
	Save(rec dbmodels.JobPosting) error
	GetByID(id string) (*dbmodels.JobPosting, error)
	List(filter dbmodels.JobFilter) ([]dbmodels.JobPosting, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobPosting) (string, error) {
	if err := i.db.Create(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.JobPosting) error {
	tx := i.db.
		Model(&dbmodels.JobPosting{}).
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

func (i impl) GetByID(id string) (*dbmodels.JobPosting, error) {
	rec := dbmodels.JobPosting{}
	err := i.db.
		Model(&dbmodels.JobPosting{}).
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

func (i impl) List(filter dbmodels.JobFilter) (list []dbmodels.JobPosting, err error) {
	list = []dbmodels.JobPosting{}
	tx := i.db.Model(&dbmodels.JobPosting{})
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		tx.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		tx.Where("LOWER(title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	err = tx.Order("created_at").Find(&list).Error
	return list, err
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		table: memdb.NewTable(
			func(rec dbmodels.JobPosting) string { return rec.ID },
			func(rec dbmodels.JobPosting) dbmodels.JobPosting {
				rec.Requirements = append([]string(nil), rec.Requirements...)
				return rec
			}),
	}
}

type memoryImpl struct {
	table *memdb.Table[dbmodels.JobPosting]
}

func (i memoryImpl) Create(rec dbmodels.JobPosting) (string, error) {
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

func (i memoryImpl) Save(rec dbmodels.JobPosting) error {
	found := i.table.Update(rec.ID, func(stored *dbmodels.JobPosting) {
		rec.CreatedAt = stored.CreatedAt
		rec.UpdatedAt = time.Now()
		rec.Requirements = append([]string(nil), rec.Requirements...)
		*stored = rec
	})
	if !found {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i memoryImpl) GetByID(id string) (*dbmodels.JobPosting, error) {
	rec, ok := i.table.Get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (i memoryImpl) List(filter dbmodels.JobFilter) ([]dbmodels.JobPosting, error) {
	search := strings.ToLower(filter.Search)
	return i.table.Find(func(rec dbmodels.JobPosting) bool {
		if filter.Status != "" && rec.Status != filter.Status {
			return false
		}
		if filter.Department != "" && rec.Department != filter.Department {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(rec.Title), search) {
			return false
		}
		return true
	}), nil
}
