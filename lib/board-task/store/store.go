package boardtaskstore

import (
	"hr-dashboard-backend/lib/memdb"
	dbmodels "hr-dashboard-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider хранилище сессий доски задач. Данные хранятся как есть, без разбора json.
type Provider interface {
	Get(sessionID string) (data string, found bool, err error)
	Put(sessionID, data string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Get(sessionID string) (string, bool, error) {
	rec := dbmodels.BoardSession{}
	err := i.db.
		Model(&dbmodels.BoardSession{}).
		Where("id = ?", sessionID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.Data, true, nil
}

func (i impl) Put(sessionID, data string) error {
	return i.db.Save(&dbmodels.BoardSession{
		ID:        sessionID,
		Data:      data,
		UpdatedAt: time.Now(),
	}).Error
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		sessions: memdb.NewTable(func(rec dbmodels.BoardSession) string { return rec.ID }, nil),
	}
}

type memoryImpl struct {
	sessions *memdb.Table[dbmodels.BoardSession]
}

func (i memoryImpl) Get(sessionID string) (string, bool, error) {
	rec, ok := i.sessions.Get(sessionID)
	return rec.Data, ok, nil
}

func (i memoryImpl) Put(sessionID, data string) error {
	i.sessions.Insert(dbmodels.BoardSession{
		ID:        sessionID,
		Data:      data,
		UpdatedAt: time.Now(),
	})
	return nil
}
