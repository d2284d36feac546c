package historystore

import (
	"hr-dashboard-backend/lib/memdb"
	dbmodels "hr-dashboard-backend/models/db"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.StageHistory) (id string, err error)
	List(candidateID string) ([]dbmodels.StageHistory, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StageHistory) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(candidateID string) (list []dbmodels.StageHistory, err error) {
	list = []dbmodels.StageHistory{}
	err = i.db.
		Model(&dbmodels.StageHistory{}).
		Where("candidate_id = ?", candidateID).
		Order("changed_at desc").
		Find(&list).
		Error
	return list, err
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		table: memdb.NewTable(func(rec dbmodels.StageHistory) string { return rec.ID }, nil),
	}
}

type memoryImpl struct {
	table *memdb.Table[dbmodels.StageHistory]
}

func (i memoryImpl) Create(rec dbmodels.StageHistory) (string, error) {
	if rec.ID == "" {
		rec.ID = memdb.NewID()
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	i.table.Insert(rec)
	return rec.ID, nil
}

func (i memoryImpl) List(candidateID string) ([]dbmodels.StageHistory, error) {
	list := i.table.Find(func(rec dbmodels.StageHistory) bool {
		return rec.CandidateID == candidateID
	})
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].ChangedAt.After(list[b].ChangedAt)
	})
	return list, nil
}
