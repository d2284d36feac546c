package notificationstore

import (
	"hr-dashboard-backend/lib/memdb"
	dbmodels "hr-dashboard-backend/models/db"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (dbmodels.Notification, error)
	List(onlyUnread bool) ([]dbmodels.Notification, error)
	MarkRead(id string) (found bool, err error)
	MarkAllRead() error
	UnreadCount() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (dbmodels.Notification, error) {
	err := i.db.Create(&rec).Error
	return rec, err
}

func (i impl) List(onlyUnread bool) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.Model(&dbmodels.Notification{})
	if onlyUnread {
		tx.Where("read = ?", false)
	}
	err = tx.Order("created_at desc").Find(&list).Error
	return list, err
}

func (i impl) MarkRead(id string) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) MarkAllRead() error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("read = ?", false).
		Update("read", true).
		Error
}

func (i impl) UnreadCount() (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("read = ?", false).
		Count(&count).
		Error
	return count, err
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		table: memdb.NewTable(func(rec dbmodels.Notification) string { return rec.ID }, nil),
	}
}

type memoryImpl struct {
	table *memdb.Table[dbmodels.Notification]
}

func (i memoryImpl) Create(rec dbmodels.Notification) (dbmodels.Notification, error) {
	if rec.ID == "" {
		rec.ID = memdb.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = rec.CreatedAt
	i.table.Insert(rec)
	return rec, nil
}

func (i memoryImpl) List(onlyUnread bool) ([]dbmodels.Notification, error) {
	list := i.table.Find(func(rec dbmodels.Notification) bool {
		return !onlyUnread || !rec.Read
	})
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	return list, nil
}

func (i memoryImpl) MarkRead(id string) (bool, error) {
	return i.table.Update(id, func(rec *dbmodels.Notification) {
		rec.Read = true
		rec.UpdatedAt = time.Now()
	}), nil
}

func (i memoryImpl) MarkAllRead() error {
	i.table.Mutate(func(rows []dbmodels.Notification) {
		for idx := range rows {
			rows[idx].Read = true
		}
	})
	return nil
}

func (i memoryImpl) UnreadCount() (int64, error) {
	list := i.table.Find(func(rec dbmodels.Notification) bool {
		return !rec.Read
	})
	return int64(len(list)), nil
}
