package budgetstore

import (
	"hr-dashboard-backend/lib/memdb"
	dbmodels "hr-dashboard-backend/models/db"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Budget) (id string, err error)
	GetByID(id string) (*dbmodels.Budget, error)
	List() ([]dbmodels.Budget, error)
	SetAlerted(id string, alerted bool) error
	AddExpense(rec dbmodels.BudgetExpense) (id string, err error)
	ListExpenses(budgetID string) ([]dbmodels.BudgetExpense, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Budget) (string, error) {
	if err := i.db.Create(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Budget, error) {
	rec := dbmodels.Budget{}
	err := i.db.
		Model(&dbmodels.Budget{}).
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

func (i impl) List() (list []dbmodels.Budget, err error) {
	list = []dbmodels.Budget{}
	err = i.db.
		Model(&dbmodels.Budget{}).
		Order("created_at").
		Find(&list).
		Error
	return list, err
}

func (i impl) SetAlerted(id string, alerted bool) error {
	return i.db.
		Model(&dbmodels.Budget{}).
		Where("id = ?", id).
		Update("alerted", alerted).
		Error
}

func (i impl) AddExpense(rec dbmodels.BudgetExpense) (string, error) {
	if err := i.db.Create(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListExpenses расходы бюджета, пустой budgetID - все расходы
func (i impl) ListExpenses(budgetID string) (list []dbmodels.BudgetExpense, err error) {
	list = []dbmodels.BudgetExpense{}
	tx := i.db.Model(&dbmodels.BudgetExpense{})
	if budgetID != "" {
		tx.Where("budget_id = ?", budgetID)
	}
	err = tx.Order("date desc").Find(&list).Error
	return list, err
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		budgets:  memdb.NewTable(func(rec dbmodels.Budget) string { return rec.ID }, nil),
		expenses: memdb.NewTable(func(rec dbmodels.BudgetExpense) string { return rec.ID }, nil),
	}
}

type memoryImpl struct {
	budgets  *memdb.Table[dbmodels.Budget]
	expenses *memdb.Table[dbmodels.BudgetExpense]
}

func (i memoryImpl) Create(rec dbmodels.Budget) (string, error) {
	if rec.ID == "" {
		rec.ID = memdb.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	i.budgets.Insert(rec)
	return rec.ID, nil
}

func (i memoryImpl) GetByID(id string) (*dbmodels.Budget, error) {
	rec, ok := i.budgets.Get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (i memoryImpl) List() ([]dbmodels.Budget, error) {
	return i.budgets.List(), nil
}

func (i memoryImpl) SetAlerted(id string, alerted bool) error {
	if !i.budgets.Update(id, func(rec *dbmodels.Budget) { rec.Alerted = alerted }) {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i memoryImpl) AddExpense(rec dbmodels.BudgetExpense) (string, error) {
	if rec.ID == "" {
		rec.ID = memdb.NewID()
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	i.expenses.Insert(rec)
	return rec.ID, nil
}

func (i memoryImpl) ListExpenses(budgetID string) ([]dbmodels.BudgetExpense, error) {
	list := i.expenses.Find(func(rec dbmodels.BudgetExpense) bool {
		return budgetID == "" || rec.BudgetID == budgetID
	})
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].Date.After(list[b].Date)
	})
	return list, nil
}
