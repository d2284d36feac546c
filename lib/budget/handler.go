package budget

import (
	"fmt"
	budgetstore "hr-dashboard-backend/lib/budget/store"
	"hr-dashboard-backend/lib/notification"
	"hr-dashboard-backend/models"
	budgetapimodels "hr-dashboard-backend/models/api/budget"
	dbmodels "hr-dashboard-backend/models/db"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("бюджет не найден")

type Provider interface {
	List() ([]budgetapimodels.BudgetView, error)
	Get(id string) (budgetapimodels.BudgetView, error)
	Create(data budgetapimodels.BudgetData) (id string, err error)
	AddExpense(budgetID string, data budgetapimodels.ExpenseData) (id string, err error)
	Summary() (budgetapimodels.Summary, error)
}

var Instance Provider

func NewHandler(store budgetstore.Provider, notifier notification.Provider) {
	Instance = NewInstance(store, notifier, time.Now)
}

func NewInstance(store budgetstore.Provider, notifier notification.Provider, now func() time.Time) Provider {
	return &impl{
		store:    store,
		notifier: notifier,
		now:      now,
	}
}

type impl struct {
	store    budgetstore.Provider
	notifier notification.Provider
	now      func() time.Time
	// проверка порога и отметка Alerted должны выполняться атомарно с добавлением расхода
	expenseMu sync.Mutex
}

func (i *impl) List() ([]budgetapimodels.BudgetView, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка бюджетов")
		return nil, err
	}
	expenses, err := i.expensesByBudget()
	if err != nil {
		return nil, err
	}
	result := make([]budgetapimodels.BudgetView, 0, len(list))
	for _, rec := range list {
		view := budgetapimodels.BudgetConvert(rec, expenses[rec.ID])
		view.Expenses = nil
		result = append(result, view)
	}
	return result, nil
}

func (i *impl) Get(id string) (budgetapimodels.BudgetView, error) {
	rec, err := i.getBudget(id)
	if err != nil {
		return budgetapimodels.BudgetView{}, err
	}
	expenses, err := i.store.ListExpenses(id)
	if err != nil {
		log.WithError(err).WithField("budget_id", id).Error("ошибка получения расходов бюджета")
		return budgetapimodels.BudgetView{}, err
	}
	return budgetapimodels.BudgetConvert(*rec, expenses), nil
}

func (i *impl) Create(data budgetapimodels.BudgetData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	return i.store.Create(data.ToDbModel())
}

func (i *impl) AddExpense(budgetID string, data budgetapimodels.ExpenseData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	i.expenseMu.Lock()
	defer i.expenseMu.Unlock()
	rec, err := i.getBudget(budgetID)
	if err != nil {
		return "", err
	}
	expense := dbmodels.BudgetExpense{
		BudgetID:    budgetID,
		Category:    data.Category,
		Amount:      data.Amount,
		Description: data.Description,
		Date:        i.now(),
	}
	if data.Date != nil {
		expense.Date = *data.Date
	}
	id, err := i.store.AddExpense(expense)
	if err != nil {
		log.WithError(err).WithField("budget_id", budgetID).Error("ошибка добавления расхода")
		return "", err
	}
	i.checkThreshold(*rec)
	return id, nil
}

func (i *impl) Summary() (budgetapimodels.Summary, error) {
	result := budgetapimodels.Summary{
		ByCategory: make([]budgetapimodels.CategorySpend, 0, len(models.ExpenseCategoryList)),
		Budgets:    []budgetapimodels.BudgetUtilization{},
	}
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка бюджетов")
		return result, err
	}
	expenses, err := i.store.ListExpenses("")
	if err != nil {
		log.WithError(err).Error("ошибка получения расходов")
		return result, err
	}
	byCategory := map[models.ExpenseCategory]float64{}
	byBudget := map[string]float64{}
	for _, expense := range expenses {
		byCategory[expense.Category] += expense.Amount
		byBudget[expense.BudgetID] += expense.Amount
	}
	for _, rec := range list {
		spent := byBudget[rec.ID]
		result.TotalAllocated += rec.Allocated
		result.TotalSpent += spent
		result.Budgets = append(result.Budgets, budgetapimodels.BudgetUtilization{
			ID:          rec.ID,
			Name:        rec.Name,
			Allocated:   rec.Allocated,
			Spent:       spent,
			Utilization: budgetapimodels.Utilization(spent, rec.Allocated),
		})
	}
	for _, category := range models.ExpenseCategoryList {
		result.ByCategory = append(result.ByCategory, budgetapimodels.CategorySpend{
			Category: category,
			Amount:   byCategory[category],
		})
	}
	result.Remaining = result.TotalAllocated - result.TotalSpent
	result.Utilization = budgetapimodels.Utilization(result.TotalSpent, result.TotalAllocated)
	return result, nil
}

// checkThreshold уведомление создается один раз при пересечении порога
func (i *impl) checkThreshold(rec dbmodels.Budget) {
	logger := log.WithField("budget_id", rec.ID)
	expenses, err := i.store.ListExpenses(rec.ID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения расходов бюджета")
		return
	}
	spent := 0.0
	for _, expense := range expenses {
		spent += expense.Amount
	}
	over := rec.Allocated > 0 && spent/rec.Allocated >= models.BudgetAlertThreshold
	if over == rec.Alerted {
		return
	}
	if err = i.store.SetAlerted(rec.ID, over); err != nil {
		logger.WithError(err).Error("ошибка сохранения признака уведомления по бюджету")
		return
	}
	if !over || i.notifier == nil {
		return
	}
	i.notifier.Notify(models.NotificationBudgetAlert, "Бюджет почти исчерпан",
		fmt.Sprintf("Бюджет «%s» освоен на %.1f%%", rec.Name, budgetapimodels.Utilization(spent, rec.Allocated)), "")
}

func (i *impl) getBudget(id string) (*dbmodels.Budget, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithError(err).WithField("budget_id", id).Error("ошибка получения бюджета")
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i *impl) expensesByBudget() (map[string][]dbmodels.BudgetExpense, error) {
	expenses, err := i.store.ListExpenses("")
	if err != nil {
		log.WithError(err).Error("ошибка получения расходов")
		return nil, err
	}
	result := map[string][]dbmodels.BudgetExpense{}
	for _, expense := range expenses {
		result[expense.BudgetID] = append(result[expense.BudgetID], expense)
	}
	return result, nil
}
