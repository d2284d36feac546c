package budgetapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
)

type BudgetData struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Period     string  `json:"period"` // например 2024-Q3
	Allocated  float64 `json:"allocated"`
}

func (b BudgetData) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("не указано название бюджета")
	}
	if strings.TrimSpace(b.Department) == "" {
		return errors.New("не указан отдел")
	}
	if b.Allocated <= 0 {
		return errors.New("сумма бюджета должна быть больше нуля")
	}
	return nil
}

func (b BudgetData) ToDbModel() dbmodels.Budget {
	return dbmodels.Budget{
		Name:       strings.TrimSpace(b.Name),
		Department: strings.TrimSpace(b.Department),
		Period:     strings.TrimSpace(b.Period),
		Allocated:  b.Allocated,
	}
}

type ExpenseData struct {
	Category    models.ExpenseCategory `json:"category"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	Date        *time.Time             `json:"date"` // по умолчанию текущая дата
}

func (e ExpenseData) Validate() error {
	if !e.Category.IsValid() {
		return errors.New("неизвестная категория расходов")
	}
	if e.Amount <= 0 {
		return errors.New("сумма расхода должна быть больше нуля")
	}
	return nil
}

type ExpenseView struct {
	ID       string `json:"id"`
	BudgetID string `json:"budget_id"`
	ExpenseData
}

func ExpenseConvert(rec dbmodels.BudgetExpense) ExpenseView {
	date := rec.Date
	return ExpenseView{
		ID:       rec.ID,
		BudgetID: rec.BudgetID,
		ExpenseData: ExpenseData{
			Category:    rec.Category,
			Amount:      rec.Amount,
			Description: rec.Description,
			Date:        &date,
		},
	}
}

type BudgetView struct {
	ID string `json:"id"`
	BudgetData
	Spent       float64       `json:"spent"`
	Remaining   float64       `json:"remaining"`
	Utilization float64       `json:"utilization"` // процент освоения
	Expenses    []ExpenseView `json:"expenses,omitempty"`
}

func BudgetConvert(rec dbmodels.Budget, expenses []dbmodels.BudgetExpense) BudgetView {
	result := BudgetView{
		ID: rec.ID,
		BudgetData: BudgetData{
			Name:       rec.Name,
			Department: rec.Department,
			Period:     rec.Period,
			Allocated:  rec.Allocated,
		},
		Expenses: make([]ExpenseView, 0, len(expenses)),
	}
	for _, expense := range expenses {
		result.Spent += expense.Amount
		result.Expenses = append(result.Expenses, ExpenseConvert(expense))
	}
	result.Remaining = rec.Allocated - result.Spent
	result.Utilization = Utilization(result.Spent, rec.Allocated)
	return result
}

// Utilization процент освоения, округленный до десятых
func Utilization(spent, allocated float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return float64(int64(spent/allocated*1000+0.5)) / 10
}

type CategorySpend struct {
	Category models.ExpenseCategory `json:"category"`
	Amount   float64                `json:"amount"`
}

type BudgetUtilization struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Allocated   float64 `json:"allocated"`
	Spent       float64 `json:"spent"`
	Utilization float64 `json:"utilization"`
}

type Summary struct {
	TotalAllocated float64             `json:"total_allocated"`
	TotalSpent     float64             `json:"total_spent"`
	Remaining      float64             `json:"remaining"`
	Utilization    float64             `json:"utilization"`
	ByCategory     []CategorySpend     `json:"by_category"`
	Budgets        []BudgetUtilization `json:"budgets"`
}
