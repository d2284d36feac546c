package dbmodels

import (
	"hr-dashboard-backend/models"
	"time"
)

type Budget struct {
	BaseModel
	Name       string
	Department string
	Period     string
	Allocated  float64
	// Alerted уведомление о превышении порога уже отправлено
	Alerted bool
}

type BudgetExpense struct {
	BaseModel
	BudgetID    string
	Category    models.ExpenseCategory
	Amount      float64
	Description string
	Date        time.Time
}
