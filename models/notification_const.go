package models

type NotificationType string

const (
	NotificationStageChange      NotificationType = "stage_change"
	NotificationCandidateBlocked NotificationType = "candidate_blocked"
	NotificationEvaluationDone   NotificationType = "evaluation_done"
	NotificationBulkParseDone    NotificationType = "bulk_parse_done"
	NotificationBudgetAlert      NotificationType = "budget_alert"
	NotificationEmailSent        NotificationType = "email_sent"
	NotificationInfo             NotificationType = "info"
)

type ExpenseCategory string

const (
	ExpenseJobBoards     ExpenseCategory = "job_boards"
	ExpenseAgencies      ExpenseCategory = "agencies"
	ExpenseEvents        ExpenseCategory = "events"
	ExpenseTools         ExpenseCategory = "tools"
	ExpenseReferralBonus ExpenseCategory = "referral_bonus"
	ExpenseOther         ExpenseCategory = "other"
)

var ExpenseCategoryList = []ExpenseCategory{
	ExpenseJobBoards,
	ExpenseAgencies,
	ExpenseEvents,
	ExpenseTools,
	ExpenseReferralBonus,
	ExpenseOther,
}

func (c ExpenseCategory) IsValid() bool {
	for _, item := range ExpenseCategoryList {
		if item == c {
			return true
		}
	}
	return false
}

// BudgetAlertThreshold доля освоения бюджета, после которой создается уведомление
const BudgetAlertThreshold = 0.9

type TaskKind string

const (
	TaskKindEvaluation TaskKind = "evaluation"
	TaskKindBulkParse  TaskKind = "bulk_parse"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusDone      TaskStatus = "done"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

func (s TaskStatus) IsFinished() bool {
	return s == TaskStatusDone || s == TaskStatusFailed || s == TaskStatusCancelled
}

type Recommendation string

const (
	RecommendationStrongYes Recommendation = "strong_yes"
	RecommendationYes       Recommendation = "yes"
	RecommendationMaybe     Recommendation = "maybe"
	RecommendationNo        Recommendation = "no"
)

type BoardTaskPriority string

const (
	PriorityLow    BoardTaskPriority = "low"
	PriorityMedium BoardTaskPriority = "medium"
	PriorityHigh   BoardTaskPriority = "high"
)
