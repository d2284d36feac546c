package pipeline

import "hr-dashboard-backend/models"

// TransitionPolicy проверка допустимости перехода между этапами
type TransitionPolicy interface {
	IsAllowed(from, to models.Stage) bool
}

// AllowAllPolicy любой этап достижим из любого, в том числе из Hired и Rejected
type AllowAllPolicy struct{}

func (AllowAllPolicy) IsAllowed(from, to models.Stage) bool {
	return true
}

// StrictPolicy таблица допустимых переходов: вперед на следующий этап,
// отказ с любого незавершающего этапа, Interview <-> Technical.
// Из Hired и Rejected выхода нет.
type StrictPolicy struct{}

var strictTransitions = map[models.Stage][]models.Stage{
	models.StageApplied:   {models.StageScreening, models.StageRejected},
	models.StageScreening: {models.StageInterview, models.StageRejected},
	models.StageInterview: {models.StageTechnical, models.StageOffer, models.StageRejected},
	models.StageTechnical: {models.StageInterview, models.StageOffer, models.StageRejected},
	models.StageOffer:     {models.StageHired, models.StageRejected},
}

func (StrictPolicy) IsAllowed(from, to models.Stage) bool {
	for _, stage := range strictTransitions[from] {
		if stage == to {
			return true
		}
	}
	return false
}

func NewPolicy(strict bool) TransitionPolicy {
	if strict {
		return StrictPolicy{}
	}
	return AllowAllPolicy{}
}
