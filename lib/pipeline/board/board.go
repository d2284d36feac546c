package board

import (
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"time"
)

type StageGroup struct {
	Stage      models.Stage
	Candidates []dbmodels.Candidate
}

// MoveCandidateToStage переводит кандидата на указанный этап прямо в срезе.
// Неизвестный id, неизвестный этап и перевод на текущий этап ничего не меняют.
// При смене этапа сбрасывается только дата входа на этап.
func MoveCandidateToStage(candidates []dbmodels.Candidate, candidateID string, target models.Stage, now time.Time) bool {
	if !target.IsValid() {
		return false
	}
	for idx := range candidates {
		if candidates[idx].ID != candidateID {
			continue
		}
		if candidates[idx].Stage == target {
			return false
		}
		candidates[idx].Stage = target
		candidates[idx].StageEnteredAt = now
		return true
	}
	return false
}

// GroupByStage раскладывает кандидатов по колонкам в порядке этапов воронки.
// Внутри колонки сохраняется исходный порядок. Кандидаты с неизвестным этапом
// в группы не попадают.
func GroupByStage(candidates []dbmodels.Candidate) []StageGroup {
	groups := make([]StageGroup, 0, len(models.StageList))
	index := make(map[models.Stage]int, len(models.StageList))
	for idx, stage := range models.StageList {
		groups = append(groups, StageGroup{
			Stage:      stage,
			Candidates: []dbmodels.Candidate{},
		})
		index[stage] = idx
	}
	for _, candidate := range candidates {
		idx, ok := index[candidate.Stage]
		if !ok {
			continue
		}
		groups[idx].Candidates = append(groups[idx].Candidates, candidate)
	}
	return groups
}

// CountByStage количество кандидатов на каждом этапе
func CountByStage(candidates []dbmodels.Candidate) map[models.Stage]int {
	result := make(map[models.Stage]int, len(models.StageList))
	for _, stage := range models.StageList {
		result[stage] = 0
	}
	for _, candidate := range candidates {
		if _, ok := result[candidate.Stage]; ok {
			result[candidate.Stage]++
		}
	}
	return result
}
