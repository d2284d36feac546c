package cvevaluation

import (
	"context"
	"fmt"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"math/rand"
	"strings"
	"sync"
	"time"
)

type AnalyzeInput struct {
	Candidate dbmodels.Candidate
	Job       *dbmodels.JobPosting
	CVText    string
}

// Analyzer оценка соответствия кандидата вакансии
type Analyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (dbmodels.EvaluationResult, error)
}

// SimulatedAnalyzer оценка без внешних сервисов: совпадение требований вакансии
// с текстом резюме и навыками кандидата плюс случайный разброс.
// При одинаковом seed результаты повторяются.
type SimulatedAnalyzer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedAnalyzer(seed int64) *SimulatedAnalyzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedAnalyzer{rnd: rand.New(rand.NewSource(seed))}
}

func (a *SimulatedAnalyzer) Analyze(ctx context.Context, input AnalyzeInput) (dbmodels.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return dbmodels.EvaluationResult{}, err
	}
	result := dbmodels.EvaluationResult{
		CandidateID:   input.Candidate.ID,
		MatchedSkills: []string{},
		Strengths:     []string{},
		Gaps:          []string{},
	}
	jobTitle := "без вакансии"
	requirements := []string{}
	if input.Job != nil {
		result.JobID = input.Job.ID
		jobTitle = input.Job.Title
		requirements = input.Job.Requirements
	}
	text := strings.ToLower(input.CVText + " " + strings.Join(input.Candidate.Skills, " "))
	for _, requirement := range requirements {
		if strings.TrimSpace(requirement) == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(requirement)) {
			result.MatchedSkills = append(result.MatchedSkills, requirement)
			result.Strengths = append(result.Strengths, fmt.Sprintf("Навык: %s", requirement))
		} else {
			result.Gaps = append(result.Gaps, fmt.Sprintf("Нет подтверждения навыка: %s", requirement))
		}
	}

	a.mu.Lock()
	skillsJitter := a.rnd.Intn(11) - 5
	experienceJitter := a.rnd.Intn(11) - 5
	a.mu.Unlock()

	if len(requirements) > 0 {
		result.SkillsMatch = clamp(len(result.MatchedSkills)*100/len(requirements) + skillsJitter)
	} else {
		result.SkillsMatch = clamp(50 + skillsJitter)
	}
	years := input.Candidate.ExperienceYears
	result.ExperienceMatch = clamp(25 + years*15 + experienceJitter)
	switch {
	case years >= 5:
		result.Strengths = append(result.Strengths, fmt.Sprintf("Опыт работы %d лет", years))
	case years < 2:
		result.Gaps = append(result.Gaps, "Небольшой опыт работы")
	}
	result.OverallScore = clamp((result.SkillsMatch*60 + result.ExperienceMatch*40) / 100)
	result.Recommendation = RecommendationByScore(result.OverallScore)
	result.Summary = fmt.Sprintf("%s соответствует вакансии «%s» на %d%%",
		input.Candidate.GetFullName(), jobTitle, result.OverallScore)
	return result, nil
}

func RecommendationByScore(score int) models.Recommendation {
	switch {
	case score >= 85:
		return models.RecommendationStrongYes
	case score >= 70:
		return models.RecommendationYes
	case score >= 50:
		return models.RecommendationMaybe
	}
	return models.RecommendationNo
}

func clamp(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
