package cvevaluation

import (
	"context"
	"encoding/json"
	"fmt"
	yagptclient "hr-dashboard-backend/lib/gpt/yagpt-client"
	"hr-dashboard-backend/lib/utils/lock"
	dbmodels "hr-dashboard-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

const evaluationPromt = "Ты - опытный HR аналитик. Оцени соответствие кандидата вакансии. " +
	"Верни только JSON объект без дополнительного текста."

// GPTAnalyzer оценка резюме через YandexGPT, запросы к модели выполняются по одному
type GPTAnalyzer struct {
	client   yagptclient.Provider
	resource *lock.ResourceLock
}

func NewGPTAnalyzer(client yagptclient.Provider) *GPTAnalyzer {
	return &GPTAnalyzer{
		client:   client,
		resource: lock.NewResourceLock(1),
	}
}

type gptEvaluation struct {
	OverallScore    int      `json:"overall_score"`
	SkillsMatch     int      `json:"skills_match"`
	ExperienceMatch int      `json:"experience_match"`
	MatchedSkills   []string `json:"matched_skills"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Summary         string   `json:"summary"`
}

func (a *GPTAnalyzer) Analyze(ctx context.Context, input AnalyzeInput) (dbmodels.EvaluationResult, error) {
	if !a.resource.Acquire(ctx) {
		return dbmodels.EvaluationResult{}, ctx.Err()
	}
	defer a.resource.Release()
	response, err := a.client.Complete(ctx, yagptclient.Request{
		Instruction: evaluationPromt,
		Text:        buildEvaluationText(input),
		Strict:      true,
	})
	if err != nil {
		return dbmodels.EvaluationResult{}, err
	}
	parsed, err := parseEvaluation(response)
	if err != nil {
		return dbmodels.EvaluationResult{}, err
	}
	result := dbmodels.EvaluationResult{
		CandidateID:     input.Candidate.ID,
		OverallScore:    clamp(parsed.OverallScore),
		SkillsMatch:     clamp(parsed.SkillsMatch),
		ExperienceMatch: clamp(parsed.ExperienceMatch),
		MatchedSkills:   parsed.MatchedSkills,
		Strengths:       parsed.Strengths,
		Gaps:            parsed.Gaps,
		Summary:         parsed.Summary,
	}
	if input.Job != nil {
		result.JobID = input.Job.ID
	}
	result.Recommendation = RecommendationByScore(result.OverallScore)
	return result, nil
}

func buildEvaluationText(input AnalyzeInput) string {
	var sb strings.Builder
	sb.WriteString("## ВАКАНСИЯ\n")
	if input.Job != nil {
		sb.WriteString(fmt.Sprintf("Название: %s\n", input.Job.Title))
		sb.WriteString(fmt.Sprintf("Описание: %s\n", input.Job.Description))
		if len(input.Job.Requirements) > 0 {
			sb.WriteString("Требования:\n")
			for _, requirement := range input.Job.Requirements {
				sb.WriteString(fmt.Sprintf("- %s\n", requirement))
			}
		}
	} else {
		sb.WriteString("Вакансия не указана, оцени общий уровень кандидата\n")
	}
	sb.WriteString("\n## КАНДИДАТ\n")
	sb.WriteString(fmt.Sprintf("Имя: %s\n", input.Candidate.GetFullName()))
	sb.WriteString(fmt.Sprintf("Опыт (лет): %d\n", input.Candidate.ExperienceYears))
	if len(input.Candidate.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Навыки: %s\n", strings.Join(input.Candidate.Skills, ", ")))
	}
	if input.CVText != "" {
		sb.WriteString("\n### РЕЗЮМЕ\n")
		sb.WriteString(input.CVText)
		sb.WriteString("\n")
	}
	sb.WriteString("\nФормат ответа:\n")
	sb.WriteString(`{"overall_score":<0-100>,"skills_match":<0-100>,"experience_match":<0-100>,` +
		`"matched_skills":["..."],"strengths":["..."],"gaps":["..."],"summary":"..."}`)
	return sb.String()
}

// parseEvaluation модель может добавить текст вокруг JSON
func parseEvaluation(response string) (gptEvaluation, error) {
	result := gptEvaluation{}
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx < startIdx {
		return result, errors.New("в ответе YandexGPT не найден JSON")
	}
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &result); err != nil {
		return result, errors.Wrap(err, "ошибка разбора ответа YandexGPT")
	}
	return result, nil
}
