package cvevaluation

import (
	dbmodels "hr-dashboard-backend/models/db"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// FlagStrategy признаки, которые выставляются кандидату при оценке и разборе резюме
type FlagStrategy interface {
	ShouldFlagAsDuplicate(candidate dbmodels.Candidate, existing []dbmodels.Candidate) bool
	HasMissingInfo(candidate dbmodels.Candidate) bool
}

const (
	FlagStrategyRules  = "rules"
	FlagStrategyRandom = "random"
)

func NewFlagStrategy(name string, seed int64, duplicateRate, missingInfoRate float64) FlagStrategy {
	if name == FlagStrategyRandom {
		return NewRandomFlagStrategy(seed, duplicateRate, missingInfoRate)
	}
	return RulesFlagStrategy{}
}

// RulesFlagStrategy дубликат - другой кандидат с той же почтой или тем же именем,
// неполные данные - нет почты, телефона или навыков
type RulesFlagStrategy struct{}

func (RulesFlagStrategy) ShouldFlagAsDuplicate(candidate dbmodels.Candidate, existing []dbmodels.Candidate) bool {
	email := strings.ToLower(strings.TrimSpace(candidate.Email))
	name := strings.ToLower(candidate.GetFullName())
	for _, rec := range existing {
		if rec.ID != "" && rec.ID == candidate.ID {
			continue
		}
		if email != "" && strings.ToLower(strings.TrimSpace(rec.Email)) == email {
			return true
		}
		if name != "" && strings.ToLower(rec.GetFullName()) == name {
			return true
		}
	}
	return false
}

func (RulesFlagStrategy) HasMissingInfo(candidate dbmodels.Candidate) bool {
	return strings.TrimSpace(candidate.Email) == "" ||
		strings.TrimSpace(candidate.Phone) == "" ||
		len(candidate.Skills) == 0
}

// RandomFlagStrategy признаки выставляются случайно с заданной вероятностью
type RandomFlagStrategy struct {
	mu              sync.Mutex
	rnd             *rand.Rand
	duplicateRate   float64
	missingInfoRate float64
}

func NewRandomFlagStrategy(seed int64, duplicateRate, missingInfoRate float64) *RandomFlagStrategy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomFlagStrategy{
		rnd:             rand.New(rand.NewSource(seed)),
		duplicateRate:   duplicateRate,
		missingInfoRate: missingInfoRate,
	}
}

func (s *RandomFlagStrategy) ShouldFlagAsDuplicate(_ dbmodels.Candidate, _ []dbmodels.Candidate) bool {
	return s.next() < s.duplicateRate
}

func (s *RandomFlagStrategy) HasMissingInfo(_ dbmodels.Candidate) bool {
	return s.next() < s.missingInfoRate
}

func (s *RandomFlagStrategy) next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}
