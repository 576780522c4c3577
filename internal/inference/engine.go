// Package inference implements the risk-assessment engine: a pure,
// deterministic function from a set of self-reported symptoms to a scored
// list of candidate conditions and an overall risk tier. The engine never
// performs I/O; persistence and delivery are the caller's concern.
package inference

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"health-ai-server/internal/catalog"
	"health-ai-server/internal/models"
)

// Probability thresholds mapping the top match to an overall risk tier.
// Tests target these boundaries exactly; keep them named, never inlined.
const (
	CriticalProbabilityThreshold = 0.8
	HighProbabilityThreshold     = 0.6
	MediumProbabilityThreshold   = 0.4
)

// TopRecommendationSources bounds how many top matches contribute to the
// aggregated recommendation list. Five keeps the advisory list readable on
// a phone screen.
const TopRecommendationSources = 5

// ErrNoSymptoms is returned when Assess is called with an empty symptom set.
var ErrNoSymptoms = fmt.Errorf("at least one symptom is required")

// Engine matches selected symptoms against the condition knowledge base.
type Engine struct {
	symptoms   []catalog.Symptom
	conditions []catalog.ConditionEntry
}

// NewEngine creates an engine over a loaded catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{symptoms: cat.Symptoms(), conditions: cat.Conditions()}
}

// Taxonomy returns the symptom catalog offered to the selection screen.
func (e *Engine) Taxonomy() []catalog.Symptom {
	return e.symptoms
}

// Assess scores the knowledge base against the selected symptoms and builds
// a complete assessment for the user.
//
// Unknown symptom labels are accepted verbatim: they never intersect a
// signature, so they cannot inflate a score, but they stay recorded in
// SelectedSymptoms exactly as the user reported them. Zero overlap with
// the entire knowledge base is not an error; the absence of a disease
// signal is itself a valid low-risk outcome.
func (e *Engine) Assess(userID string, symptoms []string) (*models.RiskAssessment, error) {
	selected := dedupe(symptoms)
	if len(selected) == 0 {
		return nil, ErrNoSymptoms
	}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		selectedSet[s] = struct{}{}
	}

	matches := make([]models.ConditionMatch, 0, len(e.conditions))
	for _, entry := range e.conditions {
		overlap := 0
		for _, sig := range entry.SignatureSymptoms {
			if _, ok := selectedSet[sig]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		probability := float64(overlap) / float64(len(entry.SignatureSymptoms))
		if entry.Prior > 0 {
			probability *= entry.Prior
		}

		matches = append(matches, models.ConditionMatch{
			Condition:       entry.Condition,
			Probability:     probability,
			Urgency:         entry.BaseUrgency,
			Severity:        entry.BaseSeverity,
			Description:     entry.Description,
			Recommendations: entry.Recommendations,
			Sources:         entry.Sources,
		})
	}

	sortMatches(matches)

	assessment := &models.RiskAssessment{
		BaseModel:           models.BaseModel{ID: uuid.New().String()},
		UserID:              userID,
		Timestamp:           time.Now().UTC(),
		SelectedSymptoms:    models.StringList(selected),
		PotentialConditions: models.ConditionMatchList(matches),
		OverallRiskLevel:    models.RiskLevelLow,
		Recommendations:     models.StringList(aggregateRecommendations(matches)),
		Disclaimer:          models.Disclaimer,
	}
	if len(matches) > 0 {
		assessment.OverallRiskLevel = riskLevelFor(matches[0].Probability)
	}
	return assessment, nil
}

// sortMatches orders candidates descending by probability, ties broken by
// urgency (high first) then condition name, so identical input always
// produces identical output.
func sortMatches(matches []models.ConditionMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Probability != matches[j].Probability {
			return matches[i].Probability > matches[j].Probability
		}
		if matches[i].Urgency.Rank() != matches[j].Urgency.Rank() {
			return matches[i].Urgency.Rank() > matches[j].Urgency.Rank()
		}
		return matches[i].Condition < matches[j].Condition
	})
}

// riskLevelFor maps a top-match probability to the overall risk tier.
func riskLevelFor(probability float64) models.RiskLevel {
	switch {
	case probability >= CriticalProbabilityThreshold:
		return models.RiskLevelCritical
	case probability >= HighProbabilityThreshold:
		return models.RiskLevelHigh
	case probability >= MediumProbabilityThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// aggregateRecommendations merges the recommendation lists of the top
// matches, deduplicated preserving first-seen order.
func aggregateRecommendations(matches []models.ConditionMatch) []string {
	limit := len(matches)
	if limit > TopRecommendationSources {
		limit = TopRecommendationSources
	}

	seen := make(map[string]struct{})
	var out []string
	for _, m := range matches[:limit] {
		for _, rec := range m.Recommendations {
			if _, ok := seen[rec]; ok {
				continue
			}
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}

// dedupe removes duplicate labels preserving the order the user chose.
func dedupe(symptoms []string) []string {
	seen := make(map[string]struct{}, len(symptoms))
	var out []string
	for _, s := range symptoms {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
