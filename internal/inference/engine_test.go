package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-ai-server/internal/catalog"
	"health-ai-server/internal/models"
)

func testSymptoms() []catalog.Symptom {
	return []catalog.Symptom{
		{Label: "Chest pain", Category: catalog.CategoryCardiovascular},
		{Label: "Shortness of breath", Category: catalog.CategoryRespiratory},
		{Label: "Dizziness", Category: catalog.CategoryCardiovascular},
		{Label: "Fever", Category: catalog.CategoryGeneral},
		{Label: "Cough", Category: catalog.CategoryRespiratory},
	}
}

func newTestEngine(t *testing.T, conditions []catalog.ConditionEntry) *Engine {
	t.Helper()
	cat, err := catalog.Load(testSymptoms(), conditions)
	require.NoError(t, err)
	return NewEngine(cat)
}

func TestAssess_CardiacScenario(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{
			Condition:         "Cardiac concern",
			SignatureSymptoms: []string{"Chest pain", "Shortness of breath", "Dizziness"},
			BaseSeverity:      models.SeveritySevere,
			BaseUrgency:       models.UrgencyHigh,
			Description:       "test",
			Recommendations:   []string{"Seek urgent medical attention"},
		},
	})

	assessment, err := engine.Assess("user-1", []string{"Chest pain", "Shortness of breath"})
	require.NoError(t, err)

	require.Len(t, assessment.PotentialConditions, 1)
	match := assessment.PotentialConditions[0]
	assert.Equal(t, "Cardiac concern", match.Condition)
	assert.InDelta(t, 2.0/3.0, match.Probability, 1e-9)
	assert.Equal(t, models.UrgencyHigh, match.Urgency)

	// 2/3 sits in the [0.6, 0.8) band.
	assert.Equal(t, models.RiskLevelHigh, assessment.OverallRiskLevel)
	assert.Equal(t, []string{"Seek urgent medical attention"}, []string(assessment.Recommendations))
	assert.Equal(t, models.Disclaimer, assessment.Disclaimer)
}

func TestAssess_NoOverlapIsLowRiskNotError(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{
			Condition:         "Influenza",
			SignatureSymptoms: []string{"Fever", "Cough"},
			BaseSeverity:      models.SeverityModerate,
			BaseUrgency:       models.UrgencyMedium,
			Recommendations:   []string{"Rest"},
		},
	})

	assessment, err := engine.Assess("user-1", []string{"Chest pain", "Something unheard of"})
	require.NoError(t, err)
	assert.Empty(t, assessment.PotentialConditions)
	assert.Equal(t, models.RiskLevelLow, assessment.OverallRiskLevel)
	assert.Empty(t, assessment.Recommendations)
}

func TestAssess_EmptySymptomsRejected(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{Condition: "X", SignatureSymptoms: []string{"Fever"}, Recommendations: []string{"r"}},
	})

	_, err := engine.Assess("user-1", nil)
	assert.ErrorIs(t, err, ErrNoSymptoms)

	// Blank labels do not count as symptoms either.
	_, err = engine.Assess("user-1", []string{"", ""})
	assert.ErrorIs(t, err, ErrNoSymptoms)
}

func TestAssess_UnknownLabelsAcceptedVerbatim(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{Condition: "X", SignatureSymptoms: []string{"Fever"}, BaseUrgency: models.UrgencyLow, Recommendations: []string{"r"}},
	})

	assessment, err := engine.Assess("user-1", []string{"Glowing toes", "Fever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Glowing toes", "Fever"}, []string(assessment.SelectedSymptoms))
	require.Len(t, assessment.PotentialConditions, 1)
	assert.Equal(t, 1.0, assessment.PotentialConditions[0].Probability)
}

func TestAssess_DuplicateSymptomsRemovedOrderPreserved(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{Condition: "X", SignatureSymptoms: []string{"Fever", "Cough"}, Recommendations: []string{"r"}},
	})

	assessment, err := engine.Assess("user-1", []string{"Cough", "Fever", "Cough", "Fever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cough", "Fever"}, []string(assessment.SelectedSymptoms))
	// Duplicates must not double-count the overlap.
	assert.Equal(t, 1.0, assessment.PotentialConditions[0].Probability)
}

func TestAssess_Deterministic(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{Condition: "A", SignatureSymptoms: []string{"Fever", "Cough", "Dizziness"}, BaseUrgency: models.UrgencyLow, Recommendations: []string{"a"}},
		{Condition: "B", SignatureSymptoms: []string{"Fever", "Cough"}, BaseUrgency: models.UrgencyHigh, Recommendations: []string{"b"}},
		{Condition: "C", SignatureSymptoms: []string{"Fever"}, BaseUrgency: models.UrgencyMedium, Recommendations: []string{"c"}},
	})

	first, err := engine.Assess("user-1", []string{"Fever", "Cough"})
	require.NoError(t, err)
	second, err := engine.Assess("user-1", []string{"Fever", "Cough"})
	require.NoError(t, err)

	assert.Equal(t, first.PotentialConditions, second.PotentialConditions)
	assert.Equal(t, first.OverallRiskLevel, second.OverallRiskLevel)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestAssess_OrderingByProbabilityUrgencyName(t *testing.T) {
	// B and C tie at probability 1; B's urgency is higher. D ties with C on
	// probability and urgency and must sort after it by name.
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{Condition: "A", SignatureSymptoms: []string{"Fever", "Cough", "Dizziness", "Chest pain"}, BaseUrgency: models.UrgencyHigh, Recommendations: []string{"a"}},
		{Condition: "D", SignatureSymptoms: []string{"Cough"}, BaseUrgency: models.UrgencyMedium, Recommendations: []string{"d"}},
		{Condition: "C", SignatureSymptoms: []string{"Fever"}, BaseUrgency: models.UrgencyMedium, Recommendations: []string{"c"}},
		{Condition: "B", SignatureSymptoms: []string{"Cough", "Fever"}, BaseUrgency: models.UrgencyHigh, Recommendations: []string{"b"}},
	})

	assessment, err := engine.Assess("user-1", []string{"Fever", "Cough"})
	require.NoError(t, err)

	var names []string
	for _, m := range assessment.PotentialConditions {
		names = append(names, m.Condition)
	}
	assert.Equal(t, []string{"B", "C", "D", "A"}, names)

	probs := assessment.PotentialConditions
	for i := 1; i < len(probs); i++ {
		assert.GreaterOrEqual(t, probs[i-1].Probability, probs[i].Probability)
	}
}

func TestAssess_PriorAttenuatesScore(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{Condition: "Weighted", SignatureSymptoms: []string{"Fever"}, Prior: 0.5, BaseUrgency: models.UrgencyLow, Recommendations: []string{"w"}},
	})

	assessment, err := engine.Assess("user-1", []string{"Fever"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, assessment.PotentialConditions[0].Probability, 1e-9)
	assert.Equal(t, models.RiskLevelMedium, assessment.OverallRiskLevel)
}

func TestAssess_RecommendationsDeduplicatedBounded(t *testing.T) {
	// Seven matching conditions; only the top five contribute, and the
	// shared recommendation appears once, at its first-seen position.
	var entries []catalog.ConditionEntry
	shared := "Drink fluids"
	names := []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7"}
	for i, name := range names {
		entries = append(entries, catalog.ConditionEntry{
			Condition:         name,
			SignatureSymptoms: []string{"Fever"},
			BaseUrgency:       models.UrgencyLow,
			Recommendations:   []string{shared, "Advice " + name},
			// Decreasing priors fix the order: C1 scores 1.0, C2 0.9, ...
			Prior: 1.0 - float64(i)*0.1,
		})
	}
	engine := newTestEngine(t, entries)

	assessment, err := engine.Assess("user-1", []string{"Fever"})
	require.NoError(t, err)
	require.Len(t, assessment.PotentialConditions, 7)

	recs := []string(assessment.Recommendations)
	assert.Equal(t, []string{
		shared,
		"Advice C1", "Advice C2", "Advice C3", "Advice C4", "Advice C5",
	}, recs)
}

func TestRiskLevelThresholdBoundaries(t *testing.T) {
	cases := []struct {
		probability float64
		want        models.RiskLevel
	}{
		{0.9, models.RiskLevelCritical},
		{CriticalProbabilityThreshold, models.RiskLevelCritical},
		{0.79999, models.RiskLevelHigh},
		{HighProbabilityThreshold, models.RiskLevelHigh},
		{0.59999, models.RiskLevelMedium},
		{MediumProbabilityThreshold, models.RiskLevelMedium},
		{0.39999, models.RiskLevelLow},
		{0, models.RiskLevelLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, riskLevelFor(tc.probability), "probability %v", tc.probability)
	}
}

func TestAssess_FullOverlapIsCritical(t *testing.T) {
	engine := newTestEngine(t, []catalog.ConditionEntry{
		{
			Condition:         "Cardiac concern",
			SignatureSymptoms: []string{"Chest pain", "Shortness of breath", "Dizziness"},
			BaseUrgency:       models.UrgencyHigh,
			Recommendations:   []string{"Seek urgent medical attention"},
		},
	})

	assessment, err := engine.Assess("user-1", []string{"Chest pain", "Shortness of breath", "Dizziness"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, assessment.PotentialConditions[0].Probability)
	assert.Equal(t, models.RiskLevelCritical, assessment.OverallRiskLevel)
}
