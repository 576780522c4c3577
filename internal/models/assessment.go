package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RiskLevel represents the overall risk tier of an assessment.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Severity represents the base severity of a matched condition.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Urgency represents how quickly a matched condition should be acted on.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Rank orders urgencies for deterministic sorting (high first).
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	default:
		return 0
	}
}

// Disclaimer accompanies every assessment. The engine produces advisory,
// non-authoritative output and must never be presented as a diagnosis.
const Disclaimer = "This assessment is informational only and is not a medical diagnosis. Seek professional care for any concerning symptoms."

// ConditionMatch is one scored candidate condition inside an assessment.
// It is derived per assessment and only persisted as part of its parent.
type ConditionMatch struct {
	Condition       string   `json:"condition"`
	Probability     float64  `json:"probability"`
	Urgency         Urgency  `json:"urgency"`
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	Sources         []string `json:"sources"`
}

// RiskAssessment is the single value type shared by the inference engine,
// history store, submission workflow and feedback loop. It is validated once
// at the engine boundary and never mutated after creation.
type RiskAssessment struct {
	BaseModel
	UserID              string             `gorm:"size:36;index:idx_assessments_user_time,priority:1" json:"userId"`
	Timestamp           time.Time          `gorm:"index:idx_assessments_user_time,priority:2" json:"timestamp"`
	SelectedSymptoms    StringList         `gorm:"type:text" json:"selectedSymptoms"`
	PotentialConditions ConditionMatchList `gorm:"type:text" json:"potentialConditions"`
	OverallRiskLevel    RiskLevel          `gorm:"size:20" json:"overallRiskLevel"`
	Recommendations     StringList         `gorm:"type:text" json:"recommendations"`
	Disclaimer          string             `gorm:"-" json:"disclaimer"`
}

// TopProbability returns the probability of the highest-ranked match,
// or 0 when the assessment matched nothing.
func (a *RiskAssessment) TopProbability() float64 {
	if len(a.PotentialConditions) == 0 {
		return 0
	}
	return a.PotentialConditions[0].Probability
}

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// ConditionMatchList stores the ordered candidate conditions as a JSON text column.
type ConditionMatchList []ConditionMatch

// Value implements driver.Valuer.
func (l ConditionMatchList) Value() (driver.Value, error) {
	if l == nil {
		l = ConditionMatchList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ConditionMatchList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
