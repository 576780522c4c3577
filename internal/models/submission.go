package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Submission is a provider-visible copy of an assessment, created by the
// patient action "send to provider". It links back to the originating
// assessment via InsightID but owns its own snapshot of the payload, so
// later changes to the original never affect what the provider received.
//
// At most one submission exists per (patientId, providerId, insightId);
// a retried send updates SentAt and Payload in place.
type Submission struct {
	BaseModel
	PatientID  string             `gorm:"size:36;index;uniqueIndex:idx_submission_key,priority:1" json:"patientId"`
	ProviderID string             `gorm:"size:36;index;uniqueIndex:idx_submission_key,priority:2" json:"providerId"`
	InsightID  string             `gorm:"size:36;uniqueIndex:idx_submission_key,priority:3" json:"insightId"`
	Payload    AssessmentSnapshot `gorm:"type:text" json:"payload"`
	SentAt     time.Time          `json:"sentAt"`
}

// AssessmentSnapshot stores the full assessment copy as a JSON text column.
type AssessmentSnapshot struct {
	RiskAssessment
}

// Value implements driver.Valuer.
func (s AssessmentSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s.RiskAssessment)
}

// Scan implements sql.Scanner.
func (s *AssessmentSnapshot) Scan(src interface{}) error {
	return scanJSON(src, &s.RiskAssessment)
}
