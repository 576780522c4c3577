package models

// Rating bounds for provider feedback. Out-of-range input is clamped at the
// boundary, never rejected.
const (
	RatingMin = 1
	RatingMax = 5
)

// Feedback is a provider's free-text reply to a patient, optionally linked
// to the submission that prompted it. A provider may leave any number of
// entries against the same submission; all are retained.
type Feedback struct {
	BaseModel
	ProviderID string `gorm:"size:36;index" json:"providerId"`
	PatientID  string `gorm:"size:36;index" json:"patientId"`
	InsightID  string `gorm:"size:36" json:"insightId,omitempty"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Rating     *int   `json:"rating,omitempty"`
}

// ClampRating forces a rating into [RatingMin, RatingMax].
func ClampRating(rating int) int {
	if rating < RatingMin {
		return RatingMin
	}
	if rating > RatingMax {
		return RatingMax
	}
	return rating
}
