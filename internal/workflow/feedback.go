package workflow

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"health-ai-server/internal/models"
	"health-ai-server/internal/store"
)

// ErrEmptyFeedback is returned when a feedback entry carries no text.
var ErrEmptyFeedback = errors.New("feedback text is required")

// FeedbackInput is what a provider submits. InsightID is optional: feedback
// may be given ad hoc without referencing a submission, in which case it is
// stored unlinked. Rating, when present, is clamped into range rather than
// rejected.
type FeedbackInput struct {
	ProviderID string
	PatientID  string
	InsightID  string
	Text       string
	Rating     *int
}

// FeedbackService records provider feedback for patients.
type FeedbackService struct {
	feedback store.FeedbackStore
	logger   *zap.Logger
}

// NewFeedbackService wires the feedback loop.
func NewFeedbackService(feedback store.FeedbackStore, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{feedback: feedback, logger: logger}
}

// Save clamps the rating and persists the entry. Clamping happens before
// any validation could reject the value, so numeric ratings never fail.
func (s *FeedbackService) Save(ctx context.Context, input FeedbackInput) (*models.Feedback, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyFeedback
	}

	entry := &models.Feedback{
		ProviderID: input.ProviderID,
		PatientID:  input.PatientID,
		InsightID:  input.InsightID,
		Text:       input.Text,
	}
	if input.Rating != nil {
		clamped := models.ClampRating(*input.Rating)
		if clamped != *input.Rating {
			s.logger.Debug("clamped out-of-range feedback rating",
				zap.Int("given", *input.Rating),
				zap.Int("stored", clamped),
			)
		}
		entry.Rating = &clamped
	}

	if err := s.feedback.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ForPatient lists feedback addressed to the patient, newest-first.
// Entries without an insight link are returned as-is; rendering them
// generically is the presentation layer's concern.
func (s *FeedbackService) ForPatient(ctx context.Context, patientID string) ([]models.Feedback, error) {
	return s.feedback.ListForPatient(ctx, patientID)
}
