// Package workflow implements the human care-routing flows on top of the
// stores: a patient sending an assessment to a provider, and a provider
// returning feedback to the patient.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"health-ai-server/internal/models"
	"health-ai-server/internal/notify"
	"health-ai-server/internal/store"
)

// ErrMissingAssessment is returned when Send is called without a snapshot.
var ErrMissingAssessment = errors.New("assessment snapshot is required")

// RiskNotifier is the slice of the notification side channel the workflow
// needs: enqueue and forget.
type RiskNotifier interface {
	Notify(alert notify.RiskAlert)
}

// SendResult reports the outcome of a delivery attempt. Success false with
// a nil error means the store rejected the write; the caller may retry the
// identical call safely (the upsert key makes retries idempotent).
type SendResult struct {
	Success    bool               `json:"success"`
	Submission *models.Submission `json:"submission,omitempty"`
}

// SubmissionService copies assessments into provider inboxes.
type SubmissionService struct {
	directory   store.ProviderDirectory
	submissions store.SubmissionStore
	notifier    RiskNotifier
	logger      *zap.Logger
}

// NewSubmissionService wires the delivery workflow.
func NewSubmissionService(
	directory store.ProviderDirectory,
	submissions store.SubmissionStore,
	notifier RiskNotifier,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		directory:   directory,
		submissions: submissions,
		notifier:    notifier,
		logger:      logger,
	}
}

// Send validates the provider, upserts the submission keyed by
// (patientID, providerID, assessment ID), and on success enqueues a
// best-effort risk alert for the patient.
//
// Error semantics follow the delivery contract: an unresolvable provider is
// an error; a transient store failure is SendResult{Success: false} with a
// nil error so the UI can prompt a retry; notification failures are never
// visible here at all.
func (s *SubmissionService) Send(ctx context.Context, patientID, providerID string, snapshot *models.RiskAssessment) (SendResult, error) {
	if snapshot == nil || snapshot.ID == "" {
		return SendResult{}, ErrMissingAssessment
	}

	provider, err := s.directory.Get(ctx, providerID)
	if err != nil {
		if errors.Is(err, store.ErrUnknownProvider) {
			return SendResult{}, fmt.Errorf("%w: %s", store.ErrUnknownProvider, providerID)
		}
		// Directory outage: retryable, nothing was written.
		return SendResult{}, err
	}

	submission := &models.Submission{
		PatientID:  patientID,
		ProviderID: provider.ID,
		InsightID:  snapshot.ID,
		Payload:    models.AssessmentSnapshot{RiskAssessment: *snapshot},
		SentAt:     time.Now().UTC(),
	}

	if err := s.submissions.Upsert(ctx, submission); err != nil {
		s.logger.Warn("submission write rejected",
			zap.String("patient_id", patientID),
			zap.String("provider_id", providerID),
			zap.String("insight_id", snapshot.ID),
			zap.Error(err),
		)
		return SendResult{Success: false}, nil
	}

	// Delivery to the provider is the transaction of record; the patient
	// alert rides the side channel and may be lost without consequence.
	if snapshot.OverallRiskLevel != models.RiskLevelLow {
		s.notifier.Notify(notify.RiskAlert{
			UserID:    patientID,
			Level:     notify.AlertLevelFor(snapshot.OverallRiskLevel),
			InsightID: snapshot.ID,
		})
	}

	return SendResult{Success: true, Submission: submission}, nil
}

// Inbox lists a provider's received submissions newest-first.
func (s *SubmissionService) Inbox(ctx context.Context, providerID string, limit int) ([]models.Submission, error) {
	return s.submissions.ListForProvider(ctx, providerID, limit)
}
