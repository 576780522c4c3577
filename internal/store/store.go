// Package store defines the persistence boundary for assessments,
// submissions, feedback and the provider directory, with a GORM-backed
// implementation for MySQL deployments and an in-memory implementation for
// offline mode and tests.
package store

import (
	"context"
	"errors"

	"health-ai-server/internal/models"
)

var (
	// ErrNotFound signals a lookup miss within the caller's own records.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownProvider signals a provider id that does not resolve in the
	// directory. This is a caller error, not a transient condition.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrDirectoryUnavailable signals a transient failure fetching the
	// provider directory. Distinct from an empty directory, which is a
	// successful empty list. Retryable.
	ErrDirectoryUnavailable = errors.New("provider directory unavailable")

	// ErrStoreWrite signals a transient write failure. The submission
	// workflow maps it to {success:false} so the UI can prompt a retry;
	// the failed attempt leaves no partial state.
	ErrStoreWrite = errors.New("store write failed")
)

// HistoryStore is the append-only assessment history. Entries are immutable
// once appended; List never crosses user boundaries.
type HistoryStore interface {
	// Append atomically persists a new assessment.
	Append(ctx context.Context, assessment *models.RiskAssessment) error

	// List returns the user's assessments newest-first, capped at limit.
	List(ctx context.Context, userID string, limit int) ([]models.RiskAssessment, error)

	// Get returns the user's assessment by id, or ErrNotFound. The userID
	// is part of the lookup key: another user's id never resolves.
	Get(ctx context.Context, userID, id string) (*models.RiskAssessment, error)
}

// ProviderDirectory is read-only reference data for patient-initiated search.
type ProviderDirectory interface {
	// ListAll returns the registered providers. A fetch failure surfaces
	// ErrDirectoryUnavailable; no providers registered is an empty list.
	ListAll(ctx context.Context) ([]models.Provider, error)

	// Get resolves a provider id, or ErrUnknownProvider.
	Get(ctx context.Context, id string) (*models.Provider, error)
}

// SubmissionStore persists provider-inbox copies of assessments.
type SubmissionStore interface {
	// Upsert writes the submission keyed by (patientID, providerID,
	// insightID). A second write with the same key updates payload and
	// sentAt in place rather than creating a duplicate row.
	Upsert(ctx context.Context, submission *models.Submission) error

	// ListForProvider returns a provider's inbox newest-first, capped at limit.
	ListForProvider(ctx context.Context, providerID string, limit int) ([]models.Submission, error)

	// Find returns the submission for the exact key, or ErrNotFound.
	Find(ctx context.Context, patientID, providerID, insightID string) (*models.Submission, error)
}

// FeedbackStore persists provider feedback entries. No uniqueness: every
// entry is retained.
type FeedbackStore interface {
	Save(ctx context.Context, feedback *models.Feedback) error

	// ListForPatient returns the patient's feedback newest-first.
	ListForPatient(ctx context.Context, patientID string) ([]models.Feedback, error)
}
