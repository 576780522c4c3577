package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"health-ai-server/internal/models"
)

// NewMemoryStores returns in-memory stores. They back unit tests and the
// offline deployment mode where no database is reachable; semantics match
// the GORM implementation, including the submission upsert key.
func NewMemoryStores() *Stores {
	return &Stores{
		History:     NewMemoryHistoryStore(),
		Directory:   NewMemoryProviderDirectory(),
		Submissions: NewMemorySubmissionStore(),
		Feedback:    NewMemoryFeedbackStore(),
	}
}

// MemoryHistoryStore keeps per-user assessment history in call order.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	byUser  map[string][]models.RiskAssessment
	failing bool
}

// NewMemoryHistoryStore creates an empty history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{byUser: make(map[string][]models.RiskAssessment)}
}

// FailWrites makes every subsequent Append fail with ErrStoreWrite.
// Test hook for the workflow's {success:false} path.
func (s *MemoryHistoryStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = fail
}

func (s *MemoryHistoryStore) Append(ctx context.Context, assessment *models.RiskAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrStoreWrite
	}
	if assessment.ID == "" {
		assessment.ID = uuid.New().String()
	}
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = time.Now().UTC()
	}
	s.byUser[assessment.UserID] = append(s.byUser[assessment.UserID], *assessment)
	return nil
}

func (s *MemoryHistoryStore) List(ctx context.Context, userID string, limit int) ([]models.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.byUser[userID]
	out := make([]models.RiskAssessment, 0, len(entries))
	// History is stored in append order; newest-first is the reverse.
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		entry := entries[i]
		entry.Disclaimer = models.Disclaimer
		out = append(out, entry)
	}
	return out, nil
}

func (s *MemoryHistoryStore) Get(ctx context.Context, userID, id string) (*models.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.byUser[userID] {
		if entry.ID == id {
			entry.Disclaimer = models.Disclaimer
			return &entry, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryProviderDirectory is a seedable in-memory provider list.
type MemoryProviderDirectory struct {
	mu        sync.RWMutex
	providers []models.Provider
	failing   bool
}

// NewMemoryProviderDirectory creates an empty directory.
func NewMemoryProviderDirectory() *MemoryProviderDirectory {
	return &MemoryProviderDirectory{}
}

// Seed replaces the directory contents. Stands in for the external
// provider-management feed.
func (s *MemoryProviderDirectory) Seed(providers []models.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append([]models.Provider(nil), providers...)
}

// FailFetches makes every subsequent read fail with ErrDirectoryUnavailable.
func (s *MemoryProviderDirectory) FailFetches(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = fail
}

func (s *MemoryProviderDirectory) ListAll(ctx context.Context) ([]models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, ErrDirectoryUnavailable
	}
	return append([]models.Provider(nil), s.providers...), nil
}

func (s *MemoryProviderDirectory) Get(ctx context.Context, id string) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, ErrDirectoryUnavailable
	}
	for _, p := range s.providers {
		if p.ID == id {
			provider := p
			return &provider, nil
		}
	}
	return nil, ErrUnknownProvider
}

type submissionKey struct {
	patientID  string
	providerID string
	insightID  string
}

// MemorySubmissionStore keys submissions on (patient, provider, insight).
type MemorySubmissionStore struct {
	mu      sync.RWMutex
	byKey   map[submissionKey]models.Submission
	failing bool
}

// NewMemorySubmissionStore creates an empty submission store.
func NewMemorySubmissionStore() *MemorySubmissionStore {
	return &MemorySubmissionStore{byKey: make(map[submissionKey]models.Submission)}
}

// FailWrites makes every subsequent Upsert fail with ErrStoreWrite.
func (s *MemorySubmissionStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = fail
}

func (s *MemorySubmissionStore) Upsert(ctx context.Context, submission *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrStoreWrite
	}
	key := submissionKey{submission.PatientID, submission.ProviderID, submission.InsightID}
	if existing, ok := s.byKey[key]; ok {
		// Last writer wins on payload and sentAt; identity is stable.
		submission.ID = existing.ID
		submission.CreatedAt = existing.CreatedAt
	}
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	submission.UpdatedAt = time.Now().UTC()
	s.byKey[key] = *submission
	return nil
}

func (s *MemorySubmissionStore) ListForProvider(ctx context.Context, providerID string, limit int) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Submission
	for _, sub := range s.byKey {
		if sub.ProviderID == providerID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemorySubmissionStore) Find(ctx context.Context, patientID, providerID, insightID string) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.byKey[submissionKey{patientID, providerID, insightID}]; ok {
		return &sub, nil
	}
	return nil, ErrNotFound
}

// Len reports the number of stored submissions.
func (s *MemorySubmissionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// MemoryFeedbackStore retains every feedback entry in arrival order.
type MemoryFeedbackStore struct {
	mu      sync.RWMutex
	entries []models.Feedback
}

// NewMemoryFeedbackStore creates an empty feedback store.
func NewMemoryFeedbackStore() *MemoryFeedbackStore {
	return &MemoryFeedbackStore{}
}

func (s *MemoryFeedbackStore) Save(ctx context.Context, feedback *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	s.entries = append(s.entries, *feedback)
	return nil
}

func (s *MemoryFeedbackStore) ListForPatient(ctx context.Context, patientID string) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Feedback
	for _, f := range s.entries {
		if f.PatientID == patientID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
