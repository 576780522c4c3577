package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"health-ai-server/internal/models"
)

// Stores bundles one implementation of every persistence interface.
type Stores struct {
	History     HistoryStore
	Directory   ProviderDirectory
	Submissions SubmissionStore
	Feedback    FeedbackStore
}

// NewGormStores returns MySQL-backed stores over a migrated *gorm.DB.
func NewGormStores(db *gorm.DB, logger *zap.Logger) *Stores {
	return &Stores{
		History:     &gormHistoryStore{db: db, logger: logger},
		Directory:   &gormProviderDirectory{db: db},
		Submissions: &gormSubmissionStore{db: db, logger: logger},
		Feedback:    &gormFeedbackStore{db: db},
	}
}

// SeedProviders upserts the given providers into the directory table.
// Provider lifecycle is managed externally; this is the ingest point for
// the externally supplied list.
func SeedProviders(db *gorm.DB, providers []models.Provider) error {
	for i := range providers {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&providers[i]).Error; err != nil {
			return fmt.Errorf("seeding provider %q: %w", providers[i].Name, err)
		}
	}
	return nil
}

type gormHistoryStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *gormHistoryStore) Append(ctx context.Context, assessment *models.RiskAssessment) error {
	if err := s.db.WithContext(ctx).Create(assessment).Error; err != nil {
		s.logger.Error("failed to append assessment",
			zap.String("user_id", assessment.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *gormHistoryStore) List(ctx context.Context, userID string, limit int) ([]models.RiskAssessment, error) {
	var assessments []models.RiskAssessment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	for i := range assessments {
		assessments[i].Disclaimer = models.Disclaimer
	}
	return assessments, nil
}

func (s *gormHistoryStore) Get(ctx context.Context, userID, id string) (*models.RiskAssessment, error) {
	var assessment models.RiskAssessment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	assessment.Disclaimer = models.Disclaimer
	return &assessment, nil
}

type gormProviderDirectory struct {
	db *gorm.DB
}

func (s *gormProviderDirectory) ListAll(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := s.db.WithContext(ctx).Order("name asc").Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return providers, nil
}

func (s *gormProviderDirectory) Get(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.WithContext(ctx).First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownProvider
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return &provider, nil
}

type gormSubmissionStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *gormSubmissionStore) Upsert(ctx context.Context, submission *models.Submission) error {
	// Single statement keyed on the unique (patient, provider, insight)
	// index: retried sends update payload and sent_at in place.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "patient_id"},
			{Name: "provider_id"},
			{Name: "insight_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "sent_at", "updated_at"}),
	}).Create(submission).Error
	if err != nil {
		s.logger.Error("failed to upsert submission",
			zap.String("patient_id", submission.PatientID),
			zap.String("provider_id", submission.ProviderID),
			zap.String("insight_id", submission.InsightID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *gormSubmissionStore) ListForProvider(ctx context.Context, providerID string, limit int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("sent_at desc").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (s *gormSubmissionStore) Find(ctx context.Context, patientID, providerID, insightID string) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.WithContext(ctx).
		Where("patient_id = ? AND provider_id = ? AND insight_id = ?", patientID, providerID, insightID).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

type gormFeedbackStore struct {
	db *gorm.DB
}

func (s *gormFeedbackStore) Save(ctx context.Context, feedback *models.Feedback) error {
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *gormFeedbackStore) ListForPatient(ctx context.Context, patientID string) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
