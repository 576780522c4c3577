package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"health-ai-server/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock, gdb
}

func TestGormDirectory_ListAllMapsOutageToDirectoryUnavailable(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	dir := &gormProviderDirectory{db: gdb}
	_, err := dir.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestGormDirectory_ListAllReturnsProviders(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "email"}).
		AddRow("p1", now, now, "Dr. Amina Ile", "a@x.com")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	dir := &gormProviderDirectory{db: gdb}
	providers, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "Dr. Amina Ile", providers[0].Name)
}

func TestGormDirectory_GetUnknownProvider(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "email"}))

	dir := &gormProviderDirectory{db: gdb}
	_, err := dir.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestGormHistory_AppendMapsFailureToStoreWrite(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := &gormHistoryStore{db: gdb, logger: zap.NewNop()}
	err := s.Append(context.Background(), &models.RiskAssessment{
		BaseModel:        models.BaseModel{ID: "a1"},
		UserID:           "u1",
		Timestamp:        time.Now(),
		SelectedSymptoms: models.StringList{"Fever"},
		OverallRiskLevel: models.RiskLevelLow,
	})
	assert.ErrorIs(t, err, ErrStoreWrite)
}

func TestGormSubmissions_UpsertMapsFailureToStoreWrite(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	s := &gormSubmissionStore{db: gdb, logger: zap.NewNop()}
	err := s.Upsert(context.Background(), &models.Submission{
		PatientID:  "p1",
		ProviderID: "d1",
		InsightID:  "a1",
		SentAt:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrStoreWrite)
}
