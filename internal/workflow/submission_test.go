package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"health-ai-server/internal/models"
	"health-ai-server/internal/notify"
	"health-ai-server/internal/store"
)

// recordingNotifier captures enqueued alerts.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []notify.RiskAlert
}

func (n *recordingNotifier) Notify(alert notify.RiskAlert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

type submissionFixture struct {
	directory   *store.MemoryProviderDirectory
	submissions *store.MemorySubmissionStore
	notifier    *recordingNotifier
	service     *SubmissionService
}

func newSubmissionFixture() *submissionFixture {
	f := &submissionFixture{
		directory:   store.NewMemoryProviderDirectory(),
		submissions: store.NewMemorySubmissionStore(),
		notifier:    &recordingNotifier{},
	}
	f.directory.Seed([]models.Provider{
		{BaseModel: models.BaseModel{ID: "d1"}, Name: "Dr. Amina Ile", Email: "a@x.com"},
	})
	f.service = NewSubmissionService(f.directory, f.submissions, f.notifier, zap.NewNop())
	return f
}

func highRiskAssessment(id string) *models.RiskAssessment {
	return &models.RiskAssessment{
		BaseModel:        models.BaseModel{ID: id},
		UserID:           "p1",
		Timestamp:        time.Now().UTC(),
		SelectedSymptoms: models.StringList{"Chest pain", "Shortness of breath"},
		PotentialConditions: models.ConditionMatchList{
			{Condition: "Cardiac concern", Probability: 2.0 / 3.0, Urgency: models.UrgencyHigh},
		},
		OverallRiskLevel: models.RiskLevelHigh,
	}
}

func TestSend_Success(t *testing.T) {
	f := newSubmissionFixture()

	result, err := f.service.Send(context.Background(), "p1", "d1", highRiskAssessment("a1"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Submission)
	assert.Equal(t, "a1", result.Submission.InsightID)

	stored, err := f.submissions.Find(context.Background(), "p1", "d1", "a1")
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelHigh, stored.Payload.OverallRiskLevel)
	assert.Equal(t, []string{"Chest pain", "Shortness of breath"}, []string(stored.Payload.SelectedSymptoms))
}

func TestSend_UnknownProvider(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.service.Send(context.Background(), "p1", "ghost", highRiskAssessment("a1"))
	assert.ErrorIs(t, err, store.ErrUnknownProvider)
	assert.Equal(t, 0, f.submissions.Len())
	assert.Equal(t, 0, f.notifier.count())
}

func TestSend_DirectoryOutagePropagates(t *testing.T) {
	f := newSubmissionFixture()
	f.directory.FailFetches(true)

	_, err := f.service.Send(context.Background(), "p1", "d1", highRiskAssessment("a1"))
	assert.ErrorIs(t, err, store.ErrDirectoryUnavailable)
	assert.Equal(t, 0, f.submissions.Len())
}

func TestSend_StoreRejectionReturnsSuccessFalse(t *testing.T) {
	f := newSubmissionFixture()
	f.submissions.FailWrites(true)

	result, err := f.service.Send(context.Background(), "p1", "d1", highRiskAssessment("a1"))
	require.NoError(t, err, "a transient write failure is not an error to the caller")
	assert.False(t, result.Success)
	assert.Equal(t, 0, f.notifier.count(), "no alert for a failed delivery")

	// The failed attempt left no partial state; a retry starts clean.
	f.submissions.FailWrites(false)
	result, err = f.service.Send(context.Background(), "p1", "d1", highRiskAssessment("a1"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, f.submissions.Len())
}

func TestSend_RetryIsIdempotent(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()

	first, err := f.service.Send(ctx, "p1", "d1", highRiskAssessment("a1"))
	require.NoError(t, err)
	second, err := f.service.Send(ctx, "p1", "d1", highRiskAssessment("a1"))
	require.NoError(t, err)

	assert.Equal(t, 1, f.submissions.Len(), "retries collapse onto one record")

	stored, err := f.submissions.Find(ctx, "p1", "d1", "a1")
	require.NoError(t, err)
	assert.Equal(t, first.Submission.ID, stored.ID)
	assert.Equal(t, second.Submission.SentAt, stored.SentAt, "second sentAt is reflected")
	assert.False(t, stored.SentAt.Before(first.Submission.SentAt))
}

func TestSend_ElevatedRiskEnqueuesAlert(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.service.Send(context.Background(), "p1", "d1", highRiskAssessment("a1"))
	require.NoError(t, err)
	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, notify.AlertHigh, f.notifier.alerts[0].Level)
	assert.Equal(t, "p1", f.notifier.alerts[0].UserID)
}

func TestSend_LowRiskDoesNotAlert(t *testing.T) {
	f := newSubmissionFixture()

	low := highRiskAssessment("a2")
	low.OverallRiskLevel = models.RiskLevelLow

	result, err := f.service.Send(context.Background(), "p1", "d1", low)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, f.notifier.count())
}

func TestSend_NotificationFailureNeverSurfaces(t *testing.T) {
	f := newSubmissionFixture()

	// Wire a real dispatcher whose transport always fails; the failure must
	// stay inside the side channel.
	dispatcher := notify.NewDispatcher(failingTransport{}, 4, zap.NewNop())
	f.service = NewSubmissionService(f.directory, f.submissions, dispatcher, zap.NewNop())

	result, err := f.service.Send(context.Background(), "p1", "d1", highRiskAssessment("a1"))
	dispatcher.Close()

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, f.submissions.Len())
}

func TestSend_MissingSnapshotRejected(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.service.Send(context.Background(), "p1", "d1", nil)
	assert.ErrorIs(t, err, ErrMissingAssessment)

	_, err = f.service.Send(context.Background(), "p1", "d1", &models.RiskAssessment{})
	assert.ErrorIs(t, err, ErrMissingAssessment)
}

type failingTransport struct{}

func (failingTransport) Push(ctx context.Context, alert notify.RiskAlert) error {
	return errors.New("push gateway down")
}
