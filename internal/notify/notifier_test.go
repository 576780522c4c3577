package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"health-ai-server/internal/models"
)

type captureTransport struct {
	mu     sync.Mutex
	alerts []RiskAlert
	err    error
}

func (t *captureTransport) Push(ctx context.Context, alert RiskAlert) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.alerts = append(t.alerts, alert)
	return nil
}

func (t *captureTransport) delivered() []RiskAlert {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]RiskAlert(nil), t.alerts...)
}

func TestDispatcher_DeliversAlerts(t *testing.T) {
	transport := &captureTransport{}
	d := NewDispatcher(transport, 8, zap.NewNop())

	d.Notify(RiskAlert{UserID: "u1", Level: AlertHigh})
	d.Notify(RiskAlert{UserID: "u2", Level: AlertMedium})
	d.Close()

	got := transport.delivered()
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].UserID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestDispatcher_TransportFailureIsSwallowed(t *testing.T) {
	transport := &captureTransport{err: errors.New("gateway down")}
	d := NewDispatcher(transport, 8, zap.NewNop())

	// Notify never returns an error and never blocks; the failure dies in
	// the worker.
	d.Notify(RiskAlert{UserID: "u1", Level: AlertHigh})
	d.Close()
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	d := NewDispatcher(blockingTransport{release: block}, 1, zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			d.Notify(RiskAlert{UserID: "u1", Level: AlertLow})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(block)
	d.Close()
}

type blockingTransport struct {
	release chan struct{}
}

func (t blockingTransport) Push(ctx context.Context, alert RiskAlert) error {
	select {
	case <-t.release:
	case <-ctx.Done():
	}
	return nil
}

func TestAlertLevelFor(t *testing.T) {
	assert.Equal(t, AlertHigh, AlertLevelFor(models.RiskLevelCritical))
	assert.Equal(t, AlertHigh, AlertLevelFor(models.RiskLevelHigh))
	assert.Equal(t, AlertMedium, AlertLevelFor(models.RiskLevelMedium))
	assert.Equal(t, AlertLow, AlertLevelFor(models.RiskLevelLow))
}

func TestRedisTransport_PublishesAlert(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "risk-alerts")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	transport := NewRedisTransport(client, "risk-alerts")
	require.NoError(t, transport.Push(ctx, RiskAlert{
		UserID:    "u1",
		Level:     AlertHigh,
		InsightID: "a1",
		CreatedAt: time.Now().UTC(),
	}))

	msg, err := sub.ReceiveTimeout(ctx, 2*time.Second)
	require.NoError(t, err)
	payload, ok := msg.(*redis.Message)
	require.True(t, ok)

	var alert RiskAlert
	require.NoError(t, json.Unmarshal([]byte(payload.Payload), &alert))
	assert.Equal(t, "u1", alert.UserID)
	assert.Equal(t, AlertHigh, alert.Level)
	assert.Equal(t, "a1", alert.InsightID)
}
