// Package notify implements the best-effort risk-alert side channel.
//
// Alerts are advisory by contract: the dispatcher accepts them without
// blocking, a single worker pushes them through the configured transport,
// and any transport failure is logged and discarded. Nothing here can fail
// or delay the submission workflow that enqueues the alert.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"health-ai-server/internal/models"
)

// AlertLevel is the coarse severity carried to the push transport.
type AlertLevel string

const (
	AlertLow    AlertLevel = "low"
	AlertMedium AlertLevel = "medium"
	AlertHigh   AlertLevel = "high"
)

// AlertLevelFor collapses an assessment risk tier onto the three-level
// alert scale the transport understands. Critical escalates to high.
func AlertLevelFor(level models.RiskLevel) AlertLevel {
	switch level {
	case models.RiskLevelCritical, models.RiskLevelHigh:
		return AlertHigh
	case models.RiskLevelMedium:
		return AlertMedium
	default:
		return AlertLow
	}
}

// RiskAlert is one patient-facing alert.
type RiskAlert struct {
	UserID    string     `json:"userId"`
	Level     AlertLevel `json:"level"`
	InsightID string     `json:"insightId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Transport delivers an alert to the external push mechanism.
type Transport interface {
	Push(ctx context.Context, alert RiskAlert) error
}

// pushTimeout bounds a single transport attempt so a stuck transport
// cannot wedge the worker.
const pushTimeout = 5 * time.Second

// Dispatcher owns the alert queue and its single worker goroutine.
type Dispatcher struct {
	ch        chan RiskAlert
	transport Transport
	logger    *zap.Logger
	done      chan struct{}
}

// NewDispatcher starts a dispatcher over the given transport. The buffer
// absorbs bursts; when it is full new alerts are dropped, which is within
// the advisory contract.
func NewDispatcher(transport Transport, buffer int, logger *zap.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		ch:        make(chan RiskAlert, buffer),
		transport: transport,
		logger:    logger,
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Notify enqueues an alert without ever blocking the caller. A full queue
// drops the alert with a log line; the caller is not told and must not care.
func (d *Dispatcher) Notify(alert RiskAlert) {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	select {
	case d.ch <- alert:
	default:
		d.logger.Warn("alert queue full, dropping risk alert",
			zap.String("user_id", alert.UserID),
			zap.String("level", string(alert.Level)),
		)
	}
}

// Close stops accepting alerts and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	close(d.ch)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for alert := range d.ch {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		err := d.transport.Push(ctx, alert)
		cancel()
		if err != nil {
			// Swallowed on purpose: a lost alert never rolls back the
			// submission it was raised for.
			d.logger.Warn("risk alert delivery failed",
				zap.String("user_id", alert.UserID),
				zap.String("level", string(alert.Level)),
				zap.Error(err),
			)
		}
	}
}

// LogTransport records alerts in the service log. Default transport when no
// push backend is configured, and the visible trace of the side channel in
// offline mode.
type LogTransport struct {
	Logger *zap.Logger
}

// Push implements Transport.
func (t *LogTransport) Push(ctx context.Context, alert RiskAlert) error {
	t.Logger.Info("risk alert",
		zap.String("user_id", alert.UserID),
		zap.String("level", string(alert.Level)),
		zap.String("insight_id", alert.InsightID),
	)
	return nil
}

// RedisTransport publishes alerts to a Redis channel the external push
// gateway subscribes to.
type RedisTransport struct {
	client  *redis.Client
	channel string
}

// NewRedisTransport creates a transport publishing to the given channel.
func NewRedisTransport(client *redis.Client, channel string) *RedisTransport {
	return &RedisTransport{client: client, channel: channel}
}

// Push implements Transport.
func (t *RedisTransport) Push(ctx context.Context, alert RiskAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return t.client.Publish(ctx, t.channel, payload).Err()
}
