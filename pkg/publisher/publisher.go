// Package publisher hands submitted listings to whoever consumes them.
// Delivery is best effort: callers log and count failures but never fail
// the submission because of them.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"go.uber.org/zap"
)

// Message is one submitted listing. Payload is encoded as JSON.
type Message struct {
	ID      string
	Payload any
}

// Publisher delivers messages to a downstream sink
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close()
}

// LogPublisher writes a line per listing and delivers nothing. It stands in
// when no broker is configured.
type LogPublisher struct {
	subject string
}

var _ Publisher = (*LogPublisher)(nil)

// NewLogPublisher creates a publisher that only logs
func NewLogPublisher(subject string) *LogPublisher {
	return &LogPublisher{subject: subject}
}

// Publish logs the listing ID and encoded size
func (p *LogPublisher) Publish(_ context.Context, msg Message) error {
	start := time.Now()

	data, err := json.Marshal(msg.Payload)
	if err != nil {
		err = fmt.Errorf("failed to encode listing: %w", err)
	}
	record(err)
	logger.LogPublish("log", p.subject, metrics.Status(err), metrics.MeasureDuration(start),
		zap.String("listing_id", msg.ID),
		zap.Int("bytes", len(data)),
		zap.Error(err))
	return err
}

// Close is a no-op
func (p *LogPublisher) Close() {}

func record(err error) {
	metrics.ListingsPublished.WithLabelValues(metrics.Status(err)).Inc()
}
