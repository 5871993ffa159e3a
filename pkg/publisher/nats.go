package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/postad/postad-api/pkg/circuitbreaker"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"github.com/postad/postad-api/pkg/retry"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const defaultFlushTimeout = 2 * time.Second

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	PublishMsg(m *nats.Msg) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// headerCarrier adapts nats.Msg headers to an OTel TextMapCarrier
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// NATSPublisher publishes listings as JSON on a subject. Each message carries
// the listing ID as Nats-Msg-Id and the caller's trace context.
type NATSPublisher struct {
	conn         Conn
	subject      string
	breaker      *gobreaker.CircuitBreaker
	retry        retry.Config
	flushTimeout time.Duration
}

var _ Publisher = (*NATSPublisher)(nil)

// Connect dials NATS and keeps reconnecting in the background
func Connect(url, clientName string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

// NewNATSPublisher creates a publisher on an established connection
func NewNATSPublisher(conn Conn, subject string) *NATSPublisher {
	cfg := retry.PublisherConfig()
	cfg.Retryable = func(err error) bool { return !circuitbreaker.IsOpen(err) }

	return &NATSPublisher{
		conn:         conn,
		subject:      subject,
		breaker:      circuitbreaker.New(circuitbreaker.DefaultConfig("nats-publisher")),
		retry:        cfg,
		flushTimeout: defaultFlushTimeout,
	}
}

// Publish sends msg and waits for the server to acknowledge the flush
func (p *NATSPublisher) Publish(ctx context.Context, msg Message) error {
	start := time.Now()

	data, err := json.Marshal(msg.Payload)
	if err != nil {
		err = fmt.Errorf("failed to encode listing: %w", err)
	} else {
		err = retry.Do(ctx, p.retry, "nats.publish", func() error {
			_, execErr := circuitbreaker.Execute(p.breaker, func() (struct{}, error) {
				return struct{}{}, p.send(ctx, msg.ID, data)
			})
			return execErr
		})
	}

	duration := metrics.MeasureDuration(start)
	status := metrics.Status(err)
	record(err)
	metrics.PublishDuration.WithLabelValues(status).Observe(duration)
	logger.LogPublish("nats", p.subject, status, duration,
		zap.String("listing_id", msg.ID),
		zap.Int("bytes", len(data)),
		zap.Error(err))

	return err
}

func (p *NATSPublisher) send(ctx context.Context, id string, data []byte) error {
	m := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header:  nats.Header{},
	}
	m.Header.Set(nats.MsgIdHdr, id)
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(m))

	if err := p.conn.PublishMsg(m); err != nil {
		return err
	}
	return p.conn.FlushTimeout(p.flushTimeout)
}

// Close closes the underlying connection
func (p *NATSPublisher) Close() {
	p.conn.Close()
}
