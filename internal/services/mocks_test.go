package services_test

import (
	"context"
	"time"

	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/pkg/publisher"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of publisher.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, msg publisher.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}

// fixedClock never fires its timers
type fixedClock struct {
	now time.Time
}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) AfterFunc(time.Duration, func()) adform.Timer { return idleTimer{} }
