package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/analytics-relay/internal/attribution/domain"
)

type mockAttributionUseCase struct {
	mock.Mock
}

func (m *mockAttributionUseCase) RecordFromCookie(ctx context.Context, orderID, cookieValue string) (*domain.OrderAttribution, error) {
	args := m.Called(ctx, orderID, cookieValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderAttribution), args.Error(1)
}

func (m *mockAttributionUseCase) ClientID(ctx context.Context, orderID string) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestMetricsDecorator_RecordFromCookie(t *testing.T) {
	t.Run("records success metrics", func(t *testing.T) {
		attribution := &domain.OrderAttribution{
			ID:       uuid.Must(uuid.NewV7()),
			OrderID:  "100000001",
			ClientID: "987654321.1609459200",
		}

		inner := &mockAttributionUseCase{}
		inner.On("RecordFromCookie", mock.Anything, "100000001", "GA1.2.987654321.1609459200").Return(attribution, nil)

		businessMetrics := &mockBusinessMetrics{}
		businessMetrics.On("RecordOperation", mock.Anything, "attribution", "record_identity", "success").Return()
		businessMetrics.On("RecordDuration", mock.Anything, "attribution", "record_identity", mock.Anything, "success").Return()

		decorated := NewMetricsDecorator(inner, businessMetrics)
		got, err := decorated.RecordFromCookie(context.Background(), "100000001", "GA1.2.987654321.1609459200")

		assert.NoError(t, err)
		assert.Equal(t, attribution, got)
		businessMetrics.AssertExpectations(t)
	})

	t.Run("records error metrics", func(t *testing.T) {
		inner := &mockAttributionUseCase{}
		inner.On("RecordFromCookie", mock.Anything, "", mock.Anything).Return(nil, domain.ErrOrderIDRequired)

		businessMetrics := &mockBusinessMetrics{}
		businessMetrics.On("RecordOperation", mock.Anything, "attribution", "record_identity", "error").Return()
		businessMetrics.On("RecordDuration", mock.Anything, "attribution", "record_identity", mock.Anything, "error").Return()

		decorated := NewMetricsDecorator(inner, businessMetrics)
		got, err := decorated.RecordFromCookie(context.Background(), "", "GA1.2.1.2")

		assert.Error(t, err)
		assert.Nil(t, got)
		businessMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_ClientID(t *testing.T) {
	inner := &mockAttributionUseCase{}
	inner.On("ClientID", mock.Anything, "100000001").Return("987654321.1609459200", nil)

	businessMetrics := &mockBusinessMetrics{}
	businessMetrics.On("RecordOperation", mock.Anything, "attribution", "resolve_identity", "success").Return()
	businessMetrics.On("RecordDuration", mock.Anything, "attribution", "resolve_identity", mock.Anything, "success").Return()

	decorated := NewMetricsDecorator(inner, businessMetrics)
	clientID, err := decorated.ClientID(context.Background(), "100000001")

	assert.NoError(t, err)
	assert.Equal(t, "987654321.1609459200", clientID)
	businessMetrics.AssertExpectations(t)
}
