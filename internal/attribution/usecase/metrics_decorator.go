package usecase

import (
	"context"
	"time"

	"github.com/allisson/analytics-relay/internal/attribution/domain"
	"github.com/allisson/analytics-relay/internal/metrics"
)

// metricsDecorator wraps AttributionUseCase with business metrics recording.
type metricsDecorator struct {
	useCase AttributionUseCase
	metrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps an AttributionUseCase with metrics instrumentation.
func NewMetricsDecorator(useCase AttributionUseCase, businessMetrics metrics.BusinessMetrics) AttributionUseCase {
	return &metricsDecorator{
		useCase: useCase,
		metrics: businessMetrics,
	}
}

// RecordFromCookie delegates to the wrapped use case and records metrics.
func (d *metricsDecorator) RecordFromCookie(
	ctx context.Context,
	orderID string,
	cookieValue string,
) (*domain.OrderAttribution, error) {
	start := time.Now()

	attribution, err := d.useCase.RecordFromCookie(ctx, orderID, cookieValue)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "attribution", "record_identity", status)
	d.metrics.RecordDuration(ctx, "attribution", "record_identity", time.Since(start), status)

	return attribution, err
}

// ClientID delegates to the wrapped use case and records metrics.
func (d *metricsDecorator) ClientID(ctx context.Context, orderID string) (string, error) {
	start := time.Now()

	clientID, err := d.useCase.ClientID(ctx, orderID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "attribution", "resolve_identity", status)
	d.metrics.RecordDuration(ctx, "attribution", "resolve_identity", time.Since(start), status)

	return clientID, err
}
