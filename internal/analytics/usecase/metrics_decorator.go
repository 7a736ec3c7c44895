package usecase

import (
	"context"
	"time"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	"github.com/allisson/analytics-relay/internal/metrics"
)

// metricsDecorator wraps PurchaseUseCase with business metrics recording.
type metricsDecorator struct {
	useCase PurchaseUseCase
	metrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps a PurchaseUseCase with metrics instrumentation.
// Records operation counts and durations for each purchase dispatch, plus a
// per-destination delivery counter.
func NewMetricsDecorator(useCase PurchaseUseCase, businessMetrics metrics.BusinessMetrics) PurchaseUseCase {
	return &metricsDecorator{
		useCase: useCase,
		metrics: businessMetrics,
	}
}

// HandlePaymentCaptured delegates to the wrapped use case and records metrics.
func (d *metricsDecorator) HandlePaymentCaptured(
	ctx context.Context,
	input PurchaseEventInput,
) ([]analyticsDomain.DeliveryOutcome, error) {
	start := time.Now()

	outcomes, err := d.useCase.HandlePaymentCaptured(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "analytics", "purchase_dispatch", status)
	d.metrics.RecordDuration(ctx, "analytics", "purchase_dispatch", time.Since(start), status)

	for _, outcome := range outcomes {
		deliveryStatus := "success"
		if !outcome.Succeeded() {
			deliveryStatus = "error"
		}
		d.metrics.RecordOperation(ctx, "analytics", "delivery", deliveryStatus)
	}

	return outcomes, err
}
