// Package service implements the analytics cookie parsing and the
// Measurement Protocol transport used to deliver purchase hits.
package service

import (
	"context"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

// CollectResponse exposes the collector's reply for optional diagnostic
// logging. The response is never validated beyond this.
type CollectResponse struct {
	// StatusCode is the HTTP status returned by the collector.
	StatusCode int
	// RequestURL is the constructed collect request in URL form.
	RequestURL string
	// DebugPayload is the raw response body; the validation endpoint returns
	// hit diagnostics here.
	DebugPayload string
}

// MeasurementClient wraps the Measurement Protocol send for one destination
// account. Implementations are mutable and stateful: a fresh instance must be
// used per destination to avoid leaking identity or line items across
// destinations within one dispatch run.
type MeasurementClient interface {
	// SetTrackingData configures the destination account and visitor
	// identity. Optional fields are applied only when present; absent fields
	// keep their previous value.
	SetTrackingData(data analyticsDomain.TrackingData) error

	// SetTransactionData configures the transaction summary fields. The
	// coupon code is set only when present.
	SetTransactionData(report analyticsDomain.TransactionReport)

	// AddProducts appends line items to the pending hit. Each call appends,
	// never replaces.
	AddProducts(items []analyticsDomain.LineItem)

	// SendPurchase validates the accumulated state and performs the network
	// send. The returned response carries the debug payload and request URL.
	SendPurchase(ctx context.Context) (*CollectResponse, error)
}

// MeasurementClientFactory produces a fresh MeasurementClient per destination
// account.
type MeasurementClientFactory func() MeasurementClient
