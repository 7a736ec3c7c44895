// Package usecase implements business logic orchestration for purchase
// tracking: payload assembly from invoices and fan-out delivery to the
// configured destination accounts.
package usecase

import (
	"context"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

// LineItemHook is a synchronous extension point fired once per line item
// during payload assembly, before the item is finalized. The hook may mutate
// the line item in place.
type LineItemHook func(item *analyticsDomain.LineItem, source analyticsDomain.InvoiceItem)

// TrackingDataHook is a synchronous extension point fired once per
// destination before send. The hook may mutate the tracking payload in place.
type TrackingDataHook func(data *analyticsDomain.TrackingData)

// PurchaseEventInput carries the order and invoice delivered on the
// payment-captured lifecycle callback. ClientID optionally carries the
// visitor identity inline; when empty the stored attribution is used.
type PurchaseEventInput struct {
	Order    analyticsDomain.Order
	Invoice  analyticsDomain.Invoice
	ClientID string
}

// PurchaseUseCase handles the payment-captured lifecycle event.
type PurchaseUseCase interface {
	// HandlePaymentCaptured assembles the transaction report and dispatches
	// it to every configured destination account. Analytics-layer failures
	// are captured in the returned outcomes and never abort order
	// processing; the error return covers input mapping only.
	HandlePaymentCaptured(
		ctx context.Context,
		input PurchaseEventInput,
	) ([]analyticsDomain.DeliveryOutcome, error)
}

// AttributionLookup resolves the visitor identity stored for an order.
type AttributionLookup interface {
	// ClientID returns the canonical identity string for the order, or
	// ErrNotFound when no attribution was recorded.
	ClientID(ctx context.Context, orderID string) (string, error)
}
