package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionReport is the normalized purchase summary sent to every
// configured destination account. It is built once per invoice event and is
// never persisted.
type TransactionReport struct {
	// TransactionID is the order's public increment id.
	TransactionID string
	// Affiliation is the store's display name.
	Affiliation string
	// Revenue is the invoice's grand total in the base currency.
	Revenue decimal.Decimal
	// Tax is the invoice's tax amount.
	Tax decimal.Decimal
	// Shipping is the invoice's shipping amount, resolved under the
	// configured tax display mode.
	Shipping decimal.Decimal
	// CouponCode is optional and omitted from the hit when empty.
	CouponCode string
}

// LineItem is one invoiced product on the transaction report. Deleted invoice
// items and children of bundled items are never represented as line items.
type LineItem struct {
	SKU      string
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Position int
}

// TrackingData carries the per-destination identity fields for one outbound
// hit. It is mutable so pre-send hooks can enrich it in place.
type TrackingData struct {
	// TrackingID is the destination account identifier.
	TrackingID string
	// ClientID is the visitor identity in canonical form.
	ClientID string
	// UserID is an optional authenticated user identifier. At least one of
	// ClientID or UserID must be present.
	UserID string
	// IPOverride reports the customer's IP address instead of the relay's.
	IPOverride string
	// UserAgentOverride is optional and applied only when present.
	UserAgentOverride string
	// DocumentPath is the virtual page path reported with the hit.
	DocumentPath string
}

// DeliveryOutcome is the per-destination result of a dispatch run. Outcomes
// are used for logging only and are never surfaced to order processing.
type DeliveryOutcome struct {
	// TrackingID identifies the destination account the hit targeted.
	TrackingID string
	// Err holds the captured failure, nil on success.
	Err error
	// RequestURL is the constructed collect request, available for
	// diagnostic logging when the send went out.
	RequestURL string
}

// Succeeded reports whether the hit was delivered to the destination.
func (o DeliveryOutcome) Succeeded() bool {
	return o.Err == nil
}
