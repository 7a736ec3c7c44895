// Package dto provides data transfer objects for the event webhook endpoints.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	appvalidation "github.com/allisson/analytics-relay/internal/validation"
)

// OrderPlacedRequest carries the order-placed lifecycle event: the order
// identifier and the raw analytics cookie value captured at checkout. The
// cookie is optional; orders placed without one are simply not attributed.
type OrderPlacedRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	GACookie string `json:"ga_cookie"`
}

// Validate checks if the order placed request is valid.
func (r *OrderPlacedRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OrderID, validation.Required, appvalidation.NotBlank, appvalidation.NoWhitespace),
	)
}

// OrderPayload carries the order fields needed to build a transaction report.
type OrderPayload struct {
	OrderID    string `json:"order_id" binding:"required"`
	StoreName  string `json:"store_name"`
	RemoteIP   string `json:"remote_ip"`
	CouponCode string `json:"coupon_code"`
	// ClientID optionally carries the visitor identity inline; when empty the
	// identity stored at order placement is used.
	ClientID string `json:"client_id"`
}

// InvoiceItemPayload carries one invoiced line.
type InvoiceItemPayload struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	PriceExclTax decimal.Decimal `json:"price_excl_tax"`
	PriceInclTax decimal.Decimal `json:"price_incl_tax"`
	Quantity     decimal.Decimal `json:"quantity"`
	Position     int             `json:"position"`
	Deleted      bool            `json:"deleted"`
	ParentItemID string          `json:"parent_item_id"`
}

// InvoicePayload carries the captured invoice totals and lines.
type InvoicePayload struct {
	GrandTotal      decimal.Decimal      `json:"grand_total"`
	TaxAmount       decimal.Decimal      `json:"tax_amount"`
	ShippingAmount  *decimal.Decimal     `json:"shipping_amount"`
	ShippingInclTax *decimal.Decimal     `json:"shipping_incl_tax"`
	Items           []InvoiceItemPayload `json:"items"`
}

// PaymentCapturedRequest carries the payment-captured lifecycle event: the
// order and the invoice that was just captured.
type PaymentCapturedRequest struct {
	Order   OrderPayload   `json:"order"`
	Invoice InvoicePayload `json:"invoice"`
}

// Validate checks if the payment captured request is valid.
func (r *PaymentCapturedRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Order, validation.Required),
	)
}

// Validate checks if the order payload is valid.
func (p OrderPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OrderID, validation.Required, appvalidation.NotBlank, appvalidation.NoWhitespace),
		validation.Field(&p.ClientID, appvalidation.NoWhitespace),
	)
}
