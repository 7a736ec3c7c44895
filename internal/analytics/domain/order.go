package domain

import (
	"github.com/shopspring/decimal"
)

// Order is the commerce platform's view of a placed order, as delivered on
// the lifecycle callbacks. The relay never owns commerce data.
type Order struct {
	// ID is the order's public increment id, reported as the transaction id.
	ID string
	// StoreName is the store's display name, reported as the affiliation.
	StoreName string
	// RemoteIP is the customer's IP address at checkout.
	RemoteIP string
	// CouponCode is the applied cart coupon, empty when none.
	CouponCode string
}

// Invoice is the captured invoice for an order.
type Invoice struct {
	// GrandTotal is the invoice total in the base currency.
	GrandTotal decimal.Decimal
	// TaxAmount is the invoiced tax.
	TaxAmount decimal.Decimal
	// ShippingAmount is the tax-exclusive shipping cost, nil when absent.
	ShippingAmount *decimal.Decimal
	// ShippingInclTax is the tax-inclusive shipping cost, nil when absent.
	ShippingInclTax *decimal.Decimal
	// Items holds every invoice line, including deleted lines and bundle
	// children; payload building filters those out.
	Items []InvoiceItem
}

// InvoiceItem is a single invoice line.
type InvoiceItem struct {
	SKU  string
	Name string
	// PriceExclTax is the tax-exclusive unit price the customer paid.
	PriceExclTax decimal.Decimal
	// PriceInclTax is the tax-inclusive unit price the customer paid.
	PriceInclTax decimal.Decimal
	// Quantity is the ordered quantity, fractional for weight-based products.
	Quantity decimal.Decimal
	// Position is the line's position on the invoice.
	Position int
	// Deleted marks lines removed from the invoice.
	Deleted bool
	// ParentItemID is set when this line is a child of a bundled or
	// configurable parent line; children are represented by their parent.
	ParentItemID string
}

// Reportable reports whether the line should appear on the transaction
// report. Deleted lines and bundle children are excluded to prevent
// double-counting.
func (i InvoiceItem) Reportable() bool {
	return !i.Deleted && i.ParentItemID == ""
}
