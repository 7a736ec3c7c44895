package usecase

import (
	"github.com/shopspring/decimal"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

// PayloadBuilder assembles a transaction report and its line items from an
// order and a captured invoice. Building is pure and in-memory; the result
// exists only for the duration of the dispatch call.
type PayloadBuilder struct {
	itemHooks []LineItemHook
}

// NewPayloadBuilder creates a payload builder with optional line item hooks.
func NewPayloadBuilder(itemHooks ...LineItemHook) *PayloadBuilder {
	return &PayloadBuilder{itemHooks: itemHooks}
}

// Build produces the transaction report and line items for one invoice.
//
// Deleted invoice items and children of bundled items are excluded to prevent
// double-counting. Unit prices and the shipping amount resolve under the same
// tax display mode; one build never mixes tax-inclusive and tax-exclusive
// values. A missing shipping amount defaults to zero.
func (b *PayloadBuilder) Build(
	order analyticsDomain.Order,
	invoice analyticsDomain.Invoice,
	mode analyticsDomain.TaxDisplayMode,
) (analyticsDomain.TransactionReport, []analyticsDomain.LineItem) {
	items := make([]analyticsDomain.LineItem, 0, len(invoice.Items))

	for _, invoiceItem := range invoice.Items {
		if !invoiceItem.Reportable() {
			continue
		}

		item := analyticsDomain.LineItem{
			SKU:      invoiceItem.SKU,
			Name:     invoiceItem.Name,
			Price:    paidProductPrice(invoiceItem, mode),
			Quantity: invoiceItem.Quantity,
			Position: invoiceItem.Position,
		}

		for _, hook := range b.itemHooks {
			hook(&item, invoiceItem)
		}

		items = append(items, item)
	}

	report := analyticsDomain.TransactionReport{
		TransactionID: order.ID,
		Affiliation:   order.StoreName,
		Revenue:       invoice.GrandTotal,
		Tax:           invoice.TaxAmount,
		Shipping:      paidShippingCosts(invoice, mode),
		CouponCode:    order.CouponCode,
	}

	return report, items
}

// paidProductPrice resolves the unit price the customer also saw in the cart.
func paidProductPrice(
	item analyticsDomain.InvoiceItem,
	mode analyticsDomain.TaxDisplayMode,
) decimal.Decimal {
	if mode == analyticsDomain.TaxDisplayExcluding {
		return item.PriceExclTax
	}
	return item.PriceInclTax
}

// paidShippingCosts resolves the shipping amount under the tax display mode,
// defaulting to zero when the resolved value is absent.
func paidShippingCosts(
	invoice analyticsDomain.Invoice,
	mode analyticsDomain.TaxDisplayMode,
) decimal.Decimal {
	resolved := invoice.ShippingInclTax
	if mode == analyticsDomain.TaxDisplayExcluding {
		resolved = invoice.ShippingAmount
	}

	if resolved == nil {
		return decimal.Zero
	}
	return *resolved
}
