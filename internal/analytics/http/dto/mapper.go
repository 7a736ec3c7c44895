package dto

import (
	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

// MapOrderToDomain maps the order payload to the domain order.
func MapOrderToDomain(p OrderPayload) analyticsDomain.Order {
	return analyticsDomain.Order{
		ID:         p.OrderID,
		StoreName:  p.StoreName,
		RemoteIP:   p.RemoteIP,
		CouponCode: p.CouponCode,
	}
}

// MapInvoiceToDomain maps the invoice payload to the domain invoice.
func MapInvoiceToDomain(p InvoicePayload) analyticsDomain.Invoice {
	items := make([]analyticsDomain.InvoiceItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, analyticsDomain.InvoiceItem{
			SKU:          item.SKU,
			Name:         item.Name,
			PriceExclTax: item.PriceExclTax,
			PriceInclTax: item.PriceInclTax,
			Quantity:     item.Quantity,
			Position:     item.Position,
			Deleted:      item.Deleted,
			ParentItemID: item.ParentItemID,
		})
	}

	return analyticsDomain.Invoice{
		GrandTotal:      p.GrandTotal,
		TaxAmount:       p.TaxAmount,
		ShippingAmount:  p.ShippingAmount,
		ShippingInclTax: p.ShippingInclTax,
		Items:           items,
	}
}
