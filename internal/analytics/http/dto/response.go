package dto

import (
	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	attributionDomain "github.com/allisson/analytics-relay/internal/attribution/domain"
)

// OrderPlacedResponse reports whether a visitor identity was recorded for the
// order.
type OrderPlacedResponse struct {
	Recorded bool   `json:"recorded"`
	ClientID string `json:"client_id,omitempty"`
}

// MapAttributionToResponse maps the stored attribution to the webhook
// response. A nil attribution means nothing was recorded.
func MapAttributionToResponse(attribution *attributionDomain.OrderAttribution) OrderPlacedResponse {
	if attribution == nil {
		return OrderPlacedResponse{Recorded: false}
	}
	return OrderPlacedResponse{
		Recorded: true,
		ClientID: attribution.ClientID,
	}
}

// DeliveryResult reports one destination account's delivery attempt.
type DeliveryResult struct {
	TrackingID string `json:"tracking_id"`
	Delivered  bool   `json:"delivered"`
	Error      string `json:"error,omitempty"`
}

// PaymentCapturedResponse reports the per-destination delivery results.
type PaymentCapturedResponse struct {
	Deliveries []DeliveryResult `json:"deliveries"`
}

// MapOutcomesToResponse maps dispatch outcomes to the webhook response.
func MapOutcomesToResponse(outcomes []analyticsDomain.DeliveryOutcome) PaymentCapturedResponse {
	deliveries := make([]DeliveryResult, 0, len(outcomes))
	for _, outcome := range outcomes {
		result := DeliveryResult{
			TrackingID: outcome.TrackingID,
			Delivered:  outcome.Succeeded(),
		}
		if outcome.Err != nil {
			result.Error = outcome.Err.Error()
		}
		deliveries = append(deliveries, result)
	}
	return PaymentCapturedResponse{Deliveries: deliveries}
}
