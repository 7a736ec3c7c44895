// Package http provides HTTP handlers for the commerce lifecycle webhook
// endpoints. Analytics work must never fail order processing: handler
// responses signal acceptance even when recording or delivery fails, and only
// malformed requests are rejected.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/analytics-relay/internal/analytics/http/dto"
	analyticsUseCase "github.com/allisson/analytics-relay/internal/analytics/usecase"
	attributionUseCase "github.com/allisson/analytics-relay/internal/attribution/usecase"
	"github.com/allisson/analytics-relay/internal/httputil"
	customValidation "github.com/allisson/analytics-relay/internal/validation"
)

// EventHandler handles the order lifecycle webhook endpoints.
type EventHandler struct {
	attributions attributionUseCase.AttributionUseCase
	purchases    analyticsUseCase.PurchaseUseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler with required dependencies.
func NewEventHandler(
	attributions attributionUseCase.AttributionUseCase,
	purchases analyticsUseCase.PurchaseUseCase,
	logger *slog.Logger,
) *EventHandler {
	return &EventHandler{
		attributions: attributions,
		purchases:    purchases,
		logger:       logger,
	}
}

// OrderPlacedHandler records the visitor identity for a freshly placed order.
// POST /v1/events/order-placed
// Returns 202 Accepted; recording failures are logged, never surfaced as 5xx.
func (h *EventHandler) OrderPlacedHandler(c *gin.Context) {
	var req dto.OrderPlacedRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	attribution, err := h.attributions.RecordFromCookie(c.Request.Context(), req.OrderID, req.GACookie)
	if err != nil {
		h.logger.Error("failed to record order attribution",
			slog.String("order_id", req.OrderID),
			slog.Any("error", err),
		)
		c.JSON(http.StatusAccepted, dto.OrderPlacedResponse{Recorded: false})
		return
	}

	c.JSON(http.StatusAccepted, dto.MapAttributionToResponse(attribution))
}

// PaymentCapturedHandler dispatches the purchase event for a captured invoice.
// POST /v1/events/payment-captured
// Returns 202 Accepted with per-destination results; delivery failures are
// captured in the body, never surfaced as 5xx.
func (h *EventHandler) PaymentCapturedHandler(c *gin.Context) {
	var req dto.PaymentCapturedRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	if err := req.Order.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := analyticsUseCase.PurchaseEventInput{
		Order:    dto.MapOrderToDomain(req.Order),
		Invoice:  dto.MapInvoiceToDomain(req.Invoice),
		ClientID: req.Order.ClientID,
	}

	outcomes, err := h.purchases.HandlePaymentCaptured(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to dispatch purchase event",
			slog.String("order_id", req.Order.OrderID),
			slog.Any("error", err),
		)
		c.JSON(http.StatusAccepted, dto.PaymentCapturedResponse{Deliveries: []dto.DeliveryResult{}})
		return
	}

	c.JSON(http.StatusAccepted, dto.MapOutcomesToResponse(outcomes))
}
