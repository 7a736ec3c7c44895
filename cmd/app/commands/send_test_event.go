package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	analyticsUseCase "github.com/allisson/analytics-relay/internal/analytics/usecase"
	"github.com/allisson/analytics-relay/internal/app"
	"github.com/allisson/analytics-relay/internal/config"
	appvalidation "github.com/allisson/analytics-relay/internal/validation"
)

// TestEventInput holds the synthetic purchase parameters for send-test-event.
type TestEventInput struct {
	OrderID  string
	SKU      string
	Name     string
	Price    string
	Quantity int
	ClientID string
}

// RunSendTestEvent dispatches a synthetic one-item purchase to the configured
// destination accounts. Useful for verifying configuration end to end.
func RunSendTestEvent(ctx context.Context, input TestEventInput) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	outcomes, err := sendTestEvent(ctx, cfg, container, input)
	if err != nil {
		return err
	}

	if len(outcomes) == 0 {
		logger.Info("no purchase event dispatched - check GA_ENABLED and GA_TRACKING_IDS")
		return nil
	}

	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			logger.Info("test purchase event delivered",
				slog.String("tracking_id", outcome.TrackingID),
			)
		} else {
			logger.Error("test purchase event failed",
				slog.String("tracking_id", outcome.TrackingID),
				slog.Any("error", outcome.Err),
			)
		}
	}

	return nil
}

// sendTestEvent builds a synthetic order and invoice and dispatches them.
func sendTestEvent(
	ctx context.Context,
	cfg *config.Config,
	container *app.Container,
	input TestEventInput,
) ([]analyticsDomain.DeliveryOutcome, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	// The command exists to verify configuration, so account identifiers are
	// checked strictly before any hit is attempted.
	for _, account := range cfg.TrackingAccounts() {
		if err := appvalidation.TrackingID.Validate(account); err != nil {
			return nil, fmt.Errorf("tracking account %q: %w", account, appvalidation.WrapValidationError(err))
		}
	}

	quantity := decimal.NewFromInt(int64(input.Quantity))
	total := price.Mul(quantity)

	orderID := input.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("test-%d", time.Now().Unix())
	}

	clientID := input.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("555.%d", time.Now().Unix())
	}

	order := analyticsDomain.Order{
		ID:        orderID,
		StoreName: cfg.StoreName,
	}

	invoice := analyticsDomain.Invoice{
		GrandTotal: total,
		TaxAmount:  decimal.Zero,
		Items: []analyticsDomain.InvoiceItem{
			{
				SKU:          input.SKU,
				Name:         input.Name,
				PriceExclTax: price,
				PriceInclTax: price,
				Quantity:     quantity,
				Position:     1,
			},
		},
	}

	builder := analyticsUseCase.NewPayloadBuilder()
	mode := analyticsDomain.ParseTaxDisplayMode(cfg.TaxDisplayMode)
	report, items := builder.Build(order, invoice, mode)

	outcomes := container.Dispatcher().Dispatch(
		ctx,
		report,
		items,
		clientID,
		"",
		cfg.TrackingAccounts(),
	)

	return outcomes, nil
}
