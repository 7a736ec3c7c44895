package usecase

import (
	"context"
	"log/slog"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	"github.com/allisson/analytics-relay/internal/config"
	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

// purchaseUseCase implements PurchaseUseCase for the payment-captured
// lifecycle event.
type purchaseUseCase struct {
	config       *config.Config
	builder      *PayloadBuilder
	dispatcher   *Dispatcher
	attributions AttributionLookup
	logger       *slog.Logger
}

// NewPurchaseUseCase creates the purchase event use case.
func NewPurchaseUseCase(
	cfg *config.Config,
	builder *PayloadBuilder,
	dispatcher *Dispatcher,
	attributions AttributionLookup,
	logger *slog.Logger,
) PurchaseUseCase {
	return &purchaseUseCase{
		config:       cfg,
		builder:      builder,
		dispatcher:   dispatcher,
		attributions: attributions,
		logger:       logger,
	}
}

// HandlePaymentCaptured assembles the transaction report for the captured
// invoice and dispatches it to every configured destination account.
//
// The event is a silent no-op when tracking is disabled, when no destination
// account is configured, or when the order carries no stored visitor
// identity. Per-destination failures are captured in the outcomes; nothing
// here may abort invoice finalization.
func (u *purchaseUseCase) HandlePaymentCaptured(
	ctx context.Context,
	input PurchaseEventInput,
) ([]analyticsDomain.DeliveryOutcome, error) {
	if !u.config.GAEnabled {
		return nil, nil
	}

	accounts := u.config.TrackingAccounts()
	if len(accounts) == 0 {
		u.logger.Info("no tracking account number found in configuration",
			slog.String("transaction_id", input.Order.ID),
		)
		return nil, nil
	}

	clientID := input.ClientID
	if clientID == "" {
		stored, err := u.attributions.ClientID(ctx, input.Order.ID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				// Order was placed without a visitor identity; nothing to
				// attribute the purchase to.
				return nil, nil
			}
			return nil, err
		}
		clientID = stored
	}

	mode := analyticsDomain.ParseTaxDisplayMode(u.config.TaxDisplayMode)
	report, items := u.builder.Build(input.Order, input.Invoice, mode)

	outcomes := u.dispatcher.Dispatch(
		ctx,
		report,
		items,
		clientID,
		input.Order.RemoteIP,
		accounts,
	)

	return outcomes, nil
}
