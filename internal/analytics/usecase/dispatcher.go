package usecase

import (
	"context"
	"log/slog"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	analyticsService "github.com/allisson/analytics-relay/internal/analytics/service"
)

// DispatcherConfig holds the dispatch behavior settings.
type DispatcherConfig struct {
	// Enabled gates the whole dispatch; disabled is a silent no-op.
	Enabled bool
	// DebugMode logs the collector's debug payload after each send.
	DebugMode bool
	// RequestLogging logs the raw collect request URL after each send.
	RequestLogging bool
	// DocumentPath is reported as the hit's document path.
	DocumentPath string
}

// Dispatcher sends one purchase hit per configured destination account,
// isolating failures per destination: a failed send is captured as an
// outcome and logged, and iteration continues with the remaining accounts.
type Dispatcher struct {
	config    DispatcherConfig
	newClient analyticsService.MeasurementClientFactory
	hooks     []TrackingDataHook
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher with optional pre-send tracking hooks.
func NewDispatcher(
	config DispatcherConfig,
	newClient analyticsService.MeasurementClientFactory,
	logger *slog.Logger,
	hooks ...TrackingDataHook,
) *Dispatcher {
	return &Dispatcher{
		config:    config,
		newClient: newClient,
		hooks:     hooks,
		logger:    logger,
	}
}

// Dispatch delivers the report to every destination account, strictly
// sequentially and in configured order.
//
// The whole dispatch short-circuits with no outcomes and no network calls
// when tracking is disabled, no destination accounts are configured, or no
// visitor identity is present; none of these are errors. Per-destination
// failures never propagate: each is captured as a DeliveryOutcome, logged
// with the transaction id, and the loop continues.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	report analyticsDomain.TransactionReport,
	items []analyticsDomain.LineItem,
	clientID string,
	ipAddress string,
	accounts []string,
) []analyticsDomain.DeliveryOutcome {
	if !d.config.Enabled {
		d.logger.Info("tracking disabled, skipping purchase event",
			slog.String("transaction_id", report.TransactionID),
		)
		return nil
	}

	if len(accounts) == 0 {
		d.logger.Info("no tracking accounts configured, skipping purchase event",
			slog.String("transaction_id", report.TransactionID),
		)
		return nil
	}

	if clientID == "" {
		d.logger.Info("no visitor identity on order, skipping purchase event",
			slog.String("transaction_id", report.TransactionID),
		)
		return nil
	}

	outcomes := make([]analyticsDomain.DeliveryOutcome, 0, len(accounts))
	for _, account := range accounts {
		outcome := d.send(ctx, account, report, items, clientID, ipAddress)

		if outcome.Err != nil {
			d.logger.Info("purchase event delivery failed",
				slog.String("transaction_id", report.TransactionID),
				slog.String("tracking_id", account),
				slog.Any("error", outcome.Err),
			)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// send delivers one purchase hit to a single destination account. A fresh
// measurement client is used per destination so identity and line items
// never leak across destinations within one dispatch run.
func (d *Dispatcher) send(
	ctx context.Context,
	account string,
	report analyticsDomain.TransactionReport,
	items []analyticsDomain.LineItem,
	clientID string,
	ipAddress string,
) analyticsDomain.DeliveryOutcome {
	outcome := analyticsDomain.DeliveryOutcome{TrackingID: account}

	if len(items) == 0 {
		outcome.Err = analyticsDomain.ErrNoProductsAdded
		return outcome
	}

	client := d.newClient()
	client.SetTransactionData(report)
	client.AddProducts(items)

	trackingData := analyticsDomain.TrackingData{
		TrackingID:   account,
		ClientID:     clientID,
		IPOverride:   ipAddress,
		DocumentPath: d.config.DocumentPath,
	}

	for _, hook := range d.hooks {
		hook(&trackingData)
	}

	if err := client.SetTrackingData(trackingData); err != nil {
		outcome.Err = err
		return outcome
	}

	resp, err := client.SendPurchase(ctx)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.RequestURL = resp.RequestURL

	if d.config.DebugMode {
		d.logger.Info("purchase event debug response",
			slog.String("transaction_id", report.TransactionID),
			slog.String("tracking_id", account),
			slog.String("debug_response", resp.DebugPayload),
		)
	}

	if d.config.RequestLogging {
		d.logger.Info("purchase event request",
			slog.String("transaction_id", report.TransactionID),
			slog.String("tracking_id", account),
			slog.String("request_url", resp.RequestURL),
		)
	}

	return outcome
}
