package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	analyticsService "github.com/allisson/analytics-relay/internal/analytics/service"
	"github.com/allisson/analytics-relay/internal/attribution/domain"
	"github.com/allisson/analytics-relay/internal/config"
	"github.com/allisson/analytics-relay/internal/database"

	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

// attributionUseCase implements AttributionUseCase.
type attributionUseCase struct {
	config     *config.Config
	repository AttributionRepository
	txManager  database.TxManager
	logger     *slog.Logger
}

// NewAttributionUseCase creates the order attribution use case.
func NewAttributionUseCase(
	cfg *config.Config,
	repository AttributionRepository,
	txManager database.TxManager,
	logger *slog.Logger,
) AttributionUseCase {
	return &attributionUseCase{
		config:     cfg,
		repository: repository,
		txManager:  txManager,
		logger:     logger,
	}
}

// RecordFromCookie captures the visitor identity for a freshly placed order.
//
// The event is a no-op when tracking is disabled or no destination account is
// configured. Cookie problems never fail order intake: an absent or malformed
// cookie is skipped silently, and an unsupported cookie version is skipped
// with an info log.
func (u *attributionUseCase) RecordFromCookie(
	ctx context.Context,
	orderID string,
	cookieValue string,
) (*domain.OrderAttribution, error) {
	if orderID == "" {
		return nil, domain.ErrOrderIDRequired
	}

	if !u.config.GAEnabled {
		return nil, nil
	}

	if len(u.config.TrackingAccounts()) == 0 {
		u.logger.Info("no tracking account number found in configuration",
			slog.String("order_id", orderID),
		)
		return nil, nil
	}

	identity, err := analyticsService.ExtractVisitorIdentity(cookieValue)
	if err != nil {
		if apperrors.Is(err, analyticsDomain.ErrCookieVersionMismatch) {
			u.logger.Info("unsupported analytics cookie version, skipping",
				slog.String("order_id", orderID),
			)
			return nil, nil
		}
		return nil, err
	}
	if identity == nil {
		return nil, nil
	}

	attribution := &domain.OrderAttribution{
		ID:       uuid.Must(uuid.NewV7()),
		OrderID:  orderID,
		ClientID: identity.ClientID(),
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.repository.Create(ctx, attribution)
	})
	if err != nil {
		return nil, err
	}

	return attribution, nil
}

// ClientID resolves the stored identity for an order.
func (u *attributionUseCase) ClientID(ctx context.Context, orderID string) (string, error) {
	attribution, err := u.repository.GetByOrderID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return attribution.ClientID, nil
}
