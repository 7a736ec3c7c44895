// Package usecase implements business logic for order attribution: capturing
// the visitor identity at order placement and resolving it at purchase time.
package usecase

import (
	"context"

	"github.com/allisson/analytics-relay/internal/attribution/domain"
)

// AttributionRepository defines the persistence contract for order attributions.
type AttributionRepository interface {
	// Create stores the attribution. The first identity recorded for an order
	// wins; later inserts for the same order are silently ignored.
	Create(ctx context.Context, attribution *domain.OrderAttribution) error

	// GetByOrderID returns the attribution for the order, or
	// ErrAttributionNotFound.
	GetByOrderID(ctx context.Context, orderID string) (*domain.OrderAttribution, error)
}

// AttributionUseCase handles the order-placed lifecycle event.
type AttributionUseCase interface {
	// RecordFromCookie extracts the visitor identity from the analytics cookie
	// and persists it against the order. A missing or malformed cookie is a
	// silent no-op; a version-mismatched cookie is skipped with an info log.
	// Returns the stored attribution, or nil when nothing was recorded.
	RecordFromCookie(ctx context.Context, orderID, cookieValue string) (*domain.OrderAttribution, error)

	// ClientID returns the canonical identity string stored for the order, or
	// ErrNotFound when none was recorded.
	ClientID(ctx context.Context, orderID string) (string, error)
}
