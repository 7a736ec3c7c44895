// Package domain defines the order attribution entity: the visitor identity
// captured at order placement and kept for later purchase reporting.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/analytics-relay/internal/errors"
)

// OrderAttribution links an order to the visitor identity extracted from the
// analytics cookie at placement time. The identity is immutable once stored.
type OrderAttribution struct {
	ID        uuid.UUID
	OrderID   string
	ClientID  string
	CreatedAt time.Time
}

// Domain-specific errors for attribution operations.
var (
	// ErrAttributionNotFound indicates no identity was recorded for the order.
	ErrAttributionNotFound = errors.Wrap(errors.ErrNotFound, "order attribution not found")

	// ErrOrderIDRequired indicates the order id field is required.
	ErrOrderIDRequired = errors.Wrap(errors.ErrInvalidInput, "order id is required")
)
