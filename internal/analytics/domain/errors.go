package domain

import (
	"github.com/allisson/analytics-relay/internal/errors"
)

// Tracking-specific error definitions. The first four abort a single
// destination's send attempt only; transport failures are captured at the
// same boundary. Nothing here is ever fatal to order processing.
var (
	// ErrMissingTrackingID indicates no destination account identifier was set.
	ErrMissingTrackingID = errors.Wrap(errors.ErrInvalidInput, "no tracking id set")

	// ErrMissingClientIdentity indicates neither a client id nor a user id was
	// set; at least one is necessary.
	ErrMissingClientIdentity = errors.Wrap(errors.ErrInvalidInput, "no client id or user id set")

	// ErrNoProductsAdded indicates the purchase hit carries no line items.
	ErrNoProductsAdded = errors.Wrap(errors.ErrInvalidInput, "no products added to transaction")

	// ErrConfigurationIncomplete indicates tracking is disabled or no
	// destination accounts are configured; treated as a silent no-op.
	ErrConfigurationIncomplete = errors.Wrap(errors.ErrInvalidInput, "tracking configuration incomplete")

	// ErrCookieVersionMismatch indicates the analytics cookie version differs
	// from the Measurement Protocol version; logged as informational.
	ErrCookieVersionMismatch = errors.Wrap(errors.ErrInvalidInput, "analytics cookie version mismatch")

	// ErrTransportFailure indicates the collect request could not be delivered.
	ErrTransportFailure = errors.Wrap(errors.ErrUnavailable, "collect request failed")
)
