// Package domain defines the core domain models and types for server-side
// purchase tracking: visitor identities extracted from the first-party
// analytics cookie, transaction reports assembled from invoices, and the
// per-destination delivery results.
package domain

// VisitorIdentity is the stable per-visitor identifier extracted from the
// client-side analytics cookie. It is computed once per order at order-save
// time and never recomputed afterward.
type VisitorIdentity struct {
	// UserID is the random visitor component of the cookie.
	UserID string
	// Timestamp is the first-visit timestamp component of the cookie.
	Timestamp string
}

// ClientID returns the canonical identity string sent as the Measurement
// Protocol client id.
func (v VisitorIdentity) ClientID() string {
	return v.UserID + "." + v.Timestamp
}
