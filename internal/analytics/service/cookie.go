package service

import (
	"strings"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

// ProtocolVersion is the Measurement Protocol API version.
const ProtocolVersion = "1"

// cookieVersionPrefix prefixes the version segment of the first-party
// analytics cookie (e.g. "GA1" for protocol version 1).
const cookieVersionPrefix = "GA"

// ExtractVisitorIdentity parses a first-party analytics cookie value of the
// form "GA<version>.<domainHash>.<userId>.<timestamp>" into a visitor
// identity.
//
// Extraction fails softly with a nil identity and nil error when the cookie
// is absent, has fewer than four dot-separated segments, or has an empty
// userId or timestamp segment. A version segment that does not match the
// supported protocol version returns ErrCookieVersionMismatch so callers can
// log it as informational.
func ExtractVisitorIdentity(cookieValue string) (*analyticsDomain.VisitorIdentity, error) {
	if cookieValue == "" {
		return nil, nil
	}

	segments := strings.Split(cookieValue, ".")
	if len(segments) < 4 {
		return nil, nil
	}

	version := segments[0]
	userID := segments[2]
	timestamp := segments[3]

	if userID == "" || timestamp == "" {
		return nil, nil
	}

	if version != cookieVersionPrefix+ProtocolVersion {
		return nil, analyticsDomain.ErrCookieVersionMismatch
	}

	return &analyticsDomain.VisitorIdentity{
		UserID:    userID,
		Timestamp: timestamp,
	}, nil
}
