// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

var (
	// trackingIDRegex matches Measurement Protocol property identifiers such
	// as UA-12345-1.
	trackingIDRegex = regexp.MustCompile(`^UA-\d+-\d+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// TrackingID validates the destination account identifier format
var TrackingID = validation.NewStringRuleWithError(
	func(s string) bool {
		return trackingIDRegex.MatchString(s)
	},
	validation.NewError("validation_tracking_id_format", "must be a valid tracking account identifier"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
