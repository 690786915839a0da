// Package validation provides the request validation rules shared by the HTTP DTOs.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/sundacoder/ZedID/internal/errors"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// Names and namespaces end up as SPIFFE path segments.
	segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._\-]*[a-zA-Z0-9])?$`)
)

// WrapValidationError wraps validation errors as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace rejects leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank rejects strings that are empty after trimming.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PathSegment accepts values usable as one segment of a SPIFFE path:
// letters, digits, '.', '_' and '-', starting and ending alphanumeric.
var PathSegment = validation.NewStringRuleWithError(
	func(s string) bool {
		return segmentRegex.MatchString(s)
	},
	validation.NewError("validation_path_segment", "must contain only letters, digits, '.', '_' or '-'"),
)

// SpiffeURI accepts spiffe://<trust-domain>/<path>.
var SpiffeURI = validation.NewStringRuleWithError(
	func(s string) bool {
		rest, ok := strings.CutPrefix(s, "spiffe://")
		if !ok {
			return false
		}
		td, path, ok := strings.Cut(rest, "/")
		return ok && td != "" && path != ""
	},
	validation.NewError("validation_spiffe_uri", "must be a spiffe://<trust-domain>/<path> URI"),
)

// OneOf is validation.In for string-backed enums.
func OneOf[T ~string](values ...T) validation.Rule {
	allowed := make([]any, len(values))
	for i, v := range values {
		allowed[i] = v
	}
	return validation.In(allowed...).Error("must be one of the supported values")
}
