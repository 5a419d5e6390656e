package core

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/learnhub/learnhub/db"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the email shape: one @, no whitespace, a dot in the
// domain. Full RFC 5322 parsing accepts addresses no mail provider issues.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}

// ValidateRole accepts the known roles; the empty string means the caller
// wants the default.
func ValidateRole(role string) error {
	switch role {
	case "", db.RoleStudent, db.RoleEducator:
		return nil
	}
	return fmt.Errorf("invalid role: %q", role)
}

// ValidateLevel accepts the known course levels; empty means default.
func ValidateLevel(level string) error {
	switch level {
	case "", db.LevelBeginner, db.LevelIntermediate, db.LevelAdvanced:
		return nil
	}
	return fmt.Errorf("invalid level: %q", level)
}

// Validator defines an interface for request validation operations
type Validator interface {
	// ContentType checks if the request's Content-Type matches the allowed type
	ContentType(r *http.Request, allowedType string) (jsonResponse, error)
}

// DefaultValidator implements the Validator interface
type DefaultValidator struct{}

// NewValidator creates a new DefaultValidator instance
func NewValidator() Validator {
	return &DefaultValidator{}
}

// ContentType checks if the request's Content-Type matches the allowed type.
// Returns the precomputed error response together with an error; the error
// message stays generic on purpose.
// Uses http.StatusUnsupportedMediaType (415) for invalid content types as per HTTP spec.
func (v *DefaultValidator) ContentType(r *http.Request, allowedType string) (jsonResponse, error) {
	errInvalidType := errors.New("invalid content type")
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return errorInvalidContentType, errInvalidType
	}

	// Handle cases where Content-Type includes charset or other parameters
	// e.g. "application/json; charset=utf-8"
	mediaType := strings.Split(contentType, ";")[0]
	mediaType = strings.TrimSpace(mediaType)

	if mediaType != allowedType {
		return errorInvalidContentType, errInvalidType
	}

	return jsonResponse{}, nil
}
