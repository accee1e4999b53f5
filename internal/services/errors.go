package services

import (
	"errors"

	apperrors "github.com/AptiPro-2025/exam-session-service/internal/errors"
	"github.com/AptiPro-2025/exam-session-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Session specific errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrTestNotAvailable = errors.New("test is not yet available")
	ErrNoQuestionsFound = errors.New("no questions available for this test")

	// Viewer/precondition errors
	ErrViewerNotFound = errors.New("viewer profile not found")
	ErrEmailRequired  = errors.New("viewer email is required")

	// Aggregate errors
	ErrNoRecentResults = errors.New("no recent results to summarize")
)

// Engine errors re-exported so callers can classify without importing the
// session package directly.
var (
	ErrSessionAlreadySubmitted = session.ErrSessionAlreadySubmitted
	ErrSessionClosed           = session.ErrSessionClosed
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrViewerNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsPrecondition checks if error represents a missing-precondition state:
// the viewer must be guided elsewhere, no collaborator call was attempted.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrViewerNotFound) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrTestNotAvailable)
}

// IsConflict checks if error represents a state conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionAlreadySubmitted) ||
		errors.Is(err, ErrSessionClosed)
}
