package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	livenessService "github.com/tastevin-app/tastevin/internal/services/liveness"
	sessionService "github.com/tastevin-app/tastevin/internal/services/session"
	tastingService "github.com/tastevin-app/tastevin/internal/services/tasting"
)

// statusFor maps service errors onto HTTP statuses: validation 400, permission
// 403, not-found 404, conflict 409. Anything unrecognized is treated as a
// transient store failure and reported as 503.
func statusFor(err error) int {
	switch {
	case isValidation(err):
		return http.StatusBadRequest
	case isPermission(err):
		return http.StatusForbidden
	case isNotFound(err):
		return http.StatusNotFound
	case isConflict(err):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

func isValidation(err error) bool {
	for _, target := range []error{
		sessionService.ErrInvalidInput,
		sessionService.ErrInvalidApproach,
		sessionService.ErrInvalidRole,
		sessionService.ErrMissingInitialItems,
		sessionService.ErrUnexpectedInitialItems,
		tastingService.ErrInvalidInput,
		tastingService.ErrInvalidAction,
		tastingService.ErrSuggestionsDisabled,
		livenessService.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isPermission(err error) bool {
	for _, target := range []error{
		sessionService.ErrNotModerator,
		tastingService.ErrNotParticipant,
		tastingService.ErrNotModerator,
		tastingService.ErrCannotSuggest,
		livenessService.ErrNotHost,
		livenessService.ErrNotParticipant,
		livenessService.ErrForcedCompletionDenied,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	for _, target := range []error{
		sessionService.ErrSessionNotFound,
		sessionService.ErrParticipantNotFound,
		tastingService.ErrSessionNotFound,
		tastingService.ErrSuggestionNotFound,
		livenessService.ErrSessionNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, target := range []error{
		sessionService.ErrHostAlreadyAssigned,
		sessionService.ErrInvalidSessionState,
		tastingService.ErrInvalidSessionState,
		tastingService.ErrAlreadyModerated,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// fail writes a service error as a JSON error response
func fail(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusServiceUnavailable {
		msg = "temporarily unavailable"
	}
	return c.JSON(status, map[string]string{"error": msg})
}
