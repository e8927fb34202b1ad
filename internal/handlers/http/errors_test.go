package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	livenessService "github.com/tastevin-app/tastevin/internal/services/liveness"
	sessionService "github.com/tastevin-app/tastevin/internal/services/session"
	tastingService "github.com/tastevin-app/tastevin/internal/services/tasting"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", sessionService.ErrInvalidInput, http.StatusBadRequest},
		{"suggesting into a predefined session", tastingService.ErrSuggestionsDisabled, http.StatusBadRequest},
		{"non-moderator moderating", tastingService.ErrNotModerator, http.StatusForbidden},
		{"forced completion denied", livenessService.ErrForcedCompletionDenied, http.StatusForbidden},
		{"unknown session", sessionService.ErrSessionNotFound, http.StatusNotFound},
		{"second decision on a suggestion", tastingService.ErrAlreadyModerated, http.StatusConflict},
		{"moderator slot taken", sessionService.ErrHostAlreadyAssigned, http.StatusConflict},
		{"unrecognized failure", errors.New("connection reset"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
