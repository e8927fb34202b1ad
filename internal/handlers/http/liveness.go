package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	livenessService "github.com/tastevin-app/tastevin/internal/services/liveness"
	sessionService "github.com/tastevin-app/tastevin/internal/services/session"
)

// RecordHeartbeat handles POST /v1/sessions/:id/heartbeat
func (h *Handler) RecordHeartbeat(c echo.Context) error {
	output, err := h.liveness.RecordHeartbeat(c.Request().Context(), &livenessService.RecordHeartbeatInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"last_seen_at": output.Record.LastSeenAt,
	})
}

// RequestCompletion handles POST /v1/sessions/:id/completion-requests, the
// participant-initiated forced completion of an abandoned session
func (h *Handler) RequestCompletion(c echo.Context) error {
	output, err := h.liveness.RequestCompletion(c.Request().Context(), &livenessService.RequestCompletionInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, output.Session)
}

// StreamEvents handles GET /v1/sessions/:id/events as a server-sent event
// stream. The subscription lives until the client disconnects.
func (h *Handler) StreamEvents(c echo.Context) error {
	sessionID := c.Param("id")

	// Reject streams for sessions that don't exist
	if _, err := h.sessions.GetSession(c.Request().Context(), &sessionService.GetSessionInput{
		SessionID: sessionID,
	}); err != nil {
		return fail(c, err)
	}

	sub, err := h.broadcast.Subscribe(sessionID)
	if err != nil {
		return fail(c, err)
	}
	defer sub.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.C:
			if !ok {
				return nil
			}
			body, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", event.Type, body); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
