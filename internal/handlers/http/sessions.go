package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastevin-app/tastevin/internal/models"
	sessionService "github.com/tastevin-app/tastevin/internal/services/session"
)

type createSessionRequest struct {
	Approach     string   `json:"approach"`
	CategoryDefs []string `json:"category_defs"`
	InitialItems []string `json:"initial_items"`
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

type transitionRoleRequest struct {
	Role string `json:"role"`
}

// CreateSession handles POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	output, err := h.sessions.CreateSession(c.Request().Context(), &sessionService.CreateSessionInput{
		HostUserID:   userID(c),
		Approach:     models.SessionApproach(req.Approach),
		CategoryDefs: req.CategoryDefs,
		InitialItems: req.InitialItems,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"session":     output.Session,
		"participant": output.Participant,
	})
}

// JoinSession handles POST /v1/sessions/:id/join
func (h *Handler) JoinSession(c echo.Context) error {
	output, err := h.sessions.JoinSession(c.Request().Context(), &sessionService.JoinSessionInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
	})
	if err != nil {
		return fail(c, err)
	}

	status := http.StatusCreated
	if output.AlreadyJoined {
		status = http.StatusOK
	}
	return c.JSON(status, output.Participant)
}

// StartSession handles POST /v1/sessions/:id/start
func (h *Handler) StartSession(c echo.Context) error {
	output, err := h.sessions.StartSession(c.Request().Context(), &sessionService.StartSessionInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, output.Session)
}

// CompleteSession handles POST /v1/sessions/:id/complete
func (h *Handler) CompleteSession(c echo.Context) error {
	output, err := h.sessions.CompleteSession(c.Request().Context(), &sessionService.CompleteSessionInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, output.Session)
}

// CancelSession handles POST /v1/sessions/:id/cancel
func (h *Handler) CancelSession(c echo.Context) error {
	output, err := h.sessions.CancelSession(c.Request().Context(), &sessionService.CancelSessionInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, output.Session)
}

// GetSession handles GET /v1/sessions/:id
func (h *Handler) GetSession(c echo.Context) error {
	session, err := h.sessions.GetSession(c.Request().Context(), &sessionService.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// GetSessionStatus handles GET /v1/sessions/:id/status
func (h *Handler) GetSessionStatus(c echo.Context) error {
	output, err := h.sessions.GetSessionStatus(c.Request().Context(), &sessionService.GetSessionStatusInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"state":           output.State,
		"host_responsive": output.HostResponsive,
	})
}

// ListParticipants handles GET /v1/sessions/:id/participants
func (h *Handler) ListParticipants(c echo.Context) error {
	participants, err := h.sessions.ListParticipants(c.Request().Context(), &sessionService.ListParticipantsInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"participants": participants})
}

// GetParticipant handles GET /v1/sessions/:id/participants/:pid
func (h *Handler) GetParticipant(c echo.Context) error {
	participant, err := h.sessions.GetParticipant(c.Request().Context(), &sessionService.GetParticipantInput{
		SessionID:     c.Param("id"),
		ParticipantID: c.Param("pid"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, participant)
}

// AssignRole handles PUT /v1/sessions/:id/role, assigning a role to the caller
func (h *Handler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	output, err := h.sessions.AssignRole(c.Request().Context(), &sessionService.AssignRoleInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
		Role:      models.Role(req.Role),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, output.Participant)
}

// TransitionRole handles PUT /v1/sessions/:id/participants/:pid/role
func (h *Handler) TransitionRole(c echo.Context) error {
	var req transitionRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	output, err := h.sessions.TransitionRole(c.Request().Context(), &sessionService.TransitionRoleInput{
		SessionID:     c.Param("id"),
		ParticipantID: c.Param("pid"),
		NewRole:       models.Role(req.Role),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, output.Participant)
}
