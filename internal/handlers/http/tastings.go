package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastevin-app/tastevin/internal/models"
	tastingService "github.com/tastevin-app/tastevin/internal/services/tasting"
)

type submitSuggestionRequest struct {
	ItemName string `json:"item_name"`
}

type moderateSuggestionRequest struct {
	Action string `json:"action"`
}

type addItemRequest struct {
	ItemName string `json:"item_name"`
}

// SubmitSuggestion handles POST /v1/sessions/:id/suggestions. A suggestion
// accepted while the host is away answers 202 instead of 201.
func (h *Handler) SubmitSuggestion(c echo.Context) error {
	var req submitSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	output, err := h.tastings.SubmitSuggestion(c.Request().Context(), &tastingService.SubmitSuggestionInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
		ItemName:  req.ItemName,
	})
	if err != nil {
		return fail(c, err)
	}

	status := http.StatusCreated
	if output.Queued {
		status = http.StatusAccepted
	}
	return c.JSON(status, map[string]any{
		"suggestion": output.Suggestion,
		"queued":     output.Queued,
	})
}

// ListSuggestions handles GET /v1/sessions/:id/suggestions?status=
func (h *Handler) ListSuggestions(c echo.Context) error {
	suggestions, err := h.tastings.ListSuggestions(c.Request().Context(), &tastingService.ListSuggestionsInput{
		SessionID: c.Param("id"),
		Status:    models.SuggestionStatus(c.QueryParam("status")),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"suggestions": suggestions})
}

// ModerateSuggestion handles POST /v1/sessions/:id/suggestions/:sid/moderate
func (h *Handler) ModerateSuggestion(c echo.Context) error {
	var req moderateSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	output, err := h.tastings.ModerateSuggestion(c.Request().Context(), &tastingService.ModerateSuggestionInput{
		SessionID:    c.Param("id"),
		SuggestionID: c.Param("sid"),
		UserID:       userID(c),
		Action:       tastingService.ModerationAction(req.Action),
	})
	if err != nil {
		return fail(c, err)
	}

	resp := map[string]any{"suggestion": output.Suggestion}
	if output.Item != nil {
		resp["item"] = output.Item
	}
	return c.JSON(http.StatusOK, resp)
}

// AddItem handles POST /v1/sessions/:id/items, the direct-add path that
// bypasses the suggestion queue
func (h *Handler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	output, err := h.tastings.AddItemDirectly(c.Request().Context(), &tastingService.AddItemDirectlyInput{
		SessionID: c.Param("id"),
		UserID:    userID(c),
		ItemName:  req.ItemName,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, output.Item)
}

// ListItems handles GET /v1/sessions/:id/items
func (h *Handler) ListItems(c echo.Context) error {
	items, err := h.tastings.ListItems(c.Request().Context(), &tastingService.ListItemsInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
