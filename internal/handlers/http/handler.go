// Package http exposes the session coordinator as a JSON API. Identity comes
// from the X-User-ID header, resolved upstream by a trusted identity layer;
// this package does no authentication of its own.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tastevin-app/tastevin/internal/services/broadcast"
	livenessService "github.com/tastevin-app/tastevin/internal/services/liveness"
	sessionService "github.com/tastevin-app/tastevin/internal/services/session"
	tastingService "github.com/tastevin-app/tastevin/internal/services/tasting"
)

// userIDHeader carries the caller's resolved identity
const userIDHeader = "X-User-ID"

// userIDKey is the echo context key the identity middleware stores the user under
const userIDKey = "userID"

// HandlerError is a custom error type for handler construction errors
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig          HandlerError = "config cannot be nil"
	ErrNilSessionService  HandlerError = "session service cannot be nil"
	ErrNilTastingService  HandlerError = "tasting service cannot be nil"
	ErrNilLivenessService HandlerError = "liveness service cannot be nil"
	ErrNilBroadcast       HandlerError = "broadcast coordinator cannot be nil"
)

// Config holds configuration for the API handler
type Config struct {
	SessionService  sessionService.Service
	TastingService  tastingService.Service
	LivenessService livenessService.Service
	Broadcast       *broadcast.Coordinator
}

// Handler serves the coordinator API
type Handler struct {
	sessions  sessionService.Service
	tastings  tastingService.Service
	liveness  livenessService.Service
	broadcast *broadcast.Coordinator
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}

	if cfg.TastingService == nil {
		return nil, ErrNilTastingService
	}

	if cfg.LivenessService == nil {
		return nil, ErrNilLivenessService
	}

	if cfg.Broadcast == nil {
		return nil, ErrNilBroadcast
	}

	return &Handler{
		sessions:  cfg.SessionService,
		tastings:  cfg.TastingService,
		liveness:  cfg.LivenessService,
		broadcast: cfg.Broadcast,
	}, nil
}

// Register wires the API routes onto an Echo instance
func (h *Handler) Register(e *echo.Echo) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/healthz", h.Health)

	v1 := e.Group("/v1", requireIdentity)

	v1.POST("/sessions", h.CreateSession)
	v1.POST("/sessions/:id/join", h.JoinSession)
	v1.POST("/sessions/:id/start", h.StartSession)
	v1.POST("/sessions/:id/complete", h.CompleteSession)
	v1.POST("/sessions/:id/cancel", h.CancelSession)
	v1.GET("/sessions/:id", h.GetSession)
	v1.GET("/sessions/:id/status", h.GetSessionStatus)
	v1.GET("/sessions/:id/participants", h.ListParticipants)
	v1.GET("/sessions/:id/participants/:pid", h.GetParticipant)
	v1.PUT("/sessions/:id/participants/:pid/role", h.TransitionRole)
	v1.PUT("/sessions/:id/role", h.AssignRole)

	v1.POST("/sessions/:id/suggestions", h.SubmitSuggestion)
	v1.GET("/sessions/:id/suggestions", h.ListSuggestions)
	v1.POST("/sessions/:id/suggestions/:sid/moderate", h.ModerateSuggestion)
	v1.POST("/sessions/:id/items", h.AddItem)
	v1.GET("/sessions/:id/items", h.ListItems)

	v1.POST("/sessions/:id/heartbeat", h.RecordHeartbeat)
	v1.POST("/sessions/:id/completion-requests", h.RequestCompletion)
	v1.GET("/sessions/:id/events", h.StreamEvents)
}

// Health reports service liveness for load balancers
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// requireIdentity extracts the caller's user ID from the identity header
func requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(userIDHeader)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "missing " + userIDHeader + " header",
			})
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
