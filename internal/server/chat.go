package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/peopleops/hrdesk/models"
	"github.com/peopleops/hrdesk/session"
)

// Orchestrator answers one user query given the session's prior history.
type Orchestrator interface {
	Run(ctx context.Context, query string, history []models.ChatMessage) (string, error)
}

// ChatHandler serves the chat, health, and history-deletion endpoints.
type ChatHandler struct {
	Agent    Orchestrator
	Sessions session.Store
	Logger   *log.Logger
}

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/chat", h.chat)
	e.GET("/health", h.health)
	e.DELETE("/chat_history/:session_id", h.clearHistory)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := c.Request().Context()
	history, err := h.Sessions.Load(ctx, sessionID)
	if err != nil {
		h.Logger.Printf("loading history for session %s: %v", sessionID, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "chat history service error")
	}

	answer, err := h.Agent.Run(ctx, req.Query, history)
	if err != nil {
		h.Logger.Printf("conversation error for session %s: %v", sessionID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "error during conversation")
	}

	now := time.Now()
	userMsg := models.ChatMessage{Role: models.RoleUser, Content: req.Query, Timestamp: now}
	assistantMsg := models.ChatMessage{Role: models.RoleAssistant, Content: answer, Timestamp: now}
	for _, msg := range []models.ChatMessage{userMsg, assistantMsg} {
		if err := h.Sessions.Append(ctx, sessionID, msg); err != nil {
			h.Logger.Printf("persisting turn for session %s: %v", sessionID, err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "chat history service error")
		}
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: answer, SessionID: sessionID})
}

type serviceStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *ChatHandler) health(c echo.Context) error {
	llmStatus := serviceStatus{Status: "ok", Reason: "LLM initialized"}
	if h.Agent == nil {
		llmStatus = serviceStatus{Status: "degraded", Reason: "LLM not initialized"}
	}

	redisStatus := serviceStatus{Status: "ok", Reason: "connected"}
	if err := h.Sessions.Ping(c.Request().Context()); err != nil {
		redisStatus = serviceStatus{Status: "degraded", Reason: err.Error()}
	}

	overall := "ok"
	if llmStatus.Status != "ok" || redisStatus.Status != "ok" {
		overall = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": overall,
		"details": map[string]serviceStatus{
			"llm_service":   llmStatus,
			"redis_service": redisStatus,
		},
	})
}

func (h *ChatHandler) clearHistory(c echo.Context) error {
	sessionID := c.Param("session_id")
	err := h.Sessions.Clear(c.Request().Context(), sessionID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{
			"message": "chat history for session " + sessionID + " cleared",
		})
	case errors.Is(err, models.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session id not found in chat history")
	default:
		h.Logger.Printf("clearing history for session %s: %v", sessionID, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "chat history service error")
	}
}
