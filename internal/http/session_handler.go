package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"havenchat/internal/assist"
	"havenchat/internal/domain"
	"havenchat/internal/service"
)

// SessionHandler mantiene dependencias para los endpoints de sesión.
type SessionHandler struct {
	logger    *zap.Logger
	store     *service.SessionStore
	tokens    *service.SessionTokenService
	transport assist.Transport
	limiter   service.SubmitRateLimiter
}

// NewSessionHandler crea una instancia con las dependencias necesarias.
func NewSessionHandler(
	logger *zap.Logger,
	store *service.SessionStore,
	tokens *service.SessionTokenService,
	transport assist.Transport,
	limiter service.SubmitRateLimiter,
) *SessionHandler {
	return &SessionHandler{
		logger:    logger,
		store:     store,
		tokens:    tokens,
		transport: transport,
		limiter:   limiter,
	}
}

// CreateSession maneja POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		UserName string `json:"user_name"`
		Tone     string `json:"tone"`
	}
	// El cuerpo es opcional; un body vacío crea la sesión con defaults.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid create session request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	if h.limiter != nil && !h.limiter.Allow("create:"+c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many sessions, slow down"})
		return
	}

	engine := service.NewSessionEngine(h.transport, h.logger)
	if req.Tone != "" {
		tone, err := domain.ParseTone(req.Tone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tone"})
			return
		}
		engine.UpdateSettings(&tone, nil)
	}
	if req.UserName != "" {
		engine.UpdateSettings(nil, &req.UserName)
	}

	session := h.store.Create(engine)
	token, err := h.tokens.Issue(session.ID)
	if err != nil {
		h.logger.Error("issue session token failed", zap.Error(err))
		h.store.Remove(session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
		"token":   token,
		"state":   engine.Snapshot(),
	})
}

// State maneja GET /sessions/:id/state.
func (h *SessionHandler) State(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": engine.Snapshot()})
}

// Submit maneja POST /sessions/:id/messages: un ciclo completo de envío.
func (h *SessionHandler) Submit(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.limiter != nil && !h.limiter.Allow("submit:"+c.Param("id")) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, slow down"})
		return
	}

	snap, err := engine.Submit(c.Request.Context(), req.Text)
	switch {
	case errors.Is(err, service.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "a message is already in flight", "state": snap})
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty message", "state": snap})
	case errors.Is(err, service.ErrConsentRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "consent required", "state": snap})
	case err != nil:
		h.logger.Error("submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
	default:
		// Las fallas de transporte ya quedaron absorbidas en el estado.
		c.JSON(http.StatusOK, gin.H{"state": snap})
	}
}

// UpdateSettings maneja PATCH /sessions/:id/settings.
func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}

	var req struct {
		Tone     *string `json:"tone"`
		UserName *string `json:"user_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid settings request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var tone *domain.Tone
	if req.Tone != nil {
		parsed, err := domain.ParseTone(*req.Tone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tone"})
			return
		}
		tone = &parsed
	}

	c.JSON(http.StatusOK, gin.H{"state": engine.UpdateSettings(tone, req.UserName)})
}

// SetConsent maneja PUT /sessions/:id/consent.
func (h *SessionHandler) SetConsent(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}

	var req struct {
		Granted *bool `json:"granted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid consent request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": engine.SetConsent(*req.Granted)})
}

// DismissCrisisFlag maneja POST /sessions/:id/crisis/dismiss.
func (h *SessionHandler) DismissCrisisFlag(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": engine.DismissCrisisFlag()})
}

// Clear maneja POST /sessions/:id/clear: re-siembra el log.
func (h *SessionHandler) Clear(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": engine.Clear()})
}

// Transcript maneja GET /sessions/:id/transcript como descarga de texto.
func (h *SessionHandler) Transcript(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	filename := service.TranscriptFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(engine.ExportTranscript()))
}

func (h *SessionHandler) engine(c *gin.Context) (*service.SessionEngine, bool) {
	engine, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return engine, true
}
