package handlers

import (
	"errors"
	"net/http"

	"grantrates-backend/dialogue"
	"grantrates-backend/models"
	"grantrates-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles HTTP requests for help-chat sessions
type ChatHandler struct {
	chatService     *service.ChatService
	defaultLanguage models.Language
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, defaultLanguage models.Language) *ChatHandler {
	if defaultLanguage == "" {
		defaultLanguage = models.DefaultLanguage
	}
	return &ChatHandler{
		chatService:     chatService,
		defaultLanguage: defaultLanguage,
	}
}

// StartSessionRequest represents the request body for opening a chat
type StartSessionRequest struct {
	Language string `json:"language"`
}

// SelectOptionRequest represents the request body for answering a question
type SelectOptionRequest struct {
	Option *int `json:"option" binding:"required"`
}

// ChangeLanguageRequest represents the request body for switching language
type ChangeLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// StartSession handles POST /api/chat/sessions
func (h *ChatHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	// an empty body starts in the default language
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": err.Error(),
				},
			})
			return
		}
	}

	lang := h.defaultLanguage
	if req.Language != "" {
		var ok bool
		if lang, ok = bodyLanguage(c, req.Language); !ok {
			return
		}
	}

	result, err := h.chatService.StartSession(c.Request.Context(), service.StartSessionRequest{Language: lang})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Snapshot,
	})
}

// GetSession handles GET /api/chat/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.chatService.GetSession(c.Request.Context(), service.SessionRequest{ID: id})
	h.respond(c, result, err)
}

// SelectOption handles POST /api/chat/sessions/:id/select
func (h *ChatHandler) SelectOption(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.chatService.SelectOption(c.Request.Context(), service.SelectOptionRequest{
		ID:     id,
		Option: *req.Option,
	})
	h.respond(c, result, err)
}

// GoBack handles POST /api/chat/sessions/:id/back
func (h *ChatHandler) GoBack(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.chatService.GoBack(c.Request.Context(), service.SessionRequest{ID: id})
	h.respond(c, result, err)
}

// Restart handles POST /api/chat/sessions/:id/restart
func (h *ChatHandler) Restart(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.chatService.Restart(c.Request.Context(), service.SessionRequest{ID: id})
	h.respond(c, result, err)
}

// ChangeLanguage handles PUT /api/chat/sessions/:id/language
func (h *ChatHandler) ChangeLanguage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req ChangeLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}
	lang, ok := bodyLanguage(c, req.Language)
	if !ok {
		return
	}

	result, err := h.chatService.ChangeLanguage(c.Request.Context(), service.ChangeLanguageRequest{
		ID:       id,
		Language: lang,
	})
	h.respond(c, result, err)
}

// EndSession handles DELETE /api/chat/sessions/:id
func (h *ChatHandler) EndSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.chatService.EndSession(c.Request.Context(), service.SessionRequest{ID: id}); err != nil {
		h.respond(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"session_id": id,
		},
	})
}

// respond writes a session snapshot or maps err onto a status code
func (h *ChatHandler) respond(c *gin.Context, result *service.SessionResult, err error) {
	if err != nil {
		status, code := http.StatusInternalServerError, "CHAT_FAILED"
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			status, code = http.StatusNotFound, "SESSION_NOT_FOUND"
		case errors.Is(err, dialogue.ErrInvalidOption):
			status, code = http.StatusBadRequest, "INVALID_OPTION"
		case errors.Is(err, dialogue.ErrNotAwaitingInput):
			status, code = http.StatusConflict, "NOT_AWAITING_INPUT"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Snapshot,
	})
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid session ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

func bodyLanguage(c *gin.Context, raw string) (models.Language, bool) {
	lang, err := models.ParseLanguage(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNSUPPORTED_LANGUAGE",
				"message": "Unsupported language: " + raw,
			},
		})
		return "", false
	}
	return lang, true
}
