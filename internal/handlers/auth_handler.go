package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/auth"
)

type AuthHandler struct {
	tokens       *auth.TokenManager
	passwordHash string
}

func NewAuthHandler(tokens *auth.TokenManager, passwordHash string) *AuthHandler {
	return &AuthHandler{tokens: tokens, passwordHash: passwordHash}
}

// POST /api/auth/pair  { "naprava": "...", "geslo": "..." }
func (h *AuthHandler) Pair(c *gin.Context) {
	var req struct {
		Device   string `json:"naprava"`
		Password string `json:"geslo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := auth.CheckPassword(h.passwordHash, req.Password); err != nil {
		log.Printf("[auth][pair][deny] device=%q", req.Device)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := h.tokens.Issue(req.Device)
	if err != nil {
		log.Printf("[auth][pair][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[auth][pair][ok] device=%q", req.Device)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
