package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/services"
)

type ClientHandler struct {
	service services.ClientService
}

func NewClientHandler(service services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// GET /api/stranke
func (h *ClientHandler) GetAll(c *gin.Context) {
	clients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[stranka][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// POST /api/stranke
func (h *ClientHandler) Create(c *gin.Context) {
	var req struct {
		FirstName string `json:"ime" binding:"required"`
		LastName  string `json:"priimek" binding:"required"`
		Address   string `json:"naslov"`
		Phone     string `json:"telefon"`
		Email     string `json:"email"`
		Notes     string `json:"opombe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[stranka][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &models.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
	}
	created, err := h.service.Create(c.Request.Context(), client)
	if err != nil {
		log.Printf("[stranka][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[stranka][create][ok] id=%d %s %s", created.ID, created.FirstName, created.LastName)
	c.JSON(http.StatusOK, gin.H{"id": created.ID, "message": "Stranka uspesno dodana"})
}

// PUT /api/stranke/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		FirstName string `json:"ime" binding:"required"`
		LastName  string `json:"priimek" binding:"required"`
		Address   string `json:"naslov"`
		Phone     string `json:"telefon"`
		Email     string `json:"email"`
		Notes     string `json:"opombe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[stranka][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &models.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
	})
	if err != nil {
		log.Printf("[stranka][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stranka not found"})
		return
	}
	log.Printf("[stranka][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Stranka uspesno posodobljena"})
}

// DELETE /api/stranke/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[stranka][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[stranka][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Stranka uspesno izbrisana"})
}
