package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/services"
)

type NotificationHandler struct {
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GET /api/nalogi/:id/obvestila
func (h *NotificationHandler) GetByTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	notifications, err := h.service.GetByTask(c.Request.Context(), id)
	if err != nil {
		log.Printf("[obvestilo][list][err] task=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}
