package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/services"
)

const maxImagesPerUpload = 10

type ImageHandler struct {
	images services.ImageService
	tasks  services.TaskService
}

func NewImageHandler(images services.ImageService, tasks services.TaskService) *ImageHandler {
	return &ImageHandler{images: images, tasks: tasks}
}

// POST /api/nalogi/:id/slike  (multipart, field "slike")
func (h *ImageHandler) Upload(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[slika][upload][err] get task id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "nalog not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["slike"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nobena slika ni bila nalozena"})
		return
	}
	if len(files) > maxImagesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nalozite lahko najvec 10 slik naenkrat"})
		return
	}

	saved, err := h.images.SaveUploads(c.Request.Context(), id, files)
	if err != nil {
		log.Printf("[slika][upload][err] task=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[slika][upload][ok] task=%d count=%d", id, len(saved))
	c.JSON(http.StatusOK, gin.H{"message": "Slike uspesno nalozene"})
}

// GET /api/nalogi/:id/slike
func (h *ImageHandler) GetByTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	images, err := h.images.GetByTaskID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[slika][list][err] task=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if images == nil {
		images = []models.Image{}
	}
	c.JSON(http.StatusOK, images)
}
