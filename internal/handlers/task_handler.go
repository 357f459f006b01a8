package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func isAllowedTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.StatusPlanned, models.StatusInProgress, models.StatusDone:
		return true
	}
	return false
}

func isAllowedTaskPriority(p models.TaskPriority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

// GET /api/nalogi
func (h *TaskHandler) GetAll(c *gin.Context) {
	var filter models.TaskFilter

	if v, ok := c.GetQuery("filter_status"); ok && v != "" {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("filter_stranka"); ok && v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ClientID = &id
		} else {
			log.Printf("[nalog][list][warn] bad filter_stranka=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("filter_oprema"); ok && v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.EquipmentID = &id
		} else {
			log.Printf("[nalog][list][warn] bad filter_oprema=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("filter_datum"); ok && v != "" {
		d, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter_datum"})
			return
		}
		filter.PlannedDate = d
	}
	filter.SortBy = c.Query("sort_by")

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[nalog][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []models.TaskWithDetails{}
	}
	log.Printf("[nalog][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// GET /api/nalogi/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[nalog][getByID][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "nalog not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /api/nalogi
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		ClientID    int64               `json:"stranka_id" binding:"required"`
		EquipmentID *int64              `json:"oprema_id"`
		Title       string              `json:"naslov" binding:"required"`
		Description string              `json:"opis"`
		PlannedDate string              `json:"datum_nacrtovanega_vzdrzevanja"`
		Priority    models.TaskPriority `json:"prioriteta"`
		SpareParts  string              `json:"rezervni_deli"`
		Notes       string              `json:"opombe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[nalog][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Priority != "" && !isAllowedTaskPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prioriteta"})
		return
	}

	planned, err := parseDate(req.PlannedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid datum_nacrtovanega_vzdrzevanja"})
		return
	}

	task := &models.Task{
		ClientID:    req.ClientID,
		EquipmentID: req.EquipmentID,
		Title:       req.Title,
		Description: req.Description,
		PlannedDate: planned,
		Priority:    req.Priority,
		SpareParts:  req.SpareParts,
		Notes:       req.Notes,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[nalog][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[nalog][create][ok] id=%d naslov=%q", created.ID, created.Title)
	c.JSON(http.StatusOK, gin.H{"id": created.ID, "message": "Nalog uspesno ustvarjen"})
}

// PUT /api/nalogi/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Title        string              `json:"naslov" binding:"required"`
		Description  string              `json:"opis"`
		PlannedDate  string              `json:"datum_nacrtovanega_vzdrzevanja"`
		ExecutedDate string              `json:"datum_izvedbe"`
		Status       models.TaskStatus   `json:"status"`
		Priority     models.TaskPriority `json:"prioriteta"`
		SpareParts   string              `json:"rezervni_deli"`
		Notes        string              `json:"opombe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[nalog][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "" && !isAllowedTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if req.Priority != "" && !isAllowedTaskPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prioriteta"})
		return
	}

	planned, err := parseDate(req.PlannedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid datum_nacrtovanega_vzdrzevanja"})
		return
	}
	executed, err := parseDate(req.ExecutedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid datum_izvedbe"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		PlannedDate:  planned,
		ExecutedDate: executed,
		Status:       req.Status,
		Priority:     req.Priority,
		SpareParts:   req.SpareParts,
		Notes:        req.Notes,
	})
	if err != nil {
		log.Printf("[nalog][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "nalog not found"})
		return
	}
	log.Printf("[nalog][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Nalog uspesno posodobljen"})
}

// DELETE /api/nalogi/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[nalog][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[nalog][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Nalog uspesno izbrisan"})
}
