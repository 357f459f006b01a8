package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/services"
)

type EquipmentHandler struct {
	service services.EquipmentService
}

func NewEquipmentHandler(service services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

type equipmentRequest struct {
	ClientID     int64  `json:"stranka_id" binding:"required"`
	Type         string `json:"tip_opreme" binding:"required"`
	Brand        string `json:"znamka"`
	Model        string `json:"model"`
	SerialNumber string `json:"serijska_stevilka"`
	PurchaseDate string `json:"datum_nakupa"`
	WarrantyTo   string `json:"garancija_do"`
	Notes        string `json:"opombe"`
}

func (r *equipmentRequest) toModel() (*models.Equipment, error) {
	purchase, err := parseDate(r.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warranty, err := parseDate(r.WarrantyTo)
	if err != nil {
		return nil, err
	}
	return &models.Equipment{
		ClientID:     r.ClientID,
		Type:         r.Type,
		Brand:        r.Brand,
		Model:        r.Model,
		SerialNumber: r.SerialNumber,
		PurchaseDate: purchase,
		WarrantyTo:   warranty,
		Notes:        r.Notes,
	}, nil
}

// GET /api/oprema?stranka_id=
func (h *EquipmentHandler) GetAll(c *gin.Context) {
	var clientID *int64
	if v, ok := c.GetQuery("stranka_id"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stranka_id"})
			return
		}
		clientID = &id
	}

	equipment, err := h.service.GetAll(c.Request.Context(), clientID)
	if err != nil {
		log.Printf("[oprema][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if equipment == nil {
		equipment = []models.EquipmentWithOwner{}
	}
	c.JSON(http.StatusOK, equipment)
}

// POST /api/oprema
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[oprema][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eq, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(c.Request.Context(), eq)
	if err != nil {
		log.Printf("[oprema][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[oprema][create][ok] id=%d tip=%s", created.ID, created.Type)
	c.JSON(http.StatusOK, gin.H{"id": created.ID, "message": "Oprema uspesno dodana"})
}

// PUT /api/oprema/:id
func (h *EquipmentHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[oprema][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eq, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, eq)
	if err != nil {
		log.Printf("[oprema][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "oprema not found"})
		return
	}
	log.Printf("[oprema][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Oprema uspesno posodobljena"})
}

// DELETE /api/oprema/:id
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[oprema][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[oprema][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Oprema uspesno izbrisana"})
}
