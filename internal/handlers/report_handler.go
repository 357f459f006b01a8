package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/pdf"
	"vzdrzevanje/internal/services"
)

type ReportHandler struct {
	reports services.ReportService
	tasks   services.TaskService
	pdfGen  pdf.Generator
}

func NewReportHandler(reports services.ReportService, tasks services.TaskService, pdfGen pdf.Generator) *ReportHandler {
	return &ReportHandler{reports: reports, tasks: tasks, pdfGen: pdfGen}
}

// GET /api/porocila/nalogi
func (h *ReportHandler) TaskReport(c *gin.Context) {
	report, err := h.reports.TaskReport(c.Request.Context())
	if err != nil {
		log.Printf("[porocilo][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/porocila/nalogi/pdf
func (h *ReportHandler) TaskReportPDF(c *gin.Context) {
	report, err := h.reports.TaskReport(c.Request.Context())
	if err != nil {
		log.Printf("[porocilo][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tasks, err := h.tasks.GetAll(c.Request.Context(), models.TaskFilter{})
	if err != nil {
		log.Printf("[porocilo][pdf][err] list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := h.pdfGen.TaskReport(report, tasks)
	if err != nil {
		log.Printf("[porocilo][pdf][err] render: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[porocilo][pdf][ok] bytes=%d", len(data))
	c.Header("Content-Disposition", `attachment; filename="porocilo_nalogi.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
