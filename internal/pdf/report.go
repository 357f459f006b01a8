package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"vzdrzevanje/internal/models"
)

// Generator renders the maintenance task report as a PDF.
type Generator interface {
	TaskReport(report *models.TaskReport, tasks []models.TaskWithDetails) ([]byte, error)
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

func (g *ReportGenerator) TaskReport(report *models.TaskReport, tasks []models.TaskWithDetails) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Porocilo o vzdrzevalnih nalogih", false)
	pdf.SetAuthor("Vzdrzevanje", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Porocilo o vzdrzevalnih nalogih", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Ustvarjeno: "+time.Now().Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// summary block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Skupaj nalogov: %d", report.Total), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, status := range []models.TaskStatus{models.StatusPlanned, models.StatusInProgress, models.StatusDone} {
		pdf.CellFormat(0, 6, fmt.Sprintf("  %s: %d", status, report.ByStatus[status]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// task table
	header := []string{"ID", "Naslov", "Stranka", "Oprema", "Nacrtovano", "Status", "Prioriteta"}
	widths := []float64{12, 70, 50, 50, 28, 28, 28}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tasks {
		planned := ""
		if t.PlannedDate != nil {
			planned = t.PlannedDate.Format("02.01.2006")
		}
		cols := []string{
			fmt.Sprintf("%d", t.ID),
			truncate(t.Title, 42),
			truncate(t.ClientFirstName+" "+t.ClientLastName, 30),
			truncate(t.EquipmentType+" "+t.EquipmentBrand, 30),
			planned,
			string(t.Status),
			string(t.Priority),
		}
		for i, col := range cols {
			pdf.CellFormat(widths[i], 6, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
