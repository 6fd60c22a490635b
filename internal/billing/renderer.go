package billing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// RendererConfig holds invoice document rendering configuration
type RendererConfig struct {
	OutputDir   string
	CompanyName string
	FooterNote  string
}

// Renderer writes finalized invoices as PDF documents. This stands in for
// the processor-hosted invoice page: the document layout is ours, the
// numbers come straight from the persisted minor-unit totals.
type Renderer struct {
	cfg    RendererConfig
	logger *zap.Logger
}

// NewRenderer creates a new invoice document renderer
func NewRenderer(cfg RendererConfig, logger *zap.Logger) (*Renderer, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents dir: %w", err)
	}
	return &Renderer{cfg: cfg, logger: logger}, nil
}

// Render writes the invoice PDF and returns the document path.
func (r *Renderer) Render(inv *models.Invoice, customer *models.Customer) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, r.cfg.CompanyName)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Invoice %s", inv.Number), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Bill to: %s", customer.Name))
	pdf.Ln(5)
	if customer.Address != "" {
		pdf.Cell(0, 6, customer.Address)
		pdf.Ln(5)
	}
	if inv.IssuedAt != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Issued: %s", inv.IssuedAt.Format("2006-01-02")))
		pdf.Ln(5)
	}
	if inv.DueAt != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Due: %s", inv.DueAt.Format("2006-01-02")))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Line item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(100, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, Format(item.UnitPriceCents, inv.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, Format(item.TotalCents, inv.Currency), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(155, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, Format(inv.SubtotalCents, inv.Currency), "", 1, "R", false, 0, "")
	pdf.CellFormat(155, 7, fmt.Sprintf("Tax (%.2f%%)", inv.TaxPercent), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, Format(inv.TaxCents, inv.Currency), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(155, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, Format(inv.TotalCents, inv.Currency), "", 1, "R", false, 0, "")

	if r.cfg.FooterNote != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, r.cfg.FooterNote)
	}

	outputPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("invoice-%s.pdf", inv.Number))
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		r.logger.Error("Failed to write invoice document",
			zap.String("invoice_number", inv.Number),
			zap.Error(err))
		return "", fmt.Errorf("failed to write invoice document: %w", err)
	}

	r.logger.Info("Invoice document rendered",
		zap.String("invoice_number", inv.Number),
		zap.String("path", outputPath))
	return outputPath, nil
}
