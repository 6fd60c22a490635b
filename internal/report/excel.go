// Package report builds accounts-receivable summary workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/billing"
	"github.com/vendorbridge/bizops/internal/models"
)

// InvoiceReport writes invoice summaries as an Excel workbook: one summary
// sheet plus one sheet per lifecycle status.
type InvoiceReport struct {
	logger *zap.Logger
}

// NewInvoiceReport creates a report builder
func NewInvoiceReport(logger *zap.Logger) *InvoiceReport {
	return &InvoiceReport{logger: logger}
}

var columns = []string{"Invoice", "Customer", "Status", "Issued", "Subtotal", "Tax", "Total"}

// Build assembles the workbook. customers maps customer ID to name for the
// customer column; unknown IDs render as the numeric ID.
func (r *InvoiceReport) Build(invoices []models.Invoice, customers map[int64]string) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	if err := r.fillSheet(f, summary, invoices, customers); err != nil {
		return nil, err
	}

	for _, status := range []models.InvoiceStatus{
		models.InvoiceStatusDraft,
		models.InvoiceStatusOpen,
		models.InvoiceStatusPaid,
		models.InvoiceStatusVoid,
	} {
		var filtered []models.Invoice
		for _, inv := range invoices {
			if inv.Status == status {
				filtered = append(filtered, inv)
			}
		}
		if len(filtered) == 0 {
			continue
		}

		sheet := string(status)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := r.fillSheet(f, sheet, filtered, customers); err != nil {
			return nil, err
		}
	}

	r.logger.Info("Invoice report built", zap.Int("invoices", len(invoices)))
	return f, nil
}

func (r *InvoiceReport) fillSheet(f *excelize.File, sheet string, invoices []models.Invoice, customers map[int64]string) error {
	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	var totalCents int64
	for i, inv := range invoices {
		row := i + 2

		customer, ok := customers[inv.CustomerID]
		if !ok {
			customer = fmt.Sprintf("#%d", inv.CustomerID)
		}

		issued := ""
		if inv.IssuedAt != nil {
			issued = inv.IssuedAt.Format("2006-01-02")
		}

		values := []interface{}{
			inv.Number,
			customer,
			string(inv.Status),
			issued,
			billing.Format(inv.SubtotalCents, inv.Currency),
			billing.Format(inv.TaxCents, inv.Currency),
			billing.Format(inv.TotalCents, inv.Currency),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}

		totalCents += inv.TotalCents
	}

	// Totals row; mixed currencies would need grouping but the report is
	// single-currency in practice.
	currency := "USD"
	if len(invoices) > 0 {
		currency = invoices[0].Currency
	}
	totalRow := len(invoices) + 3
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := f.SetCellValue(sheet, cell, "Total outstanding"); err != nil {
		return err
	}
	cell, _ = excelize.CoordinatesToCellName(len(columns), totalRow)
	return f.SetCellValue(sheet, cell, billing.Format(totalCents, currency))
}

// Write streams a built workbook
func (r *InvoiceReport) Write(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
