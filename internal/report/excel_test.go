package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

func TestBuild(t *testing.T) {
	invoices := []models.Invoice{
		{
			ID:            1,
			Number:        "INV-100",
			CustomerID:    1,
			Status:        models.InvoiceStatusOpen,
			Currency:      "USD",
			SubtotalCents: 10000,
			TaxCents:      750,
			TotalCents:    10750,
		},
		{
			ID:            2,
			Number:        "INV-101",
			CustomerID:    2,
			Status:        models.InvoiceStatusPaid,
			Currency:      "USD",
			SubtotalCents: 5000,
			TaxCents:      0,
			TotalCents:    5000,
		},
	}
	customers := map[int64]string{1: "Acme Corp"}

	f, err := NewInvoiceReport(zap.NewNop()).Build(invoices, customers)
	require.NoError(t, err)

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "open")
	assert.Contains(t, sheets, "paid")
	assert.NotContains(t, sheets, "draft")

	header, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice", header)

	number, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "INV-100", number)

	customer, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", customer)

	// Unknown customer falls back to the numeric ID.
	fallback, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "#2", fallback)

	total, err := f.GetCellValue("Summary", "G2")
	require.NoError(t, err)
	assert.Equal(t, "$107.50", total)

	grand, err := f.GetCellValue("Summary", "G5")
	require.NoError(t, err)
	assert.Equal(t, "$157.50", grand)
}

func TestBuildEmpty(t *testing.T) {
	f, err := NewInvoiceReport(zap.NewNop()).Build(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary"}, f.GetSheetList())
}
