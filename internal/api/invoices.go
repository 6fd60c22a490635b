package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/billing"
	"github.com/vendorbridge/bizops/internal/models"
)

type lineItemRequest struct {
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type invoiceRequest struct {
	CustomerID int64             `json:"customer_id" binding:"required"`
	Number     string            `json:"number"`
	Currency   string            `json:"currency"`
	TaxPercent *float64          `json:"tax_percent"`
	DueAt      *time.Time        `json:"due_at"`
	Items      []lineItemRequest `json:"items"`
}

type itemsRequest struct {
	TaxPercent *float64          `json:"tax_percent"`
	Items      []lineItemRequest `json:"items" binding:"required"`
}

// buildItems normalizes request rows into persisted line items plus the
// derived totals. An empty list becomes the single default row so an
// invoice always has at least one row.
func buildItems(reqItems []lineItemRequest, taxPercent float64) ([]models.InvoiceLineItem, billing.Totals, error) {
	rows := make([]billing.LineItem, 0, len(reqItems))
	for _, it := range reqItems {
		rows = append(rows, billing.LineItem{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	if len(rows) == 0 {
		rows = append(rows, billing.NewRow())
	}

	totals, err := billing.Calculate(rows, taxPercent)
	if err != nil {
		return nil, billing.Totals{}, err
	}

	items := make([]models.InvoiceLineItem, len(rows))
	for i, row := range rows {
		n := row.Normalize()
		items[i] = models.InvoiceLineItem{
			Position:       i,
			Description:    n.Description,
			Quantity:       n.Quantity,
			UnitPriceCents: n.UnitPriceCents,
			TotalCents:     n.TotalCents(),
		}
	}
	return items, totals, nil
}

func (a *API) createInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid invoice payload")
		return
	}

	customer, err := a.customers.GetByID(req.CustomerID)
	if err != nil {
		respondInternal(c, "failed to load customer")
		return
	}
	if customer == nil {
		respondNotFound(c, "customer not found")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = a.defaults.Currency
	}
	taxPercent := a.defaults.TaxPercent
	if req.TaxPercent != nil {
		taxPercent = *req.TaxPercent
	}

	items, totals, err := buildItems(req.Items, taxPercent)
	if err != nil {
		respondValidation(c, map[string]string{"tax_percent": err.Error()})
		return
	}

	number := req.Number
	if number == "" {
		number = fmt.Sprintf("INV-%d", time.Now().UnixMilli())
	}

	invoice := models.Invoice{
		Number:        number,
		CustomerID:    req.CustomerID,
		Status:        models.InvoiceStatusDraft,
		Currency:      currency,
		TaxPercent:    taxPercent,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		Items:         items,
		DueAt:         req.DueAt,
	}

	err = a.db.WithTransaction(func(tx *sql.Tx) error {
		return a.invoices.Create(tx, &invoice)
	})
	if err != nil {
		a.logger.Error("Failed to create invoice", zap.Error(err))
		respondInternal(c, "failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (a *API) listInvoices(c *gin.Context) {
	var customerID int64
	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondBadRequest(c, "invalid customer_id filter")
			return
		}
		customerID = id
	}
	status := models.InvoiceStatus(c.Query("status"))

	invoices, err := a.invoices.List(customerID, status)
	if err != nil {
		respondInternal(c, "failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (a *API) getInvoice(c *gin.Context) {
	invoice, ok := a.loadInvoice(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// replaceInvoiceItems rewrites the draft's rows and recomputes totals.
// Full recomputation on every edit; drafts are small.
func (a *API) replaceInvoiceItems(c *gin.Context) {
	invoice, ok := a.loadInvoice(c)
	if !ok {
		return
	}
	if invoice.Status != models.InvoiceStatusDraft {
		respondBadRequest(c, "only draft invoices can be edited")
		return
	}

	var req itemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid items payload")
		return
	}
	if len(req.Items) == 0 {
		respondValidation(c, map[string]string{"items": "at least one row must remain"})
		return
	}

	taxPercent := invoice.TaxPercent
	if req.TaxPercent != nil {
		taxPercent = *req.TaxPercent
	}

	items, totals, err := buildItems(req.Items, taxPercent)
	if err != nil {
		respondValidation(c, map[string]string{"tax_percent": err.Error()})
		return
	}

	invoice.TaxPercent = taxPercent
	invoice.SubtotalCents = totals.SubtotalCents
	invoice.TaxCents = totals.TaxCents
	invoice.TotalCents = totals.TotalCents
	invoice.Items = items
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
	}

	err = a.db.WithTransaction(func(tx *sql.Tx) error {
		return a.invoices.ReplaceItems(tx, invoice)
	})
	if err != nil {
		a.logger.Error("Failed to replace invoice items", zap.Error(err))
		respondInternal(c, "failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// finalizeInvoice renders the invoice document, creates the hosted payment
// link and opens the invoice.
func (a *API) finalizeInvoice(c *gin.Context) {
	invoice, ok := a.loadInvoice(c)
	if !ok {
		return
	}
	if invoice.Status != models.InvoiceStatusDraft {
		respondBadRequest(c, "invoice is already finalized")
		return
	}

	customer, err := a.customers.GetByID(invoice.CustomerID)
	if err != nil || customer == nil {
		respondInternal(c, "failed to load customer")
		return
	}

	issuedAt := time.Now()
	invoice.IssuedAt = &issuedAt

	documentPath, err := a.renderer.Render(invoice, customer)
	if err != nil {
		respondInternal(c, "failed to render invoice document")
		return
	}

	paymentLink, _, err := a.processor.CreatePaymentLink(invoice)
	if err != nil {
		respondProviderFailure(c, err)
		return
	}

	if err := a.invoices.MarkFinalized(invoice.ID, issuedAt, documentPath, paymentLink); err != nil {
		respondInternal(c, "failed to finalize invoice")
		return
	}

	invoice.Status = models.InvoiceStatusOpen
	invoice.DocumentPath = documentPath
	invoice.PaymentLink = paymentLink
	c.JSON(http.StatusOK, invoice)
}

func (a *API) deleteInvoice(c *gin.Context) {
	invoice, ok := a.loadInvoice(c)
	if !ok {
		return
	}
	if err := a.invoices.Delete(invoice.ID); err != nil {
		respondInternal(c, "failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// loadInvoice parses the :id param and fetches the invoice, writing the
// error response itself when something is off.
func (a *API) loadInvoice(c *gin.Context) (*models.Invoice, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid invoice id")
		return nil, false
	}

	invoice, err := a.invoices.GetByID(id)
	if err != nil {
		respondInternal(c, "failed to load invoice")
		return nil, false
	}
	if invoice == nil {
		respondNotFound(c, "invoice not found")
		return nil, false
	}
	return invoice, true
}

func (a *API) exportInvoiceReport(c *gin.Context) {
	invoices, err := a.invoices.List(0, "")
	if err != nil {
		respondInternal(c, "failed to list invoices")
		return
	}

	customers, err := a.customers.List()
	if err != nil {
		respondInternal(c, "failed to list customers")
		return
	}
	names := make(map[int64]string, len(customers))
	for _, cust := range customers {
		names[cust.ID] = cust.Name
	}

	workbook, err := a.reports.Build(invoices, names)
	if err != nil {
		respondInternal(c, "failed to build report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := a.reports.Write(workbook, c.Writer); err != nil {
		a.logger.Error("Failed to stream report", zap.Error(err))
	}
}
