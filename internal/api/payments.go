package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/card"
	"github.com/vendorbridge/bizops/internal/models"
)

type paymentRequest struct {
	Card models.CardInput `json:"card"`
}

// createPayment takes a manually entered card, runs the cosmetic pre-check
// and asks the processor for an intent covering the invoice total. Card
// fields never persist; only the processor's answer is recorded.
func (a *API) createPayment(c *gin.Context) {
	invoice, ok := a.loadInvoice(c)
	if !ok {
		return
	}
	if invoice.Status != models.InvoiceStatusOpen {
		respondBadRequest(c, "invoice is not open for payment")
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid payment payload")
		return
	}

	errs := card.Validate(card.Input{
		Number:         req.Card.Number,
		Expiry:         req.Card.Expiry,
		CVC:            req.Card.CVC,
		CardholderName: req.Card.CardholderName,
	}, time.Now())
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	intent, err := a.processor.CreateIntent(invoice.TotalCents, invoice.Currency, invoice.ID)
	if err != nil {
		respondProviderFailure(c, err)
		return
	}

	payment := models.Payment{
		InvoiceID:   invoice.ID,
		IntentID:    intent.ID,
		AmountCents: intent.AmountCents,
		Currency:    intent.Currency,
		Status:      intent.Status,
	}
	if err := a.payments.Create(&payment); err != nil {
		a.logger.Error("Failed to record payment", zap.Error(err))
		respondInternal(c, "failed to record payment")
		return
	}

	if intent.Status == models.PaymentStatusSucceeded {
		if err := a.invoices.UpdateStatus(invoice.ID, models.InvoiceStatusPaid); err != nil {
			a.logger.Error("Failed to mark invoice paid",
				zap.Int64("invoice_id", invoice.ID),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, payment)
}

func (a *API) listPayments(c *gin.Context) {
	invoice, ok := a.loadInvoice(c)
	if !ok {
		return
	}
	payments, err := a.payments.ListByInvoice(invoice.ID)
	if err != nil {
		respondInternal(c, "failed to list payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
