package models

import "time"

// PaymentStatus reflects what the processor last told us about an intent
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records a payment attempt against an invoice. The processor owns
// the authoritative state; this row is a local mirror of its last answer.
type Payment struct {
	ID          int64         `json:"id"`
	InvoiceID   int64         `json:"invoice_id"`
	IntentID    string        `json:"intent_id"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	Status      PaymentStatus `json:"status"`
	FailureMsg  string        `json:"failure_msg,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CardInput carries manually entered card fields for the cosmetic pre-check.
// It is transient: validated, forwarded to the processor as an opaque token
// request, and never persisted.
type CardInput struct {
	Number         string `json:"card_number"`
	Expiry         string `json:"expiry_date"`
	CVC            string `json:"cvc"`
	CardholderName string `json:"cardholder_name"`
}
