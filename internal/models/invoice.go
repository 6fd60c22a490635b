package models

import "time"

// InvoiceStatus tracks where an invoice sits in its collection lifecycle
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusOpen  InvoiceStatus = "open"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// Invoice is an accounts-receivable invoice. All monetary fields are integer
// minor units (cents); the derived totals are recomputed from the line items
// on every mutation and persisted alongside them.
type Invoice struct {
	ID            int64             `json:"id"`
	Number        string            `json:"number"`
	CustomerID    int64             `json:"customer_id"`
	Status        InvoiceStatus     `json:"status"`
	Currency      string            `json:"currency"`
	TaxPercent    float64           `json:"tax_percent"`
	SubtotalCents int64             `json:"subtotal_cents"`
	TaxCents      int64             `json:"tax_cents"`
	TotalCents    int64             `json:"total_cents"`
	Items         []InvoiceLineItem `json:"items"`
	DocumentPath  string            `json:"document_path,omitempty"`
	PaymentLink   string            `json:"payment_link,omitempty"`
	IssuedAt      *time.Time        `json:"issued_at,omitempty"`
	DueAt         *time.Time        `json:"due_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// InvoiceLineItem is one billable row of an invoice
type InvoiceLineItem struct {
	ID             int64  `json:"id"`
	InvoiceID      int64  `json:"invoice_id"`
	Position       int    `json:"position"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}
