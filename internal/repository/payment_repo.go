package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

// Create inserts a payment record and sets its generated ID
func (r *PaymentRepository) Create(p *models.Payment) error {
	query := `
		INSERT INTO payments (invoice_id, intent_id, amount_cents, currency, status, failure_msg)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		p.InvoiceID, p.IntentID, p.AmountCents, p.Currency, p.Status, p.FailureMsg,
	)
	if err != nil {
		r.logger.Error("Failed to create payment", zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// UpdateStatus records what the processor reported for an intent
func (r *PaymentRepository) UpdateStatus(intentID string, status models.PaymentStatus, failureMsg string) error {
	result, err := r.db.Exec(`
		UPDATE payments
		SET status = ?, failure_msg = ?, updated_at = CURRENT_TIMESTAMP
		WHERE intent_id = ?
	`, status, failureMsg, intentID)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", intentID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("payment intent %s not found", intentID)
	}
	return nil
}

// ListByInvoice returns payment attempts against an invoice, newest first
func (r *PaymentRepository) ListByInvoice(invoiceID int64) ([]models.Payment, error) {
	query := `
		SELECT id, invoice_id, intent_id, amount_cents, currency, status,
			failure_msg, created_at, updated_at
		FROM payments
		WHERE invoice_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.IntentID, &p.AmountCents, &p.Currency,
			&p.Status, &p.FailureMsg, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
