package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// InvoiceRepository handles invoice and line-item database operations.
// Line items are always written together with their invoice inside one
// transaction so the persisted totals never drift from the rows.
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{db: db, logger: logger}
}

// Create inserts an invoice with its line items
func (r *InvoiceRepository) Create(tx *sql.Tx, inv *models.Invoice) error {
	query := `
		INSERT INTO invoices (
			number, customer_id, status, currency, tax_percent,
			subtotal_cents, tax_cents, total_cents, document_path,
			payment_link, issued_at, due_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.Exec(query,
		inv.Number,
		inv.CustomerID,
		inv.Status,
		inv.Currency,
		inv.TaxPercent,
		inv.SubtotalCents,
		inv.TaxCents,
		inv.TotalCents,
		inv.DocumentPath,
		inv.PaymentLink,
		inv.IssuedAt,
		inv.DueAt,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	inv.ID = id

	return r.insertItems(tx, inv)
}

// ReplaceItems rewrites the invoice's line items and persisted totals
func (r *InvoiceRepository) ReplaceItems(tx *sql.Tx, inv *models.Invoice) error {
	if _, err := tx.Exec("DELETE FROM invoice_items WHERE invoice_id = ?", inv.ID); err != nil {
		return fmt.Errorf("failed to clear invoice items: %w", err)
	}
	if err := r.insertItems(tx, inv); err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET tax_percent = ?, subtotal_cents = ?, tax_cents = ?, total_cents = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := tx.Exec(query,
		inv.TaxPercent, inv.SubtotalCents, inv.TaxCents, inv.TotalCents, inv.ID,
	); err != nil {
		return fmt.Errorf("failed to update invoice totals: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) insertItems(tx *sql.Tx, inv *models.Invoice) error {
	query := `
		INSERT INTO invoice_items (
			invoice_id, position, description, quantity, unit_price_cents, total_cents
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	for i := range inv.Items {
		item := &inv.Items[i]
		item.InvoiceID = inv.ID
		item.Position = i

		result, err := tx.Exec(query,
			item.InvoiceID, item.Position, item.Description,
			item.Quantity, item.UnitPriceCents, item.TotalCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item %d: %w", i, err)
		}
		if id, err := result.LastInsertId(); err == nil {
			item.ID = id
		}
	}
	return nil
}

// GetByID retrieves an invoice with its line items
func (r *InvoiceRepository) GetByID(id int64) (*models.Invoice, error) {
	query := `
		SELECT id, number, customer_id, status, currency, tax_percent,
			subtotal_cents, tax_cents, total_cents, document_path,
			payment_link, issued_at, due_at, created_at, updated_at
		FROM invoices
		WHERE id = ?
	`

	var inv models.Invoice
	var issuedAt, dueAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.Status, &inv.Currency,
		&inv.TaxPercent, &inv.SubtotalCents, &inv.TaxCents, &inv.TotalCents,
		&inv.DocumentPath, &inv.PaymentLink, &issuedAt, &dueAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %d: %w", id, err)
	}

	if issuedAt.Valid {
		inv.IssuedAt = &issuedAt.Time
	}
	if dueAt.Valid {
		inv.DueAt = &dueAt.Time
	}

	items, err := r.itemsFor(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (r *InvoiceRepository) itemsFor(invoiceID int64) ([]models.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, position, description, quantity, unit_price_cents, total_cents
		FROM invoice_items
		WHERE invoice_id = ?
		ORDER BY position
	`

	rows, err := r.db.Query(query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	var items []models.InvoiceLineItem
	for rows.Next() {
		var item models.InvoiceLineItem
		if err := rows.Scan(
			&item.ID, &item.InvoiceID, &item.Position, &item.Description,
			&item.Quantity, &item.UnitPriceCents, &item.TotalCents,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// List returns invoice headers (no line items), optionally filtered by
// customer and/or status. Zero values mean no filter.
func (r *InvoiceRepository) List(customerID int64, status models.InvoiceStatus) ([]models.Invoice, error) {
	query := `
		SELECT id, number, customer_id, status, currency, tax_percent,
			subtotal_cents, tax_cents, total_cents, document_path,
			payment_link, issued_at, due_at, created_at, updated_at
		FROM invoices
		WHERE (? = 0 OR customer_id = ?)
			AND (? = '' OR status = ?)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query, customerID, customerID, string(status), string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var issuedAt, dueAt sql.NullTime
		if err := rows.Scan(
			&inv.ID, &inv.Number, &inv.CustomerID, &inv.Status, &inv.Currency,
			&inv.TaxPercent, &inv.SubtotalCents, &inv.TaxCents, &inv.TotalCents,
			&inv.DocumentPath, &inv.PaymentLink, &issuedAt, &dueAt,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if issuedAt.Valid {
			inv.IssuedAt = &issuedAt.Time
		}
		if dueAt.Valid {
			inv.DueAt = &dueAt.Time
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus moves an invoice to a new lifecycle status
func (r *InvoiceRepository) UpdateStatus(id int64, status models.InvoiceStatus) error {
	result, err := r.db.Exec(
		"UPDATE invoices SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("invoice %d not found", id)
	}
	return nil
}

// MarkFinalized records the issue time, document path and payment link
// written at finalization
func (r *InvoiceRepository) MarkFinalized(id int64, issuedAt time.Time, documentPath, paymentLink string) error {
	query := `
		UPDATE invoices
		SET status = ?, issued_at = ?, document_path = ?, payment_link = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query, models.InvoiceStatusOpen, issuedAt, documentPath, paymentLink, id)
	if err != nil {
		return fmt.Errorf("failed to finalize invoice %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("invoice %d not found", id)
	}
	return nil
}

// Delete removes an invoice and, via FK cascade, its line items
func (r *InvoiceRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("invoice %d not found", id)
	}
	return nil
}
