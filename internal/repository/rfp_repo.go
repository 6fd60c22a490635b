package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// RFPRepository handles RFP database operations
type RFPRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRFPRepository creates a new RFP repository
func NewRFPRepository(db *sql.DB, logger *zap.Logger) *RFPRepository {
	return &RFPRepository{db: db, logger: logger}
}

// Create inserts a new RFP, generating an ID when none is supplied
func (r *RFPRepository) Create(rfp *models.RFP) error {
	if rfp.ID == "" {
		rfp.ID = newID("rfp")
	}
	if rfp.Status == "" {
		rfp.Status = models.RFPStatusOpen
	}

	query := `
		INSERT INTO rfps (id, title, description, category, budget_cents,
			currency, status, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query,
		rfp.ID, rfp.Title, rfp.Description, rfp.Category,
		rfp.BudgetCents, rfp.Currency, rfp.Status, rfp.Deadline,
	); err != nil {
		r.logger.Error("Failed to create RFP", zap.Error(err))
		return fmt.Errorf("failed to create rfp: %w", err)
	}
	return nil
}

// GetByID retrieves an RFP by its ID
func (r *RFPRepository) GetByID(id string) (*models.RFP, error) {
	query := `
		SELECT id, title, description, category, budget_cents, currency,
			status, deadline, created_at
		FROM rfps
		WHERE id = ?
	`

	var rfp models.RFP
	var deadline sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&rfp.ID, &rfp.Title, &rfp.Description, &rfp.Category,
		&rfp.BudgetCents, &rfp.Currency, &rfp.Status, &deadline, &rfp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rfp %s: %w", id, err)
	}
	if deadline.Valid {
		rfp.Deadline = &deadline.Time
	}
	return &rfp, nil
}

// List returns all RFPs, newest first
func (r *RFPRepository) List() ([]models.RFP, error) {
	query := `
		SELECT id, title, description, category, budget_cents, currency,
			status, deadline, created_at
		FROM rfps
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rfps: %w", err)
	}
	defer rows.Close()

	var rfps []models.RFP
	for rows.Next() {
		var rfp models.RFP
		var deadline sql.NullTime
		if err := rows.Scan(
			&rfp.ID, &rfp.Title, &rfp.Description, &rfp.Category,
			&rfp.BudgetCents, &rfp.Currency, &rfp.Status, &deadline, &rfp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rfp: %w", err)
		}
		if deadline.Valid {
			rfp.Deadline = &deadline.Time
		}
		rfps = append(rfps, rfp)
	}
	return rfps, rows.Err()
}

// UpdateStatus moves an RFP to a new lifecycle status
func (r *RFPRepository) UpdateStatus(id string, status models.RFPStatus) error {
	result, err := r.db.Exec("UPDATE rfps SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update rfp status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("rfp %s not found", id)
	}
	return nil
}
