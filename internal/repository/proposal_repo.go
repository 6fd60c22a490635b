package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// ProposalRepository handles proposal database operations
type ProposalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *sql.DB, logger *zap.Logger) *ProposalRepository {
	return &ProposalRepository{db: db, logger: logger}
}

// Create inserts a new proposal, generating an ID when none is supplied
func (r *ProposalRepository) Create(p *models.Proposal) error {
	if p.ID == "" {
		p.ID = newID("prop")
	}
	if p.Status == "" {
		p.Status = "submitted"
	}

	query := `
		INSERT INTO proposals (id, rfp_id, vendor_id, company, email,
			amount_cents, currency, summary, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query,
		p.ID, p.RFPID, p.VendorID, p.Company, p.Email,
		p.AmountCents, p.Currency, p.Summary, p.Status,
	); err != nil {
		r.logger.Error("Failed to create proposal", zap.Error(err))
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

// GetByID retrieves a proposal by its ID
func (r *ProposalRepository) GetByID(id string) (*models.Proposal, error) {
	query := `
		SELECT id, rfp_id, vendor_id, company, email, amount_cents,
			currency, summary, status, created_at
		FROM proposals
		WHERE id = ?
	`

	var p models.Proposal
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.RFPID, &p.VendorID, &p.Company, &p.Email,
		&p.AmountCents, &p.Currency, &p.Summary, &p.Status, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s: %w", id, err)
	}
	return &p, nil
}

// ListByRFP returns all proposals submitted against an RFP
func (r *ProposalRepository) ListByRFP(rfpID string) ([]models.Proposal, error) {
	query := `
		SELECT id, rfp_id, vendor_id, company, email, amount_cents,
			currency, summary, status, created_at
		FROM proposals
		WHERE rfp_id = ?
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, rfpID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(
			&p.ID, &p.RFPID, &p.VendorID, &p.Company, &p.Email,
			&p.AmountCents, &p.Currency, &p.Summary, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// AssignVendor records the vendor a proposal was matched to
func (r *ProposalRepository) AssignVendor(proposalID, vendorID string) error {
	result, err := r.db.Exec(
		"UPDATE proposals SET vendor_id = ? WHERE id = ?",
		vendorID, proposalID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign vendor to proposal %s: %w", proposalID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("proposal %s not found", proposalID)
	}
	return nil
}
