package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// VendorRepository handles vendor database operations
type VendorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *sql.DB, logger *zap.Logger) *VendorRepository {
	return &VendorRepository{db: db, logger: logger}
}

// Create inserts a new vendor, generating an ID when none is supplied
func (r *VendorRepository) Create(v *models.Vendor) error {
	if v.ID == "" {
		v.ID = newID("v")
	}

	query := `
		INSERT INTO vendors (id, name, email, phone, category, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, v.ID, v.Name, v.Email, v.Phone, v.Category, v.Rating); err != nil {
		r.logger.Error("Failed to create vendor", zap.Error(err))
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// GetByID retrieves a vendor by its ID
func (r *VendorRepository) GetByID(id string) (*models.Vendor, error) {
	query := `
		SELECT id, name, email, phone, category, rating, created_at, updated_at
		FROM vendors
		WHERE id = ?
	`

	var v models.Vendor
	err := r.db.QueryRow(query, id).Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Category, &v.Rating,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor %s: %w", id, err)
	}
	return &v, nil
}

// List returns all vendors in creation order. The matcher depends on this
// order being stable: the first matching vendor wins.
func (r *VendorRepository) List() ([]models.Vendor, error) {
	query := `
		SELECT id, name, email, phone, category, rating, created_at, updated_at
		FROM vendors
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Email, &v.Phone, &v.Category, &v.Rating,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// Update rewrites the mutable vendor fields
func (r *VendorRepository) Update(v *models.Vendor) error {
	query := `
		UPDATE vendors
		SET name = ?, email = ?, phone = ?, category = ?, rating = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query, v.Name, v.Email, v.Phone, v.Category, v.Rating, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vendor %s: %w", v.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("vendor %s not found", v.ID)
	}
	return nil
}

// Delete removes a vendor
func (r *VendorRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor %s: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("vendor %s not found", id)
	}
	return nil
}
