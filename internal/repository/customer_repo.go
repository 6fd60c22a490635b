package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// CustomerRepository handles customer database operations
type CustomerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB, logger *zap.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger}
}

// Create inserts a new customer and sets its generated ID
func (r *CustomerRepository) Create(c *models.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, address, notes)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, c.Name, c.Email, c.Phone, c.Address, c.Notes)
	if err != nil {
		r.logger.Error("Failed to create customer", zap.Error(err))
		return fmt.Errorf("failed to create customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = id
	return nil
}

// GetByID retrieves a customer by its ID
func (r *CustomerRepository) GetByID(id int64) (*models.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, notes, created_at, updated_at
		FROM customers
		WHERE id = ?
	`

	var c models.Customer
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return &c, nil
}

// List returns all customers ordered by name
func (r *CustomerRepository) List() ([]models.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, notes, created_at, updated_at
		FROM customers
		ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update rewrites the mutable customer fields
func (r *CustomerRepository) Update(c *models.Customer) error {
	query := `
		UPDATE customers
		SET name = ?, email = ?, phone = ?, address = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query, c.Name, c.Email, c.Phone, c.Address, c.Notes, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", c.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("customer %d not found", c.ID)
	}
	return nil
}

// Delete removes a customer
func (r *CustomerRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("customer %d not found", id)
	}
	return nil
}
