package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// MessageRepository mirrors chat messages locally so conversation history
// survives provider outages and stays queryable.
type MessageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sql.DB, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{db: db, logger: logger}
}

// Create inserts a message and sets its generated ID
func (r *MessageRepository) Create(m *models.Message) error {
	query := `
		INSERT INTO messages (channel_key, sender, body, provider_ts)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, m.ChannelKey, m.Sender, m.Body, m.ProviderTS)
	if err != nil {
		r.logger.Error("Failed to create message", zap.Error(err))
		return fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	m.ID = id
	return nil
}

// ListByChannel returns messages on a channel in send order, capped at limit
func (r *MessageRepository) ListByChannel(channelKey string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, channel_key, sender, body, provider_ts, created_at
		FROM messages
		WHERE channel_key = ?
		ORDER BY created_at, id
		LIMIT ?
	`

	rows, err := r.db.Query(query, channelKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID, &m.ChannelKey, &m.Sender, &m.Body, &m.ProviderTS, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
