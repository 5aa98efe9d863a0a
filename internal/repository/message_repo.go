package repository

import (
	"context"

	"github.com/peakform/AthleteHubBack/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(
	ctx context.Context,
	channelID int64,
	senderID int64,
	content string,
) (*models.ChatMessage, error) {
	query := `
		WITH inserted AS (
			INSERT INTO messages (channel_id, sender_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, channel_id, sender_id, content, created_at
		)
		SELECT i.id, i.channel_id, i.sender_id, u.full_name, i.content, i.created_at
		FROM inserted i
		JOIN users u ON u.id = i.sender_id
	`

	var message models.ChatMessage
	err := r.db.QueryRow(ctx, query, channelID, senderID, content).Scan(
		&message.ID,
		&message.ChannelID,
		&message.SenderID,
		&message.SenderName,
		&message.Content,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) ListByChannel(
	ctx context.Context,
	channelID int64,
	limit int,
	offset int,
) ([]models.ChatMessage, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE channel_id = $1
	`, channelID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT m.id, m.channel_id, m.sender_id, u.full_name, m.content, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.channel_id = $1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, channelID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var message models.ChatMessage
		if err := rows.Scan(
			&message.ID,
			&message.ChannelID,
			&message.SenderID,
			&message.SenderName,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
