package repository

import (
	"context"
	"database/sql"

	"github.com/peakform/AthleteHubBack/internal/models"
)

type ChannelRepository struct {
	db DBTX
}

func NewChannelRepository(db DBTX) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// GetOrCreateDirect returns the direct channel between two users, creating it
// and its memberships on first use. The pair is normalized so (a,b) and (b,a)
// map to the same row.
func (r *ChannelRepository) GetOrCreateDirect(ctx context.Context, userA, userB int64) (*models.Channel, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	query := `
		INSERT INTO channels (type, direct_user_a, direct_user_b)
		VALUES ('direct', $1, $2)
		ON CONFLICT (direct_user_a, direct_user_b)
		DO UPDATE SET type = channels.type
		RETURNING id, type, name, created_at
	`
	var channel models.Channel
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&channel.ID,
		&channel.Type,
		&channel.Name,
		&channel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO channel_members (channel_id, user_id)
		VALUES ($1, $2), ($1, $3)
		ON CONFLICT DO NOTHING
	`, channel.ID, userA, userB)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) GetByID(ctx context.Context, channelID int64) (*models.Channel, error) {
	query := `SELECT id, type, name, created_at FROM channels WHERE id = $1`
	var channel models.Channel
	err := r.db.QueryRow(ctx, query, channelID).Scan(
		&channel.ID,
		&channel.Type,
		&channel.Name,
		&channel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) GetGeneral(ctx context.Context) (*models.Channel, error) {
	query := `SELECT id, type, name, created_at FROM channels WHERE type = 'group' AND name = $1`
	var channel models.Channel
	err := r.db.QueryRow(ctx, query, models.GeneralChannelName).Scan(
		&channel.ID,
		&channel.Type,
		&channel.Name,
		&channel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// IsMember reports channel visibility: group channels are open to everyone,
// direct channels only to their two members.
func (r *ChannelRepository) IsMember(ctx context.Context, channelID, userID int64) (bool, error) {
	var visible bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM channels c
			WHERE c.id = $1
			  AND (c.type = 'group' OR EXISTS (
				SELECT 1 FROM channel_members m
				WHERE m.channel_id = c.id AND m.user_id = $2
			  ))
		)
	`, channelID, userID).Scan(&visible)
	return visible, err
}

func (r *ChannelRepository) MemberIDs(ctx context.Context, channelID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM channel_members WHERE channel_id = $1 ORDER BY user_id
	`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ChannelRepository) ListForUser(ctx context.Context, userID int64) ([]models.ChannelSummary, error) {
	query := `
		SELECT
			c.id, c.type, c.name, c.created_at,
			lm.id, lm.channel_id, lm.sender_id, lm.sender_name, lm.content, lm.created_at
		FROM channels c
		LEFT JOIN LATERAL (
			SELECT m.id, m.channel_id, m.sender_id, u.full_name AS sender_name, m.content, m.created_at
			FROM messages m
			JOIN users u ON u.id = m.sender_id
			WHERE m.channel_id = c.id
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.type = 'group'
		   OR EXISTS (
			SELECT 1 FROM channel_members cm
			WHERE cm.channel_id = c.id AND cm.user_id = $1
		   )
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC, c.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ChannelSummary, 0)
	for rows.Next() {
		var summary models.ChannelSummary
		var messageID sql.NullInt64
		var messageChannelID sql.NullInt64
		var messageSenderID sql.NullInt64
		var messageSenderName sql.NullString
		var messageContent sql.NullString
		var messageCreatedAt sql.NullTime

		if err := rows.Scan(
			&summary.ID,
			&summary.Type,
			&summary.Name,
			&summary.CreatedAt,
			&messageID,
			&messageChannelID,
			&messageSenderID,
			&messageSenderName,
			&messageContent,
			&messageCreatedAt,
		); err != nil {
			return nil, err
		}

		if messageID.Valid {
			summary.LastMessage = &models.ChatMessage{
				ID:         messageID.Int64,
				ChannelID:  messageChannelID.Int64,
				SenderID:   messageSenderID.Int64,
				SenderName: messageSenderName.String,
				Content:    messageContent.String,
				CreatedAt:  messageCreatedAt.Time,
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
