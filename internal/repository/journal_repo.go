package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
)

type JournalRepository struct {
	db DBTX
}

func NewJournalRepository(db DBTX) *JournalRepository {
	return &JournalRepository{db: db}
}

type CreateJournalEntryInput struct {
	UserID  int64
	Title   string
	Content string
	Mood    *string
	Tags    *[]string
}

func (r *JournalRepository) Create(ctx context.Context, input CreateJournalEntryInput) (*models.JournalEntry, error) {
	query := `
		INSERT INTO journal_entries (user_id, title, content, mood, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, content, mood, tags, created_at
	`
	var entry models.JournalEntry
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.Title,
		input.Content,
		input.Mood,
		input.Tags,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Mood,
		&entry.Tags,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Media = make([]models.JournalMedia, 0)
	return &entry, nil
}

// GetByIDForUser scopes lookups to the owning athlete so a foreign entry id
// behaves like a missing one.
func (r *JournalRepository) GetByIDForUser(ctx context.Context, entryID, userID int64) (*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, title, content, mood, tags, created_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2
	`
	var entry models.JournalEntry
	err := r.db.QueryRow(ctx, query, entryID, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Mood,
		&entry.Tags,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	media, err := r.listMedia(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Media = media
	return &entry, nil
}

func (r *JournalRepository) ListByUserID(ctx context.Context, userID int64) ([]models.JournalEntry, error) {
	query := `
		SELECT id, user_id, title, content, mood, tags, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		var entry models.JournalEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Content,
			&entry.Mood,
			&entry.Tags,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entry.Media = make([]models.JournalMedia, 0)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		media, err := r.listMedia(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Media = media
	}
	return entries, nil
}

func (r *JournalRepository) DeleteForUser(ctx context.Context, entryID, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *JournalRepository) AddMedia(
	ctx context.Context,
	entryID int64,
	url, mediaType, name string,
) (*models.JournalMedia, error) {
	query := `
		INSERT INTO journal_media (entry_id, url, type, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, entry_id, url, type, name
	`
	var media models.JournalMedia
	err := r.db.QueryRow(ctx, query, entryID, url, mediaType, name).Scan(
		&media.ID,
		&media.EntryID,
		&media.URL,
		&media.Type,
		&media.Name,
	)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *JournalRepository) listMedia(ctx context.Context, entryID int64) ([]models.JournalMedia, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, entry_id, url, type, name FROM journal_media WHERE entry_id = $1 ORDER BY id
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := make([]models.JournalMedia, 0)
	for rows.Next() {
		var m models.JournalMedia
		if err := rows.Scan(&m.ID, &m.EntryID, &m.URL, &m.Type, &m.Name); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}
