package models

import "time"

type JournalEntry struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Mood      *string        `json:"mood"`
	Tags      *[]string      `json:"tags"`
	Media     []JournalMedia `json:"media"`
	CreatedAt time.Time      `json:"created_at"`
}

type JournalMedia struct {
	ID      int64  `json:"id"`
	EntryID int64  `json:"entry_id"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	Name    string `json:"name"`
}
