package models

import "time"

const (
	ChannelGroup  = "group"
	ChannelDirect = "direct"

	// GeneralChannelName is the seeded group channel every user belongs to.
	GeneralChannelName = "general"
)

type Channel struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Name      *string   `json:"name"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID         int64     `json:"id"`
	ChannelID  int64     `json:"channel_id"`
	SenderID   int64     `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChannelSummary struct {
	Channel
	LastMessage *ChatMessage `json:"last_message,omitempty"`
}

type ChatUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
