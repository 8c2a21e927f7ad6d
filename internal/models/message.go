package models

import "time"

// Message represents a chat message.
type Message struct {
	ID        int       `db:"id" json:"id"`
	ChatID    int       `db:"chat_id" json:"chat_id"`
	SenderID  int       `db:"sender_id" json:"sender_id"`
	Content   string    `db:"content" json:"content"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MessageEvent is published to the event exchange.
type MessageEvent struct {
	Type     string  `json:"type"`
	ChatID   int     `json:"chat_id"`
	Message  Message `json:"message"`
	AutoSent bool    `json:"auto_sent"`
}
