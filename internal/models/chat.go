package models

import (
	"database/sql"
	"time"
)

// Chat represents a private chat between exactly two users.
// The pair is stored sorted so that User1ID < User2ID.
type Chat struct {
	ID        int       `db:"id" json:"id"`
	User1ID   int       `db:"user1_id" json:"user1_id"`
	User2ID   int       `db:"user2_id" json:"user2_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasParticipant reports whether the user is one of the two members.
func (c Chat) HasParticipant(userID int) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the member that is not userID.
func (c Chat) OtherParticipant(userID int) int {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

func (c Chat) ParticipantIDs() []int {
	return []int{c.User1ID, c.User2ID}
}

// ChatListRow is a chat joined with its latest message and the business
// behind its first linked adspace. Every joined column may be NULL.
type ChatListRow struct {
	Chat

	LastMessageID       sql.NullInt64  `db:"last_message_id"`
	LastMessageSenderID sql.NullInt64  `db:"last_message_sender_id"`
	LastMessageContent  sql.NullString `db:"last_message_content"`
	LastMessageIsRead   sql.NullBool   `db:"last_message_is_read"`
	LastMessageAt       sql.NullTime   `db:"last_message_at"`

	BusinessID      sql.NullInt64  `db:"business_id"`
	BusinessName    sql.NullString `db:"business_name"`
	BusinessLogoURL sql.NullString `db:"business_logo_url"`
}

// LastMessage rebuilds the joined latest message, if any.
func (r ChatListRow) LastMessage() (Message, bool) {
	if !r.LastMessageID.Valid {
		return Message{}, false
	}
	return Message{
		ID:        int(r.LastMessageID.Int64),
		ChatID:    r.ID,
		SenderID:  int(r.LastMessageSenderID.Int64),
		Content:   r.LastMessageContent.String,
		IsRead:    r.LastMessageIsRead.Bool,
		CreatedAt: r.LastMessageAt.Time,
	}, true
}
