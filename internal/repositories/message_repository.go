package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"adspace-chat/internal/models"
)

const messageColumns = `id, chat_id, sender_id, content, is_read, created_at`

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateChatMessage(ctx context.Context, chatID int, senderID int, content string) (models.Message, error)
	ListChatMessages(ctx context.Context, chatID int) ([]models.Message, error)
	CountUnread(ctx context.Context, chatIDs []int, userID int) (map[int]int, error)
	MarkChatRead(ctx context.Context, chatID int, readerID int) (int, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateChatMessage stores an unread message in a private chat.
func (r *MessageRepo) CreateChatMessage(ctx context.Context, chatID int, senderID int, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (chat_id, sender_id, content) VALUES ($1, $2, $3) RETURNING `+messageColumns, chatID, senderID, content).
		StructScan(&msg)
	return msg, err
}

// ListChatMessages returns the whole history of a chat, oldest first.
func (r *MessageRepo) ListChatMessages(ctx context.Context, chatID int) ([]models.Message, error) {
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, `SELECT `+messageColumns+` FROM messages WHERE chat_id=$1 ORDER BY created_at ASC, id ASC`, chatID)
	return msgs, err
}

// CountUnread returns, per chat, the number of unread messages not sent by
// userID. Chats without unread messages are absent from the map.
func (r *MessageRepo) CountUnread(ctx context.Context, chatIDs []int, userID int) (map[int]int, error) {
	counts := make(map[int]int, len(chatIDs))
	if len(chatIDs) == 0 {
		return counts, nil
	}

	ids := lo.Map(chatIDs, func(id int, _ int) int64 { return int64(id) })
	rows, err := r.db.QueryxContext(ctx, `SELECT chat_id, COUNT(*) FROM messages
        WHERE chat_id = ANY($1) AND is_read = FALSE AND sender_id <> $2
        GROUP BY chat_id`, pq.Array(ids), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var chatID, count int
		if err := rows.Scan(&chatID, &count); err != nil {
			return nil, err
		}
		counts[chatID] = count
	}
	return counts, rows.Err()
}

// MarkChatRead flags every message the reader received in the chat as read.
func (r *MessageRepo) MarkChatRead(ctx context.Context, chatID int, readerID int) (int, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE chat_id=$1 AND sender_id <> $2 AND is_read = FALSE`, chatID, readerID)
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	return int(count), err
}
