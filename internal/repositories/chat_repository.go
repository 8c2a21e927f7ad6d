package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrSelfChat     = errors.New("cannot create chat with self")
)

// ChatRepository abstracts chat persistence.
type ChatRepository interface {
	GetChat(ctx context.Context, chatID int) (models.Chat, error)
	FindChatBetween(ctx context.Context, userID int, otherID int) (models.Chat, error)
	CreateChat(ctx context.Context, userID int, otherID int, adspaceID optional.Value[int]) (models.Chat, bool, error)
	ListChatsForUser(ctx context.Context, userID int) ([]models.ChatListRow, error)
	ListChatAdspaces(ctx context.Context, chatID int) ([]models.ChatAdspace, error)
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func sortedPair(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// GetChat fetches a chat by id.
func (r *ChatRepo) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	var chat models.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT id, user1_id, user2_id, created_at FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	return chat, err
}

// FindChatBetween returns the chat shared by two users, in either order.
func (r *ChatRepo) FindChatBetween(ctx context.Context, userID int, otherID int) (models.Chat, error) {
	user1, user2 := sortedPair(userID, otherID)
	var chat models.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT id, user1_id, user2_id, created_at FROM chats WHERE user1_id=$1 AND user2_id=$2`, user1, user2)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	return chat, err
}

// CreateChat inserts a chat for the pair and links the adspace when given.
// A concurrent insert of the same pair resolves to the existing row; the
// returned flag reports whether this call created it.
func (r *ChatRepo) CreateChat(ctx context.Context, userID int, otherID int, adspaceID optional.Value[int]) (models.Chat, bool, error) {
	if userID == otherID {
		return models.Chat{}, false, ErrSelfChat
	}
	user1, user2 := sortedPair(userID, otherID)

	var link sql.NullInt64
	if id, ok := adspaceID.Get(); ok {
		link = sql.NullInt64{Int64: int64(id), Valid: true}
	}

	query := `WITH c AS (
            INSERT INTO chats (user1_id, user2_id) VALUES ($1, $2)
            ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
            RETURNING id, user1_id, user2_id, created_at, (xmax = 0) AS inserted
        ), l AS (
            INSERT INTO chat_adspaces (chat_id, adspace_id)
            SELECT id, $3::int FROM c WHERE inserted AND $3::int IS NOT NULL
            ON CONFLICT DO NOTHING
        )
        SELECT id, user1_id, user2_id, created_at, inserted FROM c`

	var row struct {
		models.Chat
		Inserted bool `db:"inserted"`
	}
	if err := r.db.QueryRowxContext(ctx, query, user1, user2, link).StructScan(&row); err != nil {
		return models.Chat{}, false, err
	}
	return row.Chat, row.Inserted, nil
}

// ListChatsForUser returns the user's chats with their latest message and
// the business behind the first linked adspace. Order is unspecified.
func (r *ChatRepo) ListChatsForUser(ctx context.Context, userID int) ([]models.ChatListRow, error) {
	query := `SELECT c.id, c.user1_id, c.user2_id, c.created_at,
            lm.id AS last_message_id, lm.sender_id AS last_message_sender_id,
            lm.content AS last_message_content, lm.is_read AS last_message_is_read,
            lm.created_at AS last_message_at,
            b.id AS business_id, b.name AS business_name, b.logo_url AS business_logo_url
        FROM chats c
        LEFT JOIN LATERAL (
            SELECT id, sender_id, content, is_read, created_at FROM messages
            WHERE chat_id = c.id ORDER BY created_at DESC, id DESC LIMIT 1
        ) lm ON TRUE
        LEFT JOIN LATERAL (
            SELECT a.business_id FROM chat_adspaces ca JOIN adspaces a ON a.id = ca.adspace_id
            WHERE ca.chat_id = c.id ORDER BY ca.linked_at ASC, ca.adspace_id ASC LIMIT 1
        ) fa ON TRUE
        LEFT JOIN businesses b ON b.id = fa.business_id
        WHERE c.user1_id=$1 OR c.user2_id=$1`

	var rows []models.ChatListRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListChatAdspaces returns the adspaces linked to a chat, first linked first.
func (r *ChatRepo) ListChatAdspaces(ctx context.Context, chatID int) ([]models.ChatAdspace, error) {
	query := `SELECT ` + adspaceColumns + `,
            b.id AS resolved_business_id, b.name AS business_name,
            b.logo_url AS business_logo_url, b.owner_id AS business_owner_id
        FROM chat_adspaces ca
        JOIN adspaces a ON a.id = ca.adspace_id
        JOIN adspace_types t ON t.id = a.type_id
        LEFT JOIN businesses b ON b.id = a.business_id
        WHERE ca.chat_id=$1
        ORDER BY ca.linked_at ASC, ca.adspace_id ASC`

	var adspaces []models.ChatAdspace
	if err := r.db.SelectContext(ctx, &adspaces, query, chatID); err != nil {
		return nil, err
	}
	return adspaces, nil
}
