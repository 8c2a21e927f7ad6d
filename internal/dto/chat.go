package dto

import (
	"time"

	"github.com/samber/lo"

	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

type Message struct {
	ID        int       `json:"id"`
	ChatID    int       `json:"chat_id"`
	SenderID  int       `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

// MessageResult is returned to the author of a freshly sent message.
type MessageResult struct {
	ID         int       `json:"id"`
	Content    string    `json:"content"`
	SenderID   int       `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"is_read"`
}

// BusinessContext identifies the business a chat is about.
type BusinessContext struct {
	ID      int                    `json:"id"`
	Name    string                 `json:"name"`
	LogoURL optional.Value[string] `json:"logo_url,omitzero"`
}

type ChatSummary struct {
	ID           int                             `json:"id"`
	Participants [2]User                         `json:"participants"`
	LastMessage  optional.Value[Message]         `json:"last_message,omitzero"`
	Business     optional.Value[BusinessContext] `json:"business,omitzero"`
	UnreadCount  int                             `json:"unread_count"`
}

type ChatDetail struct {
	ID                int             `json:"id"`
	Participants      [2]User         `json:"participants"`
	Messages          []Message       `json:"messages"`
	Business          BusinessContext `json:"business"`
	ConnectedAdspaces []AdspaceCard   `json:"connected_adspaces"`
}

type ChatRef struct {
	ID int `json:"id"`
}

func MapMessage(m models.Message) Message {
	return Message{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Timestamp: m.CreatedAt,
		IsRead:    m.IsRead,
	}
}

func MapMessageResult(m models.Message, senderName string) MessageResult {
	return MessageResult{
		ID:         m.ID,
		Content:    m.Content,
		SenderID:   m.SenderID,
		SenderName: senderName,
		Timestamp:  m.CreatedAt,
		IsRead:     m.IsRead,
	}
}

func MapParticipants(chat models.Chat, users map[int]models.User) [2]User {
	return [2]User{mapKnownUser(chat.User1ID, users), mapKnownUser(chat.User2ID, users)}
}

// MapChatSummary maps a joined chat row; unread is the caller's unread count.
func MapChatSummary(row models.ChatListRow, users map[int]models.User, unread int) ChatSummary {
	summary := ChatSummary{
		ID:           row.ID,
		Participants: MapParticipants(row.Chat, users),
		UnreadCount:  unread,
	}
	if last, ok := row.LastMessage(); ok {
		summary.LastMessage = optional.Some(MapMessage(last))
	}
	if row.BusinessID.Valid {
		summary.Business = optional.Some(BusinessContext{
			ID:      int(row.BusinessID.Int64),
			Name:    row.BusinessName.String,
			LogoURL: optional.FromNullString(row.BusinessLogoURL),
		})
	}
	return summary
}

// MapBusinessContext returns the business behind a linked adspace, if resolved.
func MapBusinessContext(a models.ChatAdspace) optional.Value[BusinessContext] {
	if !a.HasBusiness() {
		return optional.None[BusinessContext]()
	}
	return optional.Some(BusinessContext{
		ID:      int(a.ResolvedBusinessID.Int64),
		Name:    a.BusinessName.String,
		LogoURL: optional.FromNullString(a.BusinessLogoURL),
	})
}

func MapChatDetail(chat models.Chat, users map[int]models.User, messages []models.Message, business BusinessContext, adspaces []models.ChatAdspace) ChatDetail {
	return ChatDetail{
		ID:           chat.ID,
		Participants: MapParticipants(chat, users),
		Messages:     lo.Map(messages, func(m models.Message, _ int) Message { return MapMessage(m) }),
		Business:     business,
		ConnectedAdspaces: lo.Map(adspaces, func(a models.ChatAdspace, _ int) AdspaceCard {
			return MapAdspaceCard(a.Adspace)
		}),
	}
}
