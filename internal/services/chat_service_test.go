package services

import (
	"context"
	"database/sql"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adspace-chat/internal/autoresponder"
	"adspace-chat/internal/mocks"
	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
	"adspace-chat/internal/queue"
	"adspace-chat/internal/repositories"
)

type chatFixture struct {
	chats      *mocks.ChatRepositoryMock
	messages   *mocks.MessageRepositoryMock
	users      *mocks.UserRepositoryMock
	businesses *mocks.BusinessRepositoryMock
	scheduler  *mocks.SchedulerMock
	events     *mocks.EventPublisherMock
	service    *ChatService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	responder, err := autoresponder.New(autoresponder.DefaultKeywords)
	require.NoError(t, err)

	f := &chatFixture{
		chats:      new(mocks.ChatRepositoryMock),
		messages:   new(mocks.MessageRepositoryMock),
		users:      new(mocks.UserRepositoryMock),
		businesses: new(mocks.BusinessRepositoryMock),
		scheduler:  new(mocks.SchedulerMock),
		events:     new(mocks.EventPublisherMock),
	}
	f.service = NewChatService(ChatServiceDeps{
		Chats:      f.chats,
		Messages:   f.messages,
		Users:      f.users,
		Businesses: f.businesses,
		Responder:  responder,
		Scheduler:  f.scheduler,
		Events:     f.events,
		ReplyDelay: time.Second,
	})
	return f
}

func (f *chatFixture) assertExpectations(t *testing.T) {
	f.chats.AssertExpectations(t)
	f.messages.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.businesses.AssertExpectations(t)
	f.scheduler.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

var (
	renter = Caller{ID: 1, Name: "Anna"}
	owner  = Caller{ID: 2, Name: "Bartek"}
)

func listRow(chatID int, lastAt time.Time) models.ChatListRow {
	row := models.ChatListRow{Chat: models.Chat{ID: chatID, User1ID: 1, User2ID: 2}}
	if !lastAt.IsZero() {
		row.LastMessageID = sql.NullInt64{Int64: int64(chatID * 10), Valid: true}
		row.LastMessageSenderID = sql.NullInt64{Int64: 2, Valid: true}
		row.LastMessageContent = sql.NullString{String: "hej", Valid: true}
		row.LastMessageAt = sql.NullTime{Time: lastAt, Valid: true}
	}
	return row
}

func linkedAdspace(price float64, barter bool) models.ChatAdspace {
	return models.ChatAdspace{
		Adspace: models.Adspace{
			ID:                5,
			BusinessID:        9,
			Name:              "Witryna",
			PricePerWeek:      sql.NullFloat64{Float64: price, Valid: true},
			IsBarterAvailable: barter,
		},
		ResolvedBusinessID: sql.NullInt64{Int64: 9, Valid: true},
		BusinessName:       sql.NullString{String: "Kawiarnia", Valid: true},
		BusinessOwnerID:    sql.NullInt64{Int64: 2, Valid: true},
	}
}

func TestChatServiceListSortsByLastMessage(t *testing.T) {
	f := newChatFixture(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.ChatListRow{
		listRow(1, time.Time{}),
		listRow(2, base),
		listRow(3, time.Time{}),
		listRow(4, base.Add(time.Hour)),
	}

	f.chats.On("ListChatsForUser", mock.Anything, 1).Return(rows, nil).Once()
	f.messages.On("CountUnread", mock.Anything, []int{1, 2, 3, 4}, 1).Return(map[int]int{2: 3}, nil).Once()
	f.users.On("GetUsers", mock.Anything, mock.Anything).Return([]models.User{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Bartek"}}, nil).Once()

	got, err := f.service.List(context.Background(), renter)
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, []int{4, 2, 1, 3}, []int{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	assert.Equal(t, 3, got[1].UnreadCount)
	assert.Equal(t, 0, got[0].UnreadCount)
	assert.False(t, got[2].LastMessage.IsPresent())
	assert.Equal(t, "Bartek", got[0].Participants[1].Name)
	f.assertExpectations(t)
}

func TestChatServiceListRepoError(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("ListChatsForUser", mock.Anything, 1).Return(nil, assert.AnError).Once()

	_, err := f.service.List(context.Background(), renter)
	assert.ErrorIs(t, err, assert.AnError)
	f.assertExpectations(t)
}

func TestChatServiceGetByIDNotFound(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(nil, repositories.ErrChatNotFound).Once()

	_, err := f.service.GetByID(context.Background(), renter, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	f.assertExpectations(t)
}

func TestChatServiceGetByIDForbidden(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 2, User2ID: 3}, nil).Once()

	_, err := f.service.GetByID(context.Background(), renter, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	f.assertExpectations(t)
}

func TestChatServiceGetByIDInvalidState(t *testing.T) {
	tests := []struct {
		name     string
		adspaces []models.ChatAdspace
	}{
		{name: "no adspace", adspaces: []models.ChatAdspace{}},
		{name: "unresolved business", adspaces: []models.ChatAdspace{{Adspace: models.Adspace{ID: 5}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
			f.chats.On("ListChatAdspaces", mock.Anything, 7).Return(tt.adspaces, nil).Once()

			_, err := f.service.GetByID(context.Background(), renter, 7)
			assert.ErrorIs(t, err, ErrInvalidState)
			f.assertExpectations(t)
		})
	}
}

func TestChatServiceGetByIDSuccess(t *testing.T) {
	f := newChatFixture(t)
	chat := models.Chat{ID: 7, User1ID: 1, User2ID: 2}
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		{ID: 1, ChatID: 7, SenderID: 1, Content: "Dzień dobry", CreatedAt: first},
		{ID: 2, ChatID: 7, SenderID: 2, Content: "Witam", CreatedAt: first.Add(time.Minute)},
	}

	f.chats.On("GetChat", mock.Anything, 7).Return(chat, nil).Once()
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{linkedAdspace(500, true)}, nil).Once()
	f.messages.On("ListChatMessages", mock.Anything, 7).Return(msgs, nil).Once()
	f.users.On("GetUsers", mock.Anything, []int{1, 2}).Return([]models.User{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Bartek"}}, nil).Once()

	got, err := f.service.GetByID(context.Background(), owner, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "Kawiarnia", got.Business.Name)
	assert.Equal(t, 9, got.Business.ID)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Dzień dobry", got.Messages[0].Content)
	require.Len(t, got.ConnectedAdspaces, 1)
	assert.Equal(t, optional.Some(500.0), got.ConnectedAdspaces[0].PricePerWeek)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "whitespace", content: " \n\t "},
		{name: "too long", content: strings.Repeat("ż", MaxMessageLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)
			_, err := f.service.SendMessage(context.Background(), renter, 7, tt.content)
			assert.ErrorIs(t, err, ErrValidation)
			f.assertExpectations(t)
		})
	}
}

func TestChatServiceSendMessageAcceptsMaxLength(t *testing.T) {
	f := newChatFixture(t)
	content := strings.Repeat("ż", MaxMessageLength)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
	f.messages.On("CreateChatMessage", mock.Anything, 7, 1, content).Return(models.Message{ID: 1, ChatID: 7, SenderID: 1, Content: content}, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(nil).Once()
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{}, nil).Once()

	_, err := f.service.SendMessage(context.Background(), renter, 7, content)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageForbidden(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 2, User2ID: 3}, nil).Once()

	_, err := f.service.SendMessage(context.Background(), renter, 7, "Jaka jest cena?")
	assert.ErrorIs(t, err, ErrForbidden)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageNotFound(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(nil, repositories.ErrChatNotFound).Once()

	_, err := f.service.SendMessage(context.Background(), renter, 7, "Jaka jest cena?")
	assert.ErrorIs(t, err, ErrNotFound)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageSchedulesAutoReply(t *testing.T) {
	f := newChatFixture(t)
	sentAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
	f.messages.On("CreateChatMessage", mock.Anything, 7, 1, "Czy jest dostępny barter?").
		Return(models.Message{ID: 11, ChatID: 7, SenderID: 1, Content: "Czy jest dostępny barter?", CreatedAt: sentAt}, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(nil).Once()
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{linkedAdspace(500, true)}, nil).Once()
	f.scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(r queue.AutoReply) bool {
		return r.ChatID == 7 && r.SenderID == 2 && strings.Contains(r.Content, "Tak")
	}), time.Second).Return(nil).Once()

	got, err := f.service.SendMessage(context.Background(), renter, 7, "Czy jest dostępny barter?")
	require.NoError(t, err)

	assert.Equal(t, 11, got.ID)
	assert.Equal(t, 1, got.SenderID)
	assert.Equal(t, "Anna", got.SenderName)
	assert.False(t, got.IsRead)
	assert.Equal(t, sentAt, got.Timestamp)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageQuotesPrice(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
	f.messages.On("CreateChatMessage", mock.Anything, 7, 1, "Jaka jest cena?").Return(models.Message{ID: 12, ChatID: 7, SenderID: 1}, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(nil).Once()
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{linkedAdspace(500, true)}, nil).Once()
	f.scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(r queue.AutoReply) bool {
		return r.SenderID == 2 && strings.Contains(r.Content, "500")
	}), time.Second).Return(nil).Once()

	_, err := f.service.SendMessage(context.Background(), renter, 7, "  Jaka jest cena?  ")
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageWithoutMatchSchedulesNothing(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
	f.messages.On("CreateChatMessage", mock.Anything, 7, 1, "cześć").Return(models.Message{ID: 13, ChatID: 7, SenderID: 1}, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(nil).Once()
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{linkedAdspace(500, true)}, nil).Once()

	_, err := f.service.SendMessage(context.Background(), renter, 7, "cześć")
	require.NoError(t, err)
	f.scheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestChatServiceSendMessageIgnoresSchedulerFailure(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
	f.messages.On("CreateChatMessage", mock.Anything, 7, 2, "Ile kosztuje?").Return(models.Message{ID: 14, ChatID: 7, SenderID: 2}, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(assert.AnError).Once()
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{linkedAdspace(250, false)}, nil).Once()
	f.scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(r queue.AutoReply) bool {
		return r.SenderID == 1
	}), time.Second).Return(queue.ErrSchedulerClosed).Once()

	got, err := f.service.SendMessage(context.Background(), owner, 7, "Ile kosztuje?")
	require.NoError(t, err)
	assert.Equal(t, 14, got.ID)
	f.assertExpectations(t)
}

func TestChatServiceGetOrCreateBusinessNotFound(t *testing.T) {
	f := newChatFixture(t)
	f.businesses.On("GetBusiness", mock.Anything, 9).Return(nil, repositories.ErrBusinessNotFound).Once()

	_, err := f.service.GetOrCreate(context.Background(), renter, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	f.assertExpectations(t)
}

func TestChatServiceGetOrCreateOwnBusiness(t *testing.T) {
	f := newChatFixture(t)
	f.businesses.On("GetBusiness", mock.Anything, 9).Return(models.Business{ID: 9, OwnerID: 2}, nil).Once()

	_, err := f.service.GetOrCreate(context.Background(), owner, 9)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	f.assertExpectations(t)
}

func TestChatServiceGetOrCreateReturnsExisting(t *testing.T) {
	f := newChatFixture(t)
	f.businesses.On("GetBusiness", mock.Anything, 9).Return(models.Business{ID: 9, OwnerID: 2}, nil).Once()
	f.chats.On("FindChatBetween", mock.Anything, 1, 2).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()

	got, err := f.service.GetOrCreate(context.Background(), renter, 9)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	f.assertExpectations(t)
}

func TestChatServiceGetOrCreateCreatesWithFirstAdspace(t *testing.T) {
	f := newChatFixture(t)
	created := models.Chat{ID: 8, User1ID: 1, User2ID: 2}
	f.businesses.On("GetBusiness", mock.Anything, 9).Return(models.Business{ID: 9, OwnerID: 2}, nil).Once()
	f.chats.On("FindChatBetween", mock.Anything, 1, 2).Return(nil, repositories.ErrChatNotFound).Once()
	f.businesses.On("FirstAdspaceID", mock.Anything, 9).Return(optional.Some(5), nil).Once()
	f.chats.On("CreateChat", mock.Anything, 1, 2, optional.Some(5)).Return(created, true, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyChatCreated, "chat_created", created).Return(nil).Once()

	got, err := f.service.GetOrCreate(context.Background(), renter, 9)
	require.NoError(t, err)
	assert.Equal(t, 8, got.ID)
	f.assertExpectations(t)
}

func TestChatServiceGetOrCreateLosesRace(t *testing.T) {
	f := newChatFixture(t)
	f.businesses.On("GetBusiness", mock.Anything, 9).Return(models.Business{ID: 9, OwnerID: 2}, nil).Once()
	f.chats.On("FindChatBetween", mock.Anything, 1, 2).Return(nil, repositories.ErrChatNotFound).Once()
	f.businesses.On("FirstAdspaceID", mock.Anything, 9).Return(optional.None[int](), nil).Once()
	f.chats.On("CreateChat", mock.Anything, 1, 2, optional.None[int]()).Return(models.Chat{ID: 7}, false, nil).Once()

	got, err := f.service.GetOrCreate(context.Background(), renter, 9)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	f.events.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestChatServiceGetOrCreateTwiceReturnsSameChat(t *testing.T) {
	f := newChatFixture(t)
	created := models.Chat{ID: 8, User1ID: 1, User2ID: 2}
	f.businesses.On("GetBusiness", mock.Anything, 9).Return(models.Business{ID: 9, OwnerID: 2}, nil).Twice()
	f.chats.On("FindChatBetween", mock.Anything, 1, 2).Return(nil, repositories.ErrChatNotFound).Once()
	f.businesses.On("FirstAdspaceID", mock.Anything, 9).Return(optional.Some(5), nil).Once()
	f.chats.On("CreateChat", mock.Anything, 1, 2, optional.Some(5)).Return(created, true, nil).Once()
	f.events.On("PublishEvent", mock.Anything, RoutingKeyChatCreated, "chat_created", created).Return(nil).Once()
	f.chats.On("FindChatBetween", mock.Anything, 1, 2).Return(created, nil).Once()

	first, err := f.service.GetOrCreate(context.Background(), renter, 9)
	require.NoError(t, err)
	second, err := f.service.GetOrCreate(context.Background(), renter, 9)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	f.chats.AssertNumberOfCalls(t, "CreateChat", 1)
	f.assertExpectations(t)
}

func TestChatServiceMarkAsRead(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, nil).Once()
	f.messages.On("MarkChatRead", mock.Anything, 7, 1).Return(4, nil).Once()

	updated, err := f.service.MarkAsRead(context.Background(), renter, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, updated)
	f.assertExpectations(t)
}

func TestChatServiceMarkAsReadForbidden(t *testing.T) {
	f := newChatFixture(t)
	f.chats.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, User1ID: 2, User2ID: 3}, nil).Once()

	_, err := f.service.MarkAsRead(context.Background(), renter, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	f.assertExpectations(t)
}

func TestAutoReplyDeliveryPersistsReply(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	events := new(mocks.EventPublisherMock)
	delivery := NewAutoReplyDelivery(messages, events)

	msg := models.Message{ID: 20, ChatID: 7, SenderID: 2, Content: "Tak"}
	messages.On("CreateChatMessage", mock.Anything, 7, 2, "Tak").Return(msg, nil).Once()
	events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", models.MessageEvent{
		Type: "message", ChatID: 7, Message: msg, AutoSent: true,
	}).Return(nil).Once()

	require.NoError(t, delivery.Deliver(context.Background(), queue.AutoReply{ChatID: 7, SenderID: 2, Content: "Tak"}))
	messages.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestAutoReplyDeliveryReturnsPersistError(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	delivery := NewAutoReplyDelivery(messages, nil)

	messages.On("CreateChatMessage", mock.Anything, 7, 2, "Tak").Return(nil, assert.AnError).Once()

	err := delivery.Deliver(context.Background(), queue.AutoReply{ChatID: 7, SenderID: 2, Content: "Tak"})
	assert.ErrorIs(t, err, assert.AnError)
	messages.AssertExpectations(t)
}

// memoryMessages keeps messages in a slice with the read rules of MessageRepo.
type memoryMessages struct {
	msgs []models.Message
}

func (m *memoryMessages) CreateChatMessage(_ context.Context, chatID int, senderID int, content string) (models.Message, error) {
	msg := models.Message{ID: len(m.msgs) + 1, ChatID: chatID, SenderID: senderID, Content: content, CreatedAt: time.Now()}
	m.msgs = append(m.msgs, msg)
	return msg, nil
}

func (m *memoryMessages) ListChatMessages(_ context.Context, chatID int) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.msgs {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memoryMessages) CountUnread(_ context.Context, chatIDs []int, userID int) (map[int]int, error) {
	counts := map[int]int{}
	for _, msg := range m.msgs {
		if !msg.IsRead && msg.SenderID != userID && slices.Contains(chatIDs, msg.ChatID) {
			counts[msg.ChatID]++
		}
	}
	return counts, nil
}

func (m *memoryMessages) MarkChatRead(_ context.Context, chatID int, readerID int) (int, error) {
	updated := 0
	for i := range m.msgs {
		if m.msgs[i].ChatID == chatID && m.msgs[i].SenderID != readerID && !m.msgs[i].IsRead {
			m.msgs[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func TestChatServiceSendMessageDoesNotRaiseOwnUnread(t *testing.T) {
	f := newChatFixture(t)
	messages := &memoryMessages{}
	f.service.messages = messages

	chat := models.Chat{ID: 7, User1ID: 1, User2ID: 2}
	f.chats.On("GetChat", mock.Anything, 7).Return(chat, nil)
	f.chats.On("ListChatAdspaces", mock.Anything, 7).Return([]models.ChatAdspace{}, nil)
	f.events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(nil)
	f.chats.On("ListChatsForUser", mock.Anything, mock.Anything).Return([]models.ChatListRow{listRow(7, time.Now())}, nil)
	f.users.On("GetUsers", mock.Anything, mock.Anything).Return([]models.User{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Bartek"}}, nil)

	unreadFor := func(caller Caller) int {
		got, err := f.service.List(context.Background(), caller)
		require.NoError(t, err)
		require.Len(t, got, 1)
		return got[0].UnreadCount
	}

	before := unreadFor(renter)
	for _, content := range []string{"Dzień dobry", "Czy mogę zadzwonić?"} {
		_, err := f.service.SendMessage(context.Background(), renter, 7, content)
		require.NoError(t, err)
	}

	assert.Equal(t, before, unreadFor(renter))
	assert.Equal(t, 2, unreadFor(owner))

	updated, err := f.service.MarkAsRead(context.Background(), owner, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Zero(t, unreadFor(owner))
}

func TestAutoReplyDeliveryIgnoresPublishError(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	events := new(mocks.EventPublisherMock)
	delivery := NewAutoReplyDelivery(messages, events)

	messages.On("CreateChatMessage", mock.Anything, 7, 2, "Tak").Return(models.Message{ID: 20, ChatID: 7, SenderID: 2, Content: "Tak"}, nil).Once()
	events.On("PublishEvent", mock.Anything, RoutingKeyMessageSent, "message_sent", mock.Anything).Return(assert.AnError).Once()

	require.NoError(t, delivery.Deliver(context.Background(), queue.AutoReply{ChatID: 7, SenderID: 2, Content: "Tak"}))
	messages.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestMessageRulesFollowMaxLength(t *testing.T) {
	assert.Equal(t, "required,max="+strconv.Itoa(MaxMessageLength), messageRules)
}
