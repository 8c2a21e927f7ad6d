package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatRepositoryMock) FindChatBetween(ctx context.Context, userID int, otherID int) (models.Chat, error) {
	args := m.Called(ctx, userID, otherID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatRepositoryMock) CreateChat(ctx context.Context, userID int, otherID int, adspaceID optional.Value[int]) (models.Chat, bool, error) {
	args := m.Called(ctx, userID, otherID, adspaceID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Bool(1), args.Error(2)
}

func (m *ChatRepositoryMock) ListChatsForUser(ctx context.Context, userID int) ([]models.ChatListRow, error) {
	args := m.Called(ctx, userID)
	var rows []models.ChatListRow
	if val := args.Get(0); val != nil {
		rows = val.([]models.ChatListRow)
	}
	return rows, args.Error(1)
}

func (m *ChatRepositoryMock) ListChatAdspaces(ctx context.Context, chatID int) ([]models.ChatAdspace, error) {
	args := m.Called(ctx, chatID)
	var adspaces []models.ChatAdspace
	if val := args.Get(0); val != nil {
		adspaces = val.([]models.ChatAdspace)
	}
	return adspaces, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateChatMessage(ctx context.Context, chatID int, senderID int, content string) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListChatMessages(ctx context.Context, chatID int) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) CountUnread(ctx context.Context, chatIDs []int, userID int) (map[int]int, error) {
	args := m.Called(ctx, chatIDs, userID)
	var counts map[int]int
	if val := args.Get(0); val != nil {
		counts = val.(map[int]int)
	}
	return counts, args.Error(1)
}

func (m *MessageRepositoryMock) MarkChatRead(ctx context.Context, chatID int, readerID int) (int, error) {
	args := m.Called(ctx, chatID, readerID)
	return args.Int(0), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUsers(ctx context.Context, ids []int) ([]models.User, error) {
	args := m.Called(ctx, ids)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

type BusinessRepositoryMock struct {
	mock.Mock
}

func (m *BusinessRepositoryMock) GetBusiness(ctx context.Context, businessID int) (models.Business, error) {
	args := m.Called(ctx, businessID)
	var business models.Business
	if val := args.Get(0); val != nil {
		business = val.(models.Business)
	}
	return business, args.Error(1)
}

func (m *BusinessRepositoryMock) GetBusinessByOwner(ctx context.Context, ownerID int) (models.Business, error) {
	args := m.Called(ctx, ownerID)
	var business models.Business
	if val := args.Get(0); val != nil {
		business = val.(models.Business)
	}
	return business, args.Error(1)
}

func (m *BusinessRepositoryMock) FirstAdspaceID(ctx context.Context, businessID int) (optional.Value[int], error) {
	args := m.Called(ctx, businessID)
	var id optional.Value[int]
	if val := args.Get(0); val != nil {
		id = val.(optional.Value[int])
	}
	return id, args.Error(1)
}

func (m *BusinessRepositoryMock) GetBusinessWithRelations(ctx context.Context, businessID int) (models.BusinessWithRelations, error) {
	args := m.Called(ctx, businessID)
	var business models.BusinessWithRelations
	if val := args.Get(0); val != nil {
		business = val.(models.BusinessWithRelations)
	}
	return business, args.Error(1)
}

type AdspaceRepositoryMock struct {
	mock.Mock
}

func (m *AdspaceRepositoryMock) ListAdspaces(ctx context.Context) ([]models.AdspaceWithBusiness, error) {
	args := m.Called(ctx)
	var items []models.AdspaceWithBusiness
	if val := args.Get(0); val != nil {
		items = val.([]models.AdspaceWithBusiness)
	}
	return items, args.Error(1)
}

func (m *AdspaceRepositoryMock) ListAdspacesByOwner(ctx context.Context, ownerID int) ([]models.AdspaceWithBusiness, error) {
	args := m.Called(ctx, ownerID)
	var items []models.AdspaceWithBusiness
	if val := args.Get(0); val != nil {
		items = val.([]models.AdspaceWithBusiness)
	}
	return items, args.Error(1)
}

func (m *AdspaceRepositoryMock) GetAdspace(ctx context.Context, adspaceID int) (models.AdspaceWithBusiness, error) {
	args := m.Called(ctx, adspaceID)
	var item models.AdspaceWithBusiness
	if val := args.Get(0); val != nil {
		item = val.(models.AdspaceWithBusiness)
	}
	return item, args.Error(1)
}

func (m *AdspaceRepositoryMock) ListTypes(ctx context.Context) ([]models.AdspaceType, error) {
	args := m.Called(ctx)
	var types []models.AdspaceType
	if val := args.Get(0); val != nil {
		types = val.([]models.AdspaceType)
	}
	return types, args.Error(1)
}

func (m *AdspaceRepositoryMock) CreateAdspace(ctx context.Context, businessID int, in models.AdspaceInput) (models.Adspace, error) {
	args := m.Called(ctx, businessID, in)
	var adspace models.Adspace
	if val := args.Get(0); val != nil {
		adspace = val.(models.Adspace)
	}
	return adspace, args.Error(1)
}

func (m *AdspaceRepositoryMock) UpdateAdspace(ctx context.Context, adspaceID int, in models.AdspaceInput) (models.Adspace, error) {
	args := m.Called(ctx, adspaceID, in)
	var adspace models.Adspace
	if val := args.Get(0); val != nil {
		adspace = val.(models.Adspace)
	}
	return adspace, args.Error(1)
}
