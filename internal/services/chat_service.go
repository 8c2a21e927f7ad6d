package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"adspace-chat/internal/autoresponder"
	"adspace-chat/internal/dto"
	"adspace-chat/internal/models"
	"adspace-chat/internal/observability"
	"adspace-chat/internal/optional"
	"adspace-chat/internal/queue"
	"adspace-chat/internal/repositories"
)

const (
	DefaultAutoReplyDelay = time.Second
	MaxMessageLength      = 2000
)

// messageRules is applied with validator's Var; max counts runes.
var messageRules = "required,max=" + strconv.Itoa(MaxMessageLength)

// ChatService implements the chat use cases.
type ChatService struct {
	chats      repositories.ChatRepository
	messages   repositories.MessageRepository
	users      repositories.UserRepository
	businesses repositories.BusinessRepository
	responder  *autoresponder.Responder
	scheduler  queue.Scheduler
	events     EventPublisher
	validate   *validator.Validate
	replyDelay time.Duration
}

type ChatServiceDeps struct {
	Chats      repositories.ChatRepository
	Messages   repositories.MessageRepository
	Users      repositories.UserRepository
	Businesses repositories.BusinessRepository
	Responder  *autoresponder.Responder
	Scheduler  queue.Scheduler
	Events     EventPublisher
	ReplyDelay time.Duration
}

func NewChatService(deps ChatServiceDeps) *ChatService {
	delay := deps.ReplyDelay
	if delay <= 0 {
		delay = DefaultAutoReplyDelay
	}
	return &ChatService{
		chats:      deps.Chats,
		messages:   deps.Messages,
		users:      deps.Users,
		businesses: deps.Businesses,
		responder:  deps.Responder,
		scheduler:  deps.Scheduler,
		events:     deps.Events,
		validate:   validator.New(),
		replyDelay: delay,
	}
}

func finish(span trace.Span, operation string, err error) {
	observability.ObserveChatOperation(operation, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// List returns the caller's chats, most recent activity first.
func (s *ChatService) List(ctx context.Context, caller Caller) (_ []dto.ChatSummary, err error) {
	ctx, span := tracer.Start(ctx, "ChatService.List", trace.WithAttributes(attribute.Int("caller.id", caller.ID)))
	defer func() { finish(span, "list", err) }()

	rows, err := s.chats.ListChatsForUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	chatIDs := lo.Map(rows, func(r models.ChatListRow, _ int) int { return r.ID })
	unread, err := s.messages.CountUnread(ctx, chatIDs, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	users, err := s.users.GetUsers(ctx, lo.FlatMap(rows, func(r models.ChatListRow, _ int) []int { return r.ParticipantIDs() }))
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	byID := dto.UsersByID(users)

	summaries := lo.Map(rows, func(r models.ChatListRow, _ int) dto.ChatSummary {
		return dto.MapChatSummary(r, byID, unread[r.ID])
	})
	sortByLastMessage(summaries)
	return summaries, nil
}

// sortByLastMessage orders summaries newest first. Chats without messages
// count as the zero time and keep their relative order at the end.
func sortByLastMessage(summaries []dto.ChatSummary) {
	lastAt := func(s dto.ChatSummary) time.Time {
		if m, ok := s.LastMessage.Get(); ok {
			return m.Timestamp
		}
		return time.Time{}
	}
	slices.SortStableFunc(summaries, func(a, b dto.ChatSummary) int {
		return lastAt(b).Compare(lastAt(a))
	})
}

// GetByID returns the full chat with its history in ascending order.
func (s *ChatService) GetByID(ctx context.Context, caller Caller, chatID int) (_ dto.ChatDetail, err error) {
	ctx, span := tracer.Start(ctx, "ChatService.GetByID", trace.WithAttributes(
		attribute.Int("caller.id", caller.ID),
		attribute.Int("chat.id", chatID),
	))
	defer func() { finish(span, "get_by_id", err) }()

	chat, err := s.chatForParticipant(ctx, caller, chatID)
	if err != nil {
		return dto.ChatDetail{}, err
	}

	adspaces, err := s.chats.ListChatAdspaces(ctx, chat.ID)
	if err != nil {
		return dto.ChatDetail{}, fmt.Errorf("load chat adspaces: %w", err)
	}
	if len(adspaces) == 0 {
		return dto.ChatDetail{}, fmt.Errorf("chat %d has no adspace: %w", chat.ID, ErrInvalidState)
	}
	business, ok := dto.MapBusinessContext(adspaces[0]).Get()
	if !ok {
		return dto.ChatDetail{}, fmt.Errorf("chat %d adspace %d has no business: %w", chat.ID, adspaces[0].ID, ErrInvalidState)
	}

	messages, err := s.messages.ListChatMessages(ctx, chat.ID)
	if err != nil {
		return dto.ChatDetail{}, fmt.Errorf("list messages: %w", err)
	}

	users, err := s.users.GetUsers(ctx, chat.ParticipantIDs())
	if err != nil {
		return dto.ChatDetail{}, fmt.Errorf("load participants: %w", err)
	}

	return dto.MapChatDetail(chat, dto.UsersByID(users), messages, business, adspaces), nil
}

// SendMessage persists the caller's message and, when the first linked
// adspace triggers an auto-reply, schedules it on behalf of the other
// participant. Scheduling problems never fail the call.
func (s *ChatService) SendMessage(ctx context.Context, caller Caller, chatID int, content string) (_ dto.MessageResult, err error) {
	ctx, span := tracer.Start(ctx, "ChatService.SendMessage", trace.WithAttributes(
		attribute.Int("caller.id", caller.ID),
		attribute.Int("chat.id", chatID),
	))
	defer func() { finish(span, "send_message", err) }()

	content = strings.TrimSpace(content)
	if err := s.validate.Var(content, messageRules); err != nil {
		return dto.MessageResult{}, fmt.Errorf("message content: %v: %w", err, ErrValidation)
	}

	chat, err := s.chatForParticipant(ctx, caller, chatID)
	if err != nil {
		return dto.MessageResult{}, err
	}

	msg, err := s.messages.CreateChatMessage(ctx, chat.ID, caller.ID, content)
	if err != nil {
		return dto.MessageResult{}, fmt.Errorf("create message: %w", err)
	}

	s.publish(ctx, RoutingKeyMessageSent, "message_sent", models.MessageEvent{Type: "message", ChatID: chat.ID, Message: msg})
	s.scheduleAutoReply(ctx, chat, caller.ID, content)

	return dto.MapMessageResult(msg, caller.Name), nil
}

func (s *ChatService) scheduleAutoReply(ctx context.Context, chat models.Chat, senderID int, content string) {
	if s.responder == nil || s.scheduler == nil {
		return
	}

	adspaces, err := s.chats.ListChatAdspaces(ctx, chat.ID)
	if err != nil {
		log.Printf("auto reply skipped: chat_id=%d err=%v", chat.ID, err)
		return
	}
	if len(adspaces) == 0 {
		return
	}
	first := adspaces[0]

	reply, ok := s.responder.Reply(content, autoresponder.Attributes{
		PricePerWeek:      optional.FromNullFloat64(first.PricePerWeek),
		IsBarterAvailable: first.IsBarterAvailable,
		InUse:             first.InUse,
	}).Get()
	if !ok {
		return
	}
	observability.IncAutoReply("matched")

	task := queue.AutoReply{ChatID: chat.ID, SenderID: chat.OtherParticipant(senderID), Content: reply}
	if err := s.scheduler.Schedule(context.WithoutCancel(ctx), task, s.replyDelay); err != nil {
		log.Printf("auto reply not scheduled: chat_id=%d err=%v", chat.ID, err)
		observability.IncAutoReply("dropped")
	}
}

// GetOrCreate returns the chat between the caller and the business owner,
// creating it linked to the business's first adspace when missing.
func (s *ChatService) GetOrCreate(ctx context.Context, caller Caller, businessID int) (_ dto.ChatRef, err error) {
	ctx, span := tracer.Start(ctx, "ChatService.GetOrCreate", trace.WithAttributes(
		attribute.Int("caller.id", caller.ID),
		attribute.Int("business.id", businessID),
	))
	defer func() { finish(span, "get_or_create", err) }()

	business, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			return dto.ChatRef{}, fmt.Errorf("business %d: %w", businessID, ErrNotFound)
		}
		return dto.ChatRef{}, fmt.Errorf("load business: %w", err)
	}
	if business.OwnerID == caller.ID {
		return dto.ChatRef{}, fmt.Errorf("chat with own business: %w", ErrInvalidOperation)
	}

	existing, err := s.chats.FindChatBetween(ctx, caller.ID, business.OwnerID)
	if err == nil {
		return dto.ChatRef{ID: existing.ID}, nil
	}
	if !errors.Is(err, repositories.ErrChatNotFound) {
		return dto.ChatRef{}, fmt.Errorf("find chat: %w", err)
	}

	adspaceID, err := s.businesses.FirstAdspaceID(ctx, business.ID)
	if err != nil {
		return dto.ChatRef{}, fmt.Errorf("first adspace: %w", err)
	}

	chat, created, err := s.chats.CreateChat(ctx, caller.ID, business.OwnerID, adspaceID)
	if err != nil {
		if errors.Is(err, repositories.ErrSelfChat) {
			return dto.ChatRef{}, fmt.Errorf("create chat: %w", ErrInvalidOperation)
		}
		return dto.ChatRef{}, fmt.Errorf("create chat: %w", err)
	}
	if created {
		log.Printf("chat created: chat_id=%d business_id=%d", chat.ID, business.ID)
		s.publish(ctx, RoutingKeyChatCreated, "chat_created", chat)
	}
	return dto.ChatRef{ID: chat.ID}, nil
}

// MarkAsRead marks every message in the chat not sent by the caller as read.
func (s *ChatService) MarkAsRead(ctx context.Context, caller Caller, chatID int) (_ int, err error) {
	ctx, span := tracer.Start(ctx, "ChatService.MarkAsRead", trace.WithAttributes(
		attribute.Int("caller.id", caller.ID),
		attribute.Int("chat.id", chatID),
	))
	defer func() { finish(span, "mark_as_read", err) }()

	chat, err := s.chatForParticipant(ctx, caller, chatID)
	if err != nil {
		return 0, err
	}
	updated, err := s.messages.MarkChatRead(ctx, chat.ID, caller.ID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	return updated, nil
}

func (s *ChatService) chatForParticipant(ctx context.Context, caller Caller, chatID int) (models.Chat, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return models.Chat{}, fmt.Errorf("chat %d: %w", chatID, ErrNotFound)
		}
		return models.Chat{}, fmt.Errorf("load chat: %w", err)
	}
	if !chat.HasParticipant(caller.ID) {
		return models.Chat{}, fmt.Errorf("chat %d: %w", chatID, ErrForbidden)
	}
	return chat, nil
}

func (s *ChatService) publish(ctx context.Context, routingKey, name string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, routingKey, name, payload); err != nil {
		log.Printf("event publish failed: routing_key=%s err=%v", routingKey, err)
	}
}
