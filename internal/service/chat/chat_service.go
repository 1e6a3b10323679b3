package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/wanderlust/internal/access"
	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/repository"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/Domenick1991/wanderlust/pkg/metrics"
	"go.uber.org/zap"
)

type ChatUseCase interface {
	GetChat(ctx context.Context, caller *domain.Identity, bookingID int64) (*ChatView, error)
	SendMessage(ctx context.Context, caller *domain.Identity, bookingID int64, content string) (*domain.ChatMessage, error)
	UnreadCount(ctx context.Context, caller *domain.Identity) (int64, error)
}

type BookingLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ChatView is a chat as seen by one caller.
type ChatView struct {
	Chat               *domain.Chat
	Booking            *domain.Booking
	OtherParticipantID int64
}

type ChatService struct {
	chats    repository.ChatRepository
	bookings BookingLookup
	log      *logger.Logger
}

func NewChatService(chats repository.ChatRepository, bookings BookingLookup, log *logger.Logger) *ChatService {
	return &ChatService{
		chats:    chats,
		bookings: bookings,
		log:      logger.OrGlobal(log).Named("chat"),
	}
}

// authorize runs the gate before any chat is touched, so a refused caller
// never creates one.
func (s *ChatService) authorize(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := access.CanUseChat(caller, booking); err != nil {
		s.log.Info("chat access denied",
			zap.Int64("booking_id", bookingID),
			zap.Int64("user_id", caller.UserID),
			zap.String("status", string(booking.Status)),
		)
		return nil, err
	}
	return booking, nil
}

// GetChat returns the booking chat and marks messages from the other side as read.
func (s *ChatService) GetChat(ctx context.Context, caller *domain.Identity, bookingID int64) (*ChatView, error) {
	booking, err := s.authorize(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}
	chat, err := s.chats.GetOrCreate(ctx, booking.ID, booking.CustomerID, booking.ListingOwnerID)
	if err != nil {
		return nil, err
	}

	if err := s.chats.MarkRead(ctx, chat.ID, caller.UserID); err != nil {
		return nil, err
	}
	for i := range chat.Messages {
		if chat.Messages[i].SenderID != caller.UserID {
			chat.Messages[i].IsRead = true
		}
	}

	return &ChatView{
		Chat:               chat,
		Booking:            booking,
		OtherParticipantID: chat.OtherParticipant(caller.UserID),
	}, nil
}

func (s *ChatService) SendMessage(ctx context.Context, caller *domain.Identity, bookingID int64, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", domain.ErrValidation)
	}

	booking, err := s.authorize(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}
	// history is not needed to append
	chat, err := s.chats.Ensure(ctx, booking.ID, booking.CustomerID, booking.ListingOwnerID)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ChatID:         chat.ID,
		SenderID:       caller.UserID,
		SenderUsername: caller.Username,
		Content:        content,
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		s.log.Error("append chat message", zap.Int64("chat_id", chat.ID), zap.Error(err))
		return nil, err
	}
	metrics.ChatMessagesTotal.Inc()
	return msg, nil
}

func (s *ChatService) UnreadCount(ctx context.Context, caller *domain.Identity) (int64, error) {
	if err := access.RequireUser(caller); err != nil {
		return 0, err
	}
	return s.chats.UnreadCount(ctx, caller.UserID)
}

var _ ChatUseCase = (*ChatService)(nil)
