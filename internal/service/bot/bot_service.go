package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/Domenick1991/wanderlust/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BotUseCase interface {
	Chat(ctx context.Context, input ChatInput) (*ChatReply, error)
	History(ctx context.Context, sessionID string) (*domain.Conversation, error)
	Reset(ctx context.Context, sessionID string) (string, error)
}

// ConversationStore persists conversations by session id. Load returns
// (nil, nil) for an unknown or expired session.
type ConversationStore interface {
	Load(ctx context.Context, sessionID string) (*domain.Conversation, error)
	Save(ctx context.Context, conv *domain.Conversation) error
	Delete(ctx context.Context, sessionID string) error
}

type ListingFinder interface {
	Find(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
}

type ChatInput struct {
	SessionID string
	Message   string
	Identity  *domain.Identity
}

type ChatReply struct {
	SessionID       string
	Intent          Intent
	BotMessage      string
	Recommendations []domain.Listing
	Context         domain.ConversationContext
}

type BotService struct {
	store    ConversationStore
	listings ListingFinder
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
	limit    int
}

type BotServiceOption func(*BotService)

func WithClock(now func() time.Time) BotServiceOption {
	return func(s *BotService) {
		s.now = now
	}
}

func WithSessionIDs(newID func() string) BotServiceOption {
	return func(s *BotService) {
		s.newID = newID
	}
}

func WithRecommendationLimit(limit int) BotServiceOption {
	return func(s *BotService) {
		s.limit = limit
	}
}

func WithLogger(log *logger.Logger) BotServiceOption {
	return func(s *BotService) {
		s.log = log
	}
}

func NewBotService(store ConversationStore, listings ListingFinder, opts ...BotServiceOption) *BotService {
	s := &BotService{
		store:    store,
		listings: listings,
		now:      time.Now,
		newID:    uuid.NewString,
		limit:    DefaultRecommendationLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrGlobal(s.log).Named("bot")
	return s
}

// Chat runs one turn. The turn is saved whole or not at all: on a save
// failure nothing from this turn is kept.
func (s *BotService) Chat(ctx context.Context, input ChatInput) (*ChatReply, error) {
	text := strings.TrimSpace(input.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: please provide a valid message.", domain.ErrValidation)
	}

	conv, err := s.loadOrCreate(ctx, input.SessionID, input.Identity)
	if err != nil {
		return nil, err
	}

	decision := Respond(conv.Context, text)
	metrics.RecordBotTurn(string(decision.Intent))
	s.log.Debug("bot turn",
		zap.String("session_id", conv.SessionID),
		zap.String("intent", string(decision.Intent)),
		zap.String("step", string(decision.Context.Step)),
	)

	if decision.Restart {
		fresh, err := s.restart(ctx, conv.SessionID, conv.UserID)
		if err != nil {
			return nil, err
		}
		return &ChatReply{
			SessionID:  fresh.SessionID,
			Intent:     decision.Intent,
			BotMessage: decision.Reply,
			Context:    fresh.Context,
		}, nil
	}

	var recommendations []domain.Listing
	if decision.Recommend {
		recommendations = s.recommend(ctx, decision.Context)
	}

	now := s.now()
	if now.Before(conv.LastActivity) {
		now = conv.LastActivity
	}

	turn := *conv
	turn.Context = decision.Context
	turn.Messages = make([]domain.BotMessage, 0, len(conv.Messages)+2)
	turn.Messages = append(turn.Messages, conv.Messages...)
	turn.Messages = append(turn.Messages,
		domain.BotMessage{Sender: domain.SenderUser, Text: text, Timestamp: now},
		domain.BotMessage{Sender: domain.SenderBot, Text: decision.Reply, Timestamp: now},
	)
	turn.LastActivity = now

	if err := s.store.Save(ctx, &turn); err != nil {
		s.log.Error("save conversation", zap.String("session_id", turn.SessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: save conversation: %w", domain.ErrTransientStore, err)
	}

	return &ChatReply{
		SessionID:       turn.SessionID,
		Intent:          decision.Intent,
		BotMessage:      decision.Reply,
		Recommendations: recommendations,
		Context:         turn.Context,
	}, nil
}

// History returns the stored conversation, or an empty greeting-step
// conversation when the session is unknown.
func (s *BotService) History(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	if sessionID != "" {
		conv, err := s.store.Load(ctx, sessionID)
		if err != nil {
			s.log.Error("load conversation", zap.String("session_id", sessionID), zap.Error(err))
			return nil, fmt.Errorf("%w: load conversation: %w", domain.ErrTransientStore, err)
		}
		if conv != nil {
			return conv, nil
		}
	}
	return domain.NewConversation(sessionID, nil, s.now()), nil
}

// Reset drops the session, if any, and returns a new empty one.
func (s *BotService) Reset(ctx context.Context, sessionID string) (string, error) {
	fresh, err := s.restart(ctx, sessionID, nil)
	if err != nil {
		return "", err
	}
	return fresh.SessionID, nil
}

func (s *BotService) loadOrCreate(ctx context.Context, sessionID string, identity *domain.Identity) (*domain.Conversation, error) {
	if sessionID != "" {
		conv, err := s.store.Load(ctx, sessionID)
		if err != nil {
			s.log.Error("load conversation", zap.String("session_id", sessionID), zap.Error(err))
			return nil, fmt.Errorf("%w: load conversation: %w", domain.ErrTransientStore, err)
		}
		if conv != nil {
			return conv, nil
		}
	}

	var userID *int64
	if identity != nil {
		id := identity.UserID
		userID = &id
	}
	return domain.NewConversation(s.newID(), userID, s.now()), nil
}

// restart saves the new conversation before dropping the old one, so a failed
// save leaves the caller's session intact. A failed delete is only logged;
// the old key still expires.
func (s *BotService) restart(ctx context.Context, oldSessionID string, userID *int64) (*domain.Conversation, error) {
	fresh := domain.NewConversation(s.newID(), userID, s.now())
	if err := s.store.Save(ctx, fresh); err != nil {
		s.log.Error("save conversation", zap.String("session_id", fresh.SessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: save conversation: %w", domain.ErrTransientStore, err)
	}

	if oldSessionID != "" {
		if err := s.store.Delete(ctx, oldSessionID); err != nil {
			s.log.Warn("delete conversation", zap.String("session_id", oldSessionID), zap.Error(err))
		}
	}
	return fresh, nil
}

// recommend never fails: a store error yields no recommendations.
func (s *BotService) recommend(ctx context.Context, c domain.ConversationContext) []domain.Listing {
	filter := BuildFilter(c, s.limit)
	listings, err := s.listings.Find(ctx, filter)
	if err != nil {
		metrics.RecommendationFailures.Inc()
		s.log.Warn("recommendation query failed", zap.Error(err))
		return []domain.Listing{}
	}
	metrics.RecommendationResults.Observe(float64(len(listings)))
	return listings
}

var _ BotUseCase = (*BotService)(nil)
