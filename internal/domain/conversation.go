package domain

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Step is the slot the recommendation bot is currently asking for.
type Step string

const (
	StepGreeting      Step = "greeting"
	StepGatheringInfo Step = "gathering_info"
	StepLocation      Step = "location"
	StepPrice         Step = "price"
	StepGuests        Step = "guests"
	StepReady         Step = "ready"
)

type BotMessage struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext holds the slots filled so far. A nil MaxPrice with a
// non-nil MinPrice is an open-ended budget.
type ConversationContext struct {
	Step     Step   `json:"step"`
	Location string `json:"location,omitempty"`
	MinPrice *int64 `json:"minPrice,omitempty"`
	MaxPrice *int64 `json:"maxPrice,omitempty"`
	Guests   int    `json:"guests,omitempty"`
}

// HasBudget reports whether either price bound is set.
func (c ConversationContext) HasBudget() bool {
	return c.MinPrice != nil || c.MaxPrice != nil
}

// Conversation is the persisted state of one recommendation bot session.
type Conversation struct {
	SessionID    string              `json:"sessionId"`
	UserID       *int64              `json:"user"`
	Messages     []BotMessage        `json:"messages"`
	Context      ConversationContext `json:"context"`
	CreatedAt    time.Time           `json:"createdAt"`
	LastActivity time.Time           `json:"lastActivity"`
}

// NewConversation returns an empty conversation at the greeting step.
func NewConversation(sessionID string, userID *int64, now time.Time) *Conversation {
	return &Conversation{
		SessionID:    sessionID,
		UserID:       userID,
		Messages:     []BotMessage{},
		Context:      ConversationContext{Step: StepGreeting},
		CreatedAt:    now,
		LastActivity: now,
	}
}
