package domain

import "time"

// Chat is the single message thread attached to a confirmed booking.
// Participants holds the booking customer and the listing owner, in that order.
type Chat struct {
	ID            int64
	BookingID     int64
	Participants  []int64
	Messages      []ChatMessage
	LastMessageAt time.Time
}

type ChatMessage struct {
	ID             int64
	ChatID         int64
	SenderID       int64
	SenderUsername string
	Content        string
	Timestamp      time.Time
	IsRead         bool
}

// HasParticipant reports whether userID takes part in the chat.
func (c *Chat) HasParticipant(userID int64) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID, or 0.
func (c *Chat) OtherParticipant(userID int64) int64 {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return 0
}
