package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Identity is the authenticated caller of a request. A nil *Identity is an
// anonymous caller.
type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

type Review struct {
	ID             int64
	ListingID      int64
	AuthorID       int64
	AuthorUsername string
	Comment        string
	Rating         int
	CreatedAt      time.Time
}
