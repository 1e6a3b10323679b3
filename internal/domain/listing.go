package domain

import "time"

type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type Listing struct {
	ID            int64
	Title         string
	Description   string
	ImageURL      string
	ImageFilename string
	Price         int64
	Location      string
	Country       string
	Category      string
	OwnerID       int64
	OwnerUsername string
	Geometry      *Geometry
	Reviews       []Review
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ListingOrder int

const (
	OrderNewest ListingOrder = iota
	OrderPriceAsc
)

// ListingFilter is a store-neutral listing predicate. Empty fields do not
// constrain the result. Text matches location, country or title as a
// case-insensitive substring; Country matches country only.
type ListingFilter struct {
	Text     string
	Country  string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Limit    int
	Order    ListingOrder
}
