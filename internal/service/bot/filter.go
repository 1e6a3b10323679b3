package bot

import "github.com/Domenick1991/wanderlust/internal/domain"

const DefaultRecommendationLimit = 5

// BuildFilter turns the filled slots into a listing predicate. Guests are not
// part of it because listings carry no capacity.
func BuildFilter(c domain.ConversationContext, limit int) domain.ListingFilter {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	f := domain.ListingFilter{
		Text:  c.Location,
		Limit: limit,
		Order: domain.OrderPriceAsc,
	}
	if c.MinPrice != nil {
		v := *c.MinPrice
		f.MinPrice = &v
	}
	if c.MaxPrice != nil {
		v := *c.MaxPrice
		f.MaxPrice = &v
	}
	return f
}
