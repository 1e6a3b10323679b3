package bot

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	greetingReply = "Hi! I'm your property recommendation assistant. I can help you find the perfect place to stay!\n\n" +
		"Tell me:\n" +
		"- Where would you like to stay?\n" +
		"- What's your budget?\n" +
		"- How many guests?\n\n" +
		"Or just tell me what you're looking for!"
	clarifyLocationReply = "I didn't catch the location. Could you specify the city or area? (e.g., 'Goa', 'Mumbai', 'Delhi')"
	clarifyPriceReply    = "Could you specify your budget? For example:\n" +
		"- 'under 5000'\n" +
		"- '3000 to 8000'\n" +
		"- 'maximum 10000'"
	clarifyGuestsReply = "How many guests? Please specify a number (e.g., '2' or '4 people')"
	recommendReply     = "Here are my recommendations based on your preferences:"
	needInfoReply      = "I need more information to recommend properties. Let's start:\n\n" +
		"Where would you like to stay? (e.g., 'Goa', 'Mumbai')"
	restartReply  = "Let's start fresh!\n\nWhere would you like to stay?"
	completeReply = "Perfect! Here are my recommendations:"
	helpReply     = "I'm here to help you find properties! You can tell me:\n\n" +
		"- Location (e.g., 'in Goa')\n" +
		"- Budget (e.g., 'under 5000')\n" +
		"- Guests (e.g., '2 people')\n\n" +
		"Or type 'restart' to begin again."
)

// Decision is the outcome of one dialogue turn. Context is the full context
// to persist; the input context is never modified.
type Decision struct {
	Intent    Intent
	Context   domain.ConversationContext
	Reply     string
	Recommend bool
	Restart   bool
}

type intentHandler func(ctx domain.ConversationContext, utterance string) Decision

var handlers = map[Intent]intentHandler{
	IntentGreeting:  onGreeting,
	IntentLocation:  onLocation,
	IntentPrice:     onPrice,
	IntentGuests:    onGuests,
	IntentRecommend: onRecommend,
	IntentRestart:   onRestart,
	IntentUnknown:   onUnknown,
}

// Respond classifies the utterance and decides the next step and reply.
func Respond(current domain.ConversationContext, utterance string) Decision {
	intent := Classify(utterance)
	d := handlers[intent](copyContext(current), utterance)
	d.Intent = intent
	return d
}

func onGreeting(ctx domain.ConversationContext, _ string) Decision {
	ctx.Step = domain.StepGatheringInfo
	return Decision{Context: ctx, Reply: greetingReply}
}

func onLocation(ctx domain.ConversationContext, utterance string) Decision {
	loc, ok := ExtractLocation(utterance)
	if !ok {
		return Decision{Context: ctx, Reply: clarifyLocationReply}
	}
	ctx.Location = loc
	ctx.Step = domain.StepPrice
	reply := fmt.Sprintf("Great! Looking for properties in %s.\n\n"+
		"What's your budget per night? (e.g., 'under 5000' or '3000 to 8000')", loc)
	return Decision{Context: ctx, Reply: reply}
}

func onPrice(ctx domain.ConversationContext, utterance string) Decision {
	r, ok := ExtractPrice(utterance)
	if !ok {
		return Decision{Context: ctx, Reply: clarifyPriceReply}
	}
	setBudget(&ctx, r)
	ctx.Step = domain.StepGuests
	reply := fmt.Sprintf("Perfect! Budget: %s per night.\n\nHow many guests? (e.g., '2 people' or '4')", formatBudget(r))
	return Decision{Context: ctx, Reply: reply}
}

func onGuests(ctx domain.ConversationContext, utterance string) Decision {
	n, ok := ExtractGuests(utterance)
	if !ok {
		return Decision{Context: ctx, Reply: clarifyGuestsReply}
	}
	ctx.Guests = n
	ctx.Step = domain.StepReady
	noun := "guest"
	if n > 1 {
		noun = "guests"
	}
	reply := fmt.Sprintf("Got it! %d %s.\n\nLet me find the best properties for you...", n, noun)
	return Decision{Context: ctx, Reply: reply, Recommend: true}
}

func onRecommend(ctx domain.ConversationContext, _ string) Decision {
	if ctx.Location != "" || ctx.HasBudget() || ctx.Guests > 0 {
		return Decision{Context: ctx, Reply: recommendReply, Recommend: true}
	}
	ctx.Step = domain.StepLocation
	return Decision{Context: ctx, Reply: needInfoReply}
}

func onRestart(_ domain.ConversationContext, _ string) Decision {
	return Decision{
		Context: domain.ConversationContext{Step: domain.StepGreeting},
		Reply:   restartReply,
		Restart: true,
	}
}

// onUnknown fills whatever slots parse out of free text, then either
// recommends or asks for the first missing slot.
func onUnknown(ctx domain.ConversationContext, utterance string) Decision {
	loc, hasLoc := ExtractLocation(utterance)
	price, hasPrice := ExtractPrice(utterance)
	guests, hasGuests := ExtractGuests(utterance)
	if !hasLoc && !hasPrice && !hasGuests {
		return Decision{Context: ctx, Reply: helpReply}
	}

	if hasLoc {
		ctx.Location = loc
	}
	if hasPrice {
		setBudget(&ctx, price)
	}
	if hasGuests {
		ctx.Guests = guests
	}

	type slot struct {
		label string
		step  domain.Step
	}
	var missing []slot
	if ctx.Location == "" {
		missing = append(missing, slot{"location", domain.StepLocation})
	}
	if !ctx.HasBudget() {
		missing = append(missing, slot{"budget", domain.StepPrice})
	}
	if ctx.Guests == 0 {
		missing = append(missing, slot{"number of guests", domain.StepGuests})
	}

	if len(missing) == 0 {
		ctx.Step = domain.StepReady
		return Decision{Context: ctx, Reply: completeReply, Recommend: true}
	}

	labels := make([]string, len(missing))
	for i, m := range missing {
		labels[i] = m.label
	}
	ctx.Step = missing[0].step
	reply := fmt.Sprintf("Got it! I still need: %s\n\nPlease provide the %s.", strings.Join(labels, ", "), missing[0].label)
	return Decision{Context: ctx, Reply: reply}
}

func setBudget(ctx *domain.ConversationContext, r PriceRange) {
	floor := r.Min
	ctx.MinPrice = &floor
	ctx.MaxPrice = nil
	if r.Max != nil {
		ceiling := *r.Max
		ctx.MaxPrice = &ceiling
	}
}

var printer = message.NewPrinter(language.English)

func formatBudget(r PriceRange) string {
	if r.Max == nil {
		return printer.Sprintf("₹%d and above", r.Min)
	}
	return printer.Sprintf("₹%d - ₹%d", r.Min, *r.Max)
}

func copyContext(c domain.ConversationContext) domain.ConversationContext {
	out := c
	if c.MinPrice != nil {
		v := *c.MinPrice
		out.MinPrice = &v
	}
	if c.MaxPrice != nil {
		v := *c.MaxPrice
		out.MaxPrice = &v
	}
	return out
}
