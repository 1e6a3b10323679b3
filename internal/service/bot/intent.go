package bot

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentLocation  Intent = "location"
	IntentPrice     Intent = "price"
	IntentGuests    Intent = "guests"
	IntentRecommend Intent = "recommend"
	IntentRestart   Intent = "restart"
	IntentUnknown   Intent = "unknown"
)

type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// intentRules is evaluated top to bottom and the first match wins, so an
// utterance carrying both a greeting and a location keyword is a greeting.
// "start over" therefore classifies as a greeting too.
var intentRules = []intentRule{
	{IntentGreeting, regexp.MustCompile(`(?i)\b(hi|hello|hey|start|help|assist)\b`)},
	{IntentLocation, regexp.MustCompile(`(?i)\b(in|at|near|location|place|city|country|area)\b`)},
	{IntentPrice, regexp.MustCompile(`(?i)\b(price|cost|budget|cheap|expensive|affordable|under|below|above|over|between|less than|more than|max|maximum|min|minimum|rs)\b|₹`)},
	{IntentGuests, regexp.MustCompile(`(?i)\b(guests?|people|persons?|travell?ers?|family|group|adults?)\b`)},
	{IntentRecommend, regexp.MustCompile(`(?i)\b(show|find|search|recommend|suggest|list|properties|listings)\b`)},
	{IntentRestart, regexp.MustCompile(`(?i)\b(restart|reset|start over|begin again)\b`)},
}

// Classify maps an utterance to an intent. It never fails; anything that
// matches no rule is IntentUnknown.
func Classify(utterance string) Intent {
	text := strings.ToLower(strings.TrimSpace(utterance))
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			return rule.intent
		}
	}
	return IntentUnknown
}
