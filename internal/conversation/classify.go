package conversation

import (
	"regexp"
	"strings"
)

var (
	hotelPatterns = compileAll(
		`\bhotel(s)?\b`, `\bhostel(s)?\b`, `\bguesthouse(s)?\b`,
		`\b(accommodation|lodging)\b`, `\bwhere to stay\b`,
		`\bplace to (sleep|stay)\b`, `\binn\b`, `\bmotel(s)?\b`,
		`\bbnb\b`, `\bbed and breakfast\b`, `\bboutique hotel\b`,
	)
	destinationPatterns = compileAll(
		`where.*(should|to).*(go|travel)`, `recommend.*destination`,
		`place.*visit`, `vacation.*ideas`, `trip.*suggestions`,
	)
	packingPatterns = compileAll(
		`\bpack\b.*\bwhat\b`, `\bwhat\b.*\bpack\b`, `\bpacking list\b`,
		`\bbring\b.*\btrip\b`, `\bwhat\b.*\bwear\b`, `\bessentials\b.*\bbring\b`,
	)
	attractionsPatterns = compileAll(
		`\bthings\b.*\bdo\b`, `\battraction(s)?\b`, `\bsightseeing\b`,
		`\bplaces\b.*\bsee\b`, `\bactivities\b`, `\bwhat\b.*\bdo\b.*\bin\b`,
	)
	bestTimePatterns = compileAll(
		`best (time|season|month)`, `when (should|to) .*(visit|go|travel)`,
		`\bwhat time of year\b`,
	)
	budgetPatterns = compileAll(
		`how much (money|should i spend|does it cost|will it cost)`,
		`\bdaily budget\b`, `\bcost of (a |the )?trip\b`, `\btotal cost\b`,
	)
	visaPatterns = compileAll(
		`\bvisa(s)?\b`, `\bentry requirement(s)?\b`, `\bpassport requirement(s)?\b`,
		`do i need a visa`,
	)
	safetyPatterns = compileAll(
		`\bis it safe\b`, `\bsafety\b`, `\bsolo travel\b.*\bsafe\b`,
		`\bsafe\b.*\b(solo|alone|woman|female)\b`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify decides what kind of travel question the utterance is. Order
// matters: accommodation wording wins over generic attraction words, and the
// narrower intents (visa, safety, budget, best-time) are checked before the
// broad ones so "do I need a visa for Thailand" doesn't fall into general.
func Classify(userInput string) QueryType {
	text := strings.ToLower(userInput)

	switch {
	case anyMatch(visaPatterns, text):
		return QueryVisa
	case anyMatch(safetyPatterns, text):
		return QuerySafety
	case anyMatch(hotelPatterns, text):
		return QueryAccommodation
	case anyMatch(bestTimePatterns, text):
		return QueryBestTime
	case anyMatch(budgetPatterns, text):
		return QueryBudget
	case anyMatch(destinationPatterns, text):
		return QueryDestination
	case anyMatch(packingPatterns, text):
		return QueryPacking
	case anyMatch(attractionsPatterns, text):
		return QueryAttractions
	default:
		return QueryGeneral
	}
}

// FollowupIntent spots quick meta-questions about the current topic that can
// be answered without a full pipeline run.
func FollowupIntent(userInput string) string {
	text := strings.ToLower(userInput)
	switch {
	case strings.Contains(text, "how many days") || strings.Contains(text, "long should i stay"):
		return "duration_estimate"
	case strings.Contains(text, "cost") || strings.Contains(text, "price"):
		return "cost_estimate"
	case strings.Contains(text, "food") || strings.Contains(text, "restaurant"):
		return "food_recommendations"
	default:
		return ""
	}
}
