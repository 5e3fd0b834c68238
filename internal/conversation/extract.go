package conversation

import (
	"regexp"
	"strings"
)

// Proper nouns like "New York", "San Francisco"
var properNounRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]{2,}(?:[\s\-][A-Z][a-zA-Z]{2,})*)\b`)

// Hints like "in Paris", "to London"
var cityHintRe = regexp.MustCompile(`(?:\bin|\bto|\bfor|\bat)\s+([A-Z][a-zA-Z]{2,}(?:[\s\-][A-Z][a-zA-Z]{2,})*)`)

var durationRe = regexp.MustCompile(`(?i)(\d+)[\s-]*(days?|weeks?|months?)`)

var budgetRe = regexp.MustCompile(`(?i)(?:(?:budget|up to|around)\s*)?(\$|€|£)?\s*(\d+(?:,\d{3})*|\d+)(?:\s*(k|thousand))?\s*(usd|dollars|eur|euros|gbp|pounds|per night|/night|a night)?`)

// Words that derail naive destination extraction at sentence start.
var questionWords = map[string]bool{
	"which": true, "where": true, "what": true, "when": true,
	"how": true, "who": true, "whom": true, "whose": true,
}

// Common words mapped to normalized durations.
var wordDurations = []struct{ phrase, norm string }{
	{"weekend", "2 days (weekend)"},
	{"couple of days", "2-3 days"},
	{"few days", "3-4 days"},
	{"fortnight", "2 weeks"},
}

var interestWords = []string{
	"beach", "mountain", "city", "culture", "adventure", "food",
	"shopping", "nature", "museum", "nightlife", "family", "romantic",
	"dinner", "formal", "hiking", "surfing",
}

var accommodationTypes = []string{
	"hotel", "hostel", "apartment", "resort", "guesthouse", "bnb", "motel", "boutique",
}

var accommodationVibes = []string{
	"luxury", "boutique", "business", "family", "romantic", "party", "quiet",
}

var noPreferenceRe = regexp.MustCompile(`(?i)\b(don'?t care|no preference|any|flexible)\b`)

func stripLeadingQuestionWords(text string) string {
	tokens := strings.Fields(text)
	for len(tokens) > 0 {
		w := strings.ToLower(strings.Trim(tokens[0], ",.?"))
		if !questionWords[w] {
			break
		}
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

func wordBoundary(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `s?\b`)
}

// Extract pulls travel slots out of one utterance. Slots the utterance
// doesn't mention are back-filled from prior so a destination named two
// turns ago still anchors "what should I pack?".
func Extract(userInput string, prior Entities) Entities {
	var e Entities
	cleaned := stripLeadingQuestionWords(userInput)

	// Duration
	if m := durationRe.FindString(cleaned); m != "" {
		e.Duration = strings.ReplaceAll(m, "-", " ")
	} else {
		for _, wd := range wordDurations {
			if regexp.MustCompile(`(?i)\b` + wd.phrase + `\b`).MatchString(cleaned) {
				e.Duration = wd.norm
				break
			}
		}
	}

	// Budget phrase + interpretation
	if unlimited, price, currency := interpretBudget(cleaned); unlimited {
		e.BudgetUnlimited = true
		e.Budget = "unlimited"
	} else if price > 0 {
		e.MaxNightPrice = price
		e.Currency = currency
	}
	if e.Budget == "" {
		if m := budgetRe.FindStringSubmatch(cleaned); m != nil && (m[1] != "" || m[3] != "" || m[4] != "") {
			e.Budget = strings.TrimSpace(m[0])
		}
	}

	// Interests
	for _, w := range interestWords {
		if wordBoundary(w).MatchString(cleaned) {
			e.Interests = append(e.Interests, w)
		}
	}

	// Accommodation type and vibe
	for _, t := range accommodationTypes {
		if wordBoundary(t).MatchString(cleaned) {
			if t == "boutique" {
				e.AccommodationType = "hotel"
			} else {
				e.AccommodationType = t
			}
			break
		}
	}
	if noPreferenceRe.MatchString(cleaned) {
		e.AccommodationVibe = "any"
	} else {
		for _, v := range accommodationVibes {
			if wordBoundary(v).MatchString(cleaned) {
				e.AccommodationVibe = v
				break
			}
		}
	}

	// Destination: "in Paris" style hint first, trailing proper noun fallback
	if m := cityHintRe.FindStringSubmatch(cleaned); m != nil {
		e.Destination = m[1]
	} else if tokens := properNounRe.FindAllString(cleaned, -1); len(tokens) > 0 {
		e.Destination = tokens[len(tokens)-1]
	}

	// Travel window
	e.StartDate, e.EndDate, e.Nights = ResolveDates(cleaned)

	// Context continuity
	if e.Destination == "" {
		e.Destination = prior.Destination
	}
	if e.Duration == "" {
		e.Duration = prior.Duration
	}
	if e.Budget == "" {
		e.Budget = prior.Budget
	}
	if len(e.Interests) == 0 {
		e.Interests = prior.Interests
	}
	if e.AccommodationType == "" {
		e.AccommodationType = prior.AccommodationType
	}
	if e.AccommodationVibe == "" {
		e.AccommodationVibe = prior.AccommodationVibe
	}

	return e
}
