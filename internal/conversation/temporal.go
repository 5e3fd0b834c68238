package conversation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDaysRe = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(day|days|week|weeks)\b`)
var durationDaysRe = regexp.MustCompile(`(?i)\b(\d+)\s+(day|days|night|nights|week|weeks)\b`)

// for tests
var timeNow = time.Now

func unitDays(qty int, unit string) int {
	if strings.HasPrefix(strings.ToLower(unit), "week") {
		return qty * 7
	}
	// nights count as days for the booking window
	return qty
}

// ResolveDates turns relative phrases like "in 2 weeks for 10 days" into a
// concrete start/end date and a night count. Zero values mean the phrase
// carried no temporal information.
func ResolveDates(text string) (start, end time.Time, nights int) {
	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	relSpan := relativeDaysRe.FindStringIndex(text)
	if m := relativeDaysRe.FindStringSubmatch(text); m != nil {
		qty, _ := strconv.Atoi(m[1])
		start = today.AddDate(0, 0, unitDays(qty, m[2]))
	}

	// First duration mention that is not the "in N days/weeks" offset itself.
	for _, idx := range durationDaysRe.FindAllStringSubmatchIndex(text, -1) {
		if relSpan != nil && idx[0] >= relSpan[0] && idx[1] <= relSpan[1] {
			continue
		}
		qty, _ := strconv.Atoi(text[idx[2]:idx[3]])
		nights = unitDays(qty, text[idx[4]:idx[5]])
		break
	}

	if !start.IsZero() && nights > 0 {
		end = start.AddDate(0, 0, nights) // checkout date
	}
	return start, end, nights
}
