package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

var unlimitedRe = regexp.MustCompile(`(?i)\bunlimited\b|\bno\s*limit\b|\bno budget\b`)
var priceRe = regexp.MustCompile(`(?i)(\$|€|£)?\s*(\d{2,5})\s*(usd|eur|gbp|dollars|euros|pounds)?\s*(per\s*night|/night)?`)

var symbolCurrencies = map[string]string{"$": "USD", "€": "EUR", "£": "GBP"}

var wordCurrencies = map[string]string{
	"usd": "USD", "dollars": "USD",
	"eur": "EUR", "euros": "EUR",
	"gbp": "GBP", "pounds": "GBP",
}

// interpretBudget reads a budget out of free text: either an explicit
// "unlimited", or an amount with a currency symbol or word.
func interpretBudget(text string) (unlimited bool, maxNightPrice float64, currency string) {
	if unlimitedRe.MatchString(text) {
		return true, 0, ""
	}

	m := priceRe.FindStringSubmatch(text)
	if m == nil || (m[1] == "" && m[3] == "") {
		// A bare number with no currency marker is too ambiguous to treat
		// as a price.
		return false, 0, ""
	}

	amt, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return false, 0, ""
	}
	if cur := strings.ToLower(m[3]); cur != "" {
		currency = wordCurrencies[cur]
	} else if m[1] != "" {
		currency = symbolCurrencies[m[1]]
	}
	return false, amt, currency
}
