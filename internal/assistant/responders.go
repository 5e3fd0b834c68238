package assistant

import (
	"fmt"
	"strings"

	"tripwise-backend/internal/conversation"
	"tripwise-backend/internal/services"
)

// The responders produce deterministic answers for the intents that don't
// need a model (best-time, budget, visa, safety) and serve as fallbacks
// when the model call fails. The assistant must always answer.

func clarify(queryType conversation.QueryType, e conversation.Entities) string {
	switch queryType {
	case conversation.QueryPacking:
		if e.Destination == "" {
			return "Happy to help you pack! Which destination are you heading to?"
		}
		if e.Duration == "" {
			return fmt.Sprintf("How long is your trip to %s? That changes the packing list a lot.", e.Destination)
		}
	case conversation.QueryAttractions, conversation.QueryAccommodation,
		conversation.QueryBestTime, conversation.QuerySafety:
		if e.Destination == "" {
			return "Which destination do you have in mind?"
		}
	case conversation.QueryVisa:
		if e.Destination == "" {
			return "Which country are you planning to visit? I'll check the visa situation."
		}
	}
	return ""
}

func followupAnswer(intent string, e conversation.Entities) string {
	dest := e.Destination
	if dest == "" {
		return ""
	}
	switch intent {
	case "duration_estimate":
		return fmt.Sprintf("For %s, most travellers find 4-7 days a good fit: enough for the "+
			"highlights without rushing. Add 2-3 days if you want day trips or a slower pace.", dest)
	case "cost_estimate":
		return budgetAnswer(e)
	case "food_recommendations":
		return fmt.Sprintf("For food in %s, skip restaurants on the main squares and walk two "+
			"streets back: that's where locals eat. Markets are great for lunch, and asking your "+
			"accommodation for one personal favourite usually beats any list.", dest)
	}
	return ""
}

func fallbackAnswer(queryType conversation.QueryType, e conversation.Entities, ext *lookupData) string {
	switch queryType {
	case conversation.QueryAccommodation:
		return accommodationFallback(e, ext)
	case conversation.QueryAttractions:
		return attractionsFallback(e, ext)
	case conversation.QueryPacking:
		return packingFallback(e, ext)
	case conversation.QueryDestination:
		return destinationFallback(e)
	default:
		return generalFallback(e)
	}
}

func accommodationFallback(e conversation.Entities, ext *lookupData) string {
	var sb strings.Builder
	dest := e.Destination
	if dest == "" {
		dest = "your destination"
	}

	if len(ext.Hotels) > 0 {
		fmt.Fprintf(&sb, "Here are places to stay near the centre of %s:\n", dest)
		for _, h := range ext.Hotels {
			kind := h.Type
			if kind == "" {
				kind = "stay"
			}
			fmt.Fprintf(&sb, "- %s (%s)\n", h.Name, kind)
		}
	} else {
		fmt.Fprintf(&sb, "For %s, look for accommodation near the centre or close to a metro/rail stop.\n", dest)
	}

	if e.AccommodationType != "" {
		fmt.Fprintf(&sb, "Filtered for %s-style stays where possible. ", e.AccommodationType)
	}
	if e.MaxNightPrice > 0 {
		fmt.Fprintf(&sb, "Aim under %.0f %s per night by booking 3+ weeks ahead. ", e.MaxNightPrice, orCurrency(e.Currency))
	} else if e.BudgetUnlimited {
		sb.WriteString("With no budget cap, boutique hotels in the old town are worth the premium. ")
	}
	sb.WriteString("Tip: check the cancellation policy before paying — flexible rates cost little extra.")
	return sb.String()
}

func attractionsFallback(e conversation.Entities, ext *lookupData) string {
	dest := e.Destination
	if dest == "" {
		dest = "your destination"
	}
	if len(ext.Attractions) == 0 {
		return fmt.Sprintf("For %s, start at the old town or main square, pick one museum that "+
			"matches your interests, and leave an afternoon unplanned for wandering — the best "+
			"finds are rarely on a list.", dest)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Worth seeing in %s:\n", dest)
	for _, a := range ext.Attractions {
		fmt.Fprintf(&sb, "- %s\n", a.Name)
	}
	if len(ext.Transport) > 0 {
		fmt.Fprintf(&sb, "Getting around: there are %d public transport stops nearby, so a day "+
			"pass usually beats taxis.", len(ext.Transport))
	}
	return strings.TrimSpace(sb.String())
}

func packingFallback(e conversation.Entities, ext *lookupData) string {
	var sb strings.Builder
	sb.WriteString("Packing essentials:\n")
	sb.WriteString("- Documents: passport, bookings, travel insurance details\n")
	sb.WriteString("- Electronics: charger, power bank, plug adapter\n")
	sb.WriteString("- Toiletries: the basics plus any medication\n")

	climate := strings.ToLower(ext.Climate)
	switch {
	case strings.Contains(climate, "hot"):
		sb.WriteString("- Clothing: light, breathable layers, sun hat, sunscreen\n")
	case strings.Contains(climate, "cold"):
		sb.WriteString("- Clothing: warm layers, gloves, a proper coat\n")
	default:
		sb.WriteString("- Clothing: layers you can add or shed, one warm piece\n")
	}
	if strings.Contains(climate, "rain") {
		sb.WriteString("- Weather: compact umbrella or rain jacket\n")
	}
	if e.Duration != "" {
		fmt.Fprintf(&sb, "For %s, one carry-on usually does it if you pack outfits that mix and match.", e.Duration)
	}
	return strings.TrimSpace(sb.String())
}

func destinationFallback(e conversation.Entities) string {
	type idea struct{ place, why string }
	picks := []idea{
		{"Lisbon", "great value, walkable, reliable sun most of the year"},
		{"Kyoto", "temples, gardens and food in a compact, calm city"},
		{"Mexico City", "world-class museums and street food on a modest budget"},
	}
	for _, interest := range e.Interests {
		switch interest {
		case "beach", "surfing", "diving", "snorkeling":
			picks = append([]idea{{"Bali", "beaches and surf with a big range of budgets"}}, picks...)
		case "hiking", "nature", "adventure":
			picks = append([]idea{{"Slovenia", "alpine lakes and trails without alpine prices"}}, picks...)
		case "history", "culture", "museum", "art":
			picks = append([]idea{{"Athens", "ancient sites plus a lively modern food scene"}}, picks...)
		case "food":
			picks = append([]idea{{"Bangkok", "arguably the best street food city anywhere"}}, picks...)
		}
	}

	var sb strings.Builder
	sb.WriteString("A few ideas to get you started:\n")
	for i, p := range picks {
		if i >= 4 {
			break
		}
		fmt.Fprintf(&sb, "- %s: %s\n", p.place, p.why)
	}
	sb.WriteString("Tell me your budget and how long you have, and I'll narrow it down.")
	return sb.String()
}

func generalFallback(e conversation.Entities) string {
	if e.Destination != "" {
		return fmt.Sprintf("I can help you plan %s: ask me about places to stay, things to see, "+
			"what to pack, the best time to go, budgets, visas or safety.", e.Destination)
	}
	return "I'm your travel planning assistant. Ask me where to go, what to pack, where to stay, " +
		"what things cost, or about visas and safety for a destination."
}

func bestTimeAnswer(e conversation.Entities, ext *lookupData) string {
	dest := e.Destination
	wantsSurf := false
	for _, i := range e.Interests {
		if i == "surfing" {
			wantsSurf = true
		}
	}

	// Curated seasonal guidance for a common ask the forecast can't answer.
	if strings.EqualFold(dest, "Bali") && wantsSurf {
		return "For surfing in Bali, the dry season (May to September) is best: consistent " +
			"offshore winds make the west coast breaks (Uluwatu, Canggu, Padang Padang) fire. " +
			"In the wet season (October to March) the swell shifts and the east coast " +
			"(Keramas, Nusa Dua) works better. Beginners will find friendlier waves around " +
			"Kuta and Canggu year-round."
	}

	var sb strings.Builder
	if ext.BestDay != nil {
		sb.WriteString(ext.BestDay.Advice)
		sb.WriteString(" ")
	}
	if ext.Climate != "" {
		fmt.Fprintf(&sb, "This week in %s: %s", dest, ext.Climate)
	}
	if sb.Len() == 0 {
		return fmt.Sprintf("Shoulder seasons (spring and autumn) are usually the sweet spot for "+
			"%s: decent weather, thinner crowds and lower prices. Tell me the month you're "+
			"considering and I'll check the forecast.", orDest(dest))
	}
	return strings.TrimSpace(sb.String())
}

// Daily budget tiers for Western Europe, EUR per person including
// accommodation, food, local transport and one activity.
var europeBudgetTiers = []struct {
	name     string
	low, high int
	detail   string
}{
	{"Backpacker", 70, 110, "hostel dorms, supermarkets and street food, walking and buses"},
	{"Mid-range", 150, 250, "3-star hotel or private rental, casual restaurants, some paid sights"},
	{"Comfort", 250, 400, "4-star hotel, nicer restaurants, taxis when convenient"},
	{"Luxury", 450, 700, "5-star or boutique stays, fine dining, private tours"},
}

func budgetAnswer(e conversation.Entities) string {
	var sb strings.Builder
	dest := orDest(e.Destination)
	fmt.Fprintf(&sb, "Rough daily budgets for %s (per person, per day):\n", dest)
	for _, t := range europeBudgetTiers {
		fmt.Fprintf(&sb, "- %s: €%d-%d — %s\n", t.name, t.low, t.high, t.detail)
	}
	sb.WriteString("Eastern Europe runs 30-40% cheaper; Switzerland, Norway and Iceland run " +
		"40-60% more. Flights and travel insurance are on top.")
	if e.Nights > 0 {
		mid := (europeBudgetTiers[1].low + europeBudgetTiers[1].high) / 2
		fmt.Fprintf(&sb, "\nFor your %d nights, a mid-range trip lands around €%d plus flights.",
			e.Nights, mid*e.Nights)
	}
	return sb.String()
}

func visaAnswer(e conversation.Entities, passportCountry string) string {
	dest := strings.ToLower(e.Destination)
	if dest != "thailand" && dest != "bangkok" && dest != "phuket" && dest != "chiang mai" {
		return fmt.Sprintf("Visa rules for %s depend on your passport. Check the destination's "+
			"official immigration site or your foreign ministry's travel pages — and verify "+
			"passport validity (most countries want 6+ months left) and onward ticket "+
			"requirements before booking.", orDest(e.Destination))
	}

	stayDays := services.EstimateStayDays(e.Duration)
	if stayDays == 0 {
		stayDays = e.Nights
	}
	advice := services.ThailandVisaAdvice(passportCountry, stayDays, "tourism")

	var sb strings.Builder
	switch advice.Path {
	case "visa_exempt":
		fmt.Fprintf(&sb, "Good news: your passport is typically visa-exempt for Thailand, allowing up to %d days. ", advice.AllowedDays)
	case "evoa_voa":
		fmt.Fprintf(&sb, "Your passport is commonly eligible for Thailand's eVOA/Visa on Arrival, allowing up to %d days. ", advice.AllowedDays)
	case "tourist_visa_required":
		sb.WriteString("You'll likely need a Tourist Visa (TR) arranged before travelling to Thailand. ")
	case "need_passport_info":
		sb.WriteString("Tell me your passport country and I'll check whether you're visa-exempt for Thailand, eligible for eVOA, or need a Tourist Visa. ")
	}
	for _, n := range advice.Notes {
		sb.WriteString(n + " ")
	}
	if len(advice.NextSteps) > 0 {
		sb.WriteString("Next steps: " + strings.Join(advice.NextSteps, " "))
		sb.WriteString(" ")
	}
	sb.WriteString(advice.Disclaimer)
	return strings.TrimSpace(sb.String())
}

func safetyAnswer(e conversation.Entities, ext *lookupData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "General safety notes for %s:\n", orDest(e.Destination))
	sb.WriteString("- Keep valuables out of sight in crowded areas; pickpocketing is the most common issue for tourists\n")
	sb.WriteString("- Use licensed taxis or ride apps, especially from airports\n")
	sb.WriteString("- Keep a digital copy of your passport and note your embassy's contact details\n")
	sb.WriteString("- Get travel insurance that covers medical evacuation\n")
	if ext.Country != nil && len(ext.Country.Languages) > 0 {
		fmt.Fprintf(&sb, "- Local language is %s — a translation app helps in emergencies\n", ext.Country.Languages[0])
	}
	sb.WriteString("Check your government's current travel advisory before you book.")
	return sb.String()
}

func followupQuestion(queryType conversation.QueryType, e conversation.Entities) string {
	switch queryType {
	case conversation.QueryDestination:
		if e.Duration == "" {
			return "How many days do you have for the trip?"
		}
		return "Want me to look at places to stay or things to do there?"
	case conversation.QueryAttractions:
		if e.Destination != "" {
			return fmt.Sprintf("Would you like hotel suggestions in %s too?", e.Destination)
		}
	case conversation.QueryAccommodation:
		return "Shall I check the weather for your dates as well?"
	case conversation.QueryBestTime:
		return "Want a packing list for that window?"
	}
	return ""
}

func orDest(dest string) string {
	if dest == "" {
		return "your destination"
	}
	return dest
}

func orCurrency(c string) string {
	if c == "" {
		return "USD"
	}
	return c
}
