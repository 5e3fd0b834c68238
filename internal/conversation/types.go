package conversation

import "time"

// QueryType labels what kind of travel question a turn is asking.
type QueryType string

const (
	QueryDestination   QueryType = "destination_recommendation"
	QueryPacking       QueryType = "packing_suggestions"
	QueryAttractions   QueryType = "local_attractions"
	QueryAccommodation QueryType = "accommodation"
	QueryBestTime      QueryType = "best_time"
	QueryBudget        QueryType = "budget_estimate"
	QueryVisa          QueryType = "visa_requirements"
	QuerySafety        QueryType = "safety_advice"
	QueryGeneral       QueryType = "general"
)

// Entities holds the slots extracted from a single utterance, back-filled
// from prior turns where the utterance leaves them blank.
type Entities struct {
	Destination       string
	Duration          string
	Budget            string
	Interests         []string
	AccommodationType string
	AccommodationVibe string

	// Budget interpretation
	BudgetUnlimited bool
	MaxNightPrice   float64
	Currency        string

	// Resolved travel window ("in 2 weeks for 10 days")
	StartDate time.Time
	EndDate   time.Time
	Nights    int
}

// AsContext flattens the entities into the shallow slot map carried in
// API responses. Zero-valued slots are omitted.
func (e Entities) AsContext() map[string]any {
	ctx := map[string]any{}
	if e.Destination != "" {
		ctx["destination"] = e.Destination
	}
	if e.Duration != "" {
		ctx["duration"] = e.Duration
	}
	if e.Budget != "" {
		ctx["budget"] = e.Budget
	}
	if len(e.Interests) > 0 {
		ctx["interests"] = e.Interests
	}
	if e.AccommodationType != "" {
		ctx["accommodation_type"] = e.AccommodationType
	}
	if e.AccommodationVibe != "" {
		ctx["accommodation_vibe"] = e.AccommodationVibe
	}
	if e.BudgetUnlimited {
		ctx["budget_unlimited"] = true
	}
	if e.MaxNightPrice > 0 {
		ctx["max_price_per_night"] = e.MaxNightPrice
	}
	if e.Currency != "" {
		ctx["currency"] = e.Currency
	}
	if !e.StartDate.IsZero() {
		ctx["start_date"] = e.StartDate.Format("2006-01-02")
	}
	if !e.EndDate.IsZero() {
		ctx["end_date"] = e.EndDate.Format("2006-01-02")
	}
	if e.Nights > 0 {
		ctx["nights"] = e.Nights
	}
	return ctx
}
