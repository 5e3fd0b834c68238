package prompt

import (
	"strings"

	"tripwise-backend/internal/conversation"
)

// Template pairs a system prompt with a user prompt skeleton for one
// query type. Placeholders are {query}, {history}, {external_data},
// {climate_info}, {duration} and {activities}.
type Template struct {
	System string
	User   string
}

// Data carries the per-turn values substituted into a template.
type Data struct {
	Query        string
	History      string
	ExternalJSON string
	ClimateInfo  string
	Duration     string
	Activities   string
}

// Engine renders per-intent prompt templates.
type Engine struct {
	templates map[conversation.QueryType]Template
}

func NewEngine() *Engine {
	return &Engine{templates: defaultTemplates()}
}

func defaultTemplates() map[conversation.QueryType]Template {
	return map[conversation.QueryType]Template{
		conversation.QueryDestination: {
			System: "You are a helpful, concise travel expert.\n" +
				"GOALS:\n" +
				"- Recommend destinations tailored to user budget, interests, constraints.\n" +
				"- If hotel/transport info is available, weave it naturally into suggestions.\n" +
				"- Ask at most one clarifying question when needed.\n" +
				"STYLE:\n" +
				"- Use concrete bullet points.\n" +
				"- Keep under ~180 words unless explicitly asked.\n",
			User: "Context:\n{history}\n\n" +
				"User query: {query}\n\n" +
				"External data (JSON): {external_data}\n\n" +
				"Answer concisely with 3-5 recommendations max, each with a one-line why.\n" +
				"If hotels are provided, mention 1-2 nearby options.\n" +
				"If transport info is provided, add how to get around briefly.\n",
		},
		conversation.QueryPacking: {
			System: "You are a meticulous packing assistant. Think step-by-step internally, " +
				"but only output the final packing list and short justifications.\n" +
				"STYLE: bullet lists grouped by category, concise, quantities when useful.\n" +
				"If transport info is available, suggest items like metro cards or walking shoes.\n",
			User: "Think through silently:\n" +
				"1) Climate & season: {climate_info}\n" +
				"2) Trip duration: {duration}\n" +
				"3) Activities: {activities}\n\n" +
				"Now output ONLY the final packing list for: {query}\n" +
				"Context: {history}\n" +
				"Start with a short rationale, then categories (Clothing, Toiletries, Electronics, Documents, Extras).\n",
		},
		conversation.QueryAttractions: {
			System: "You are a local travel guide. Recommend both classics and hidden gems.\n" +
				"STYLE: concise bullets, practical tips (hours, costs when known), logical mini-itinerary.\n" +
				"If hotels are available, suggest 1-2 nearby as base options.\n" +
				"If transport info is available, include how to reach some attractions.\n",
			User: "Destination: {query}\n" +
				"Context: {history}\n" +
				"External info (JSON): {external_data}\n\n" +
				"Give 6-8 attractions max, grouped by neighborhood/area if sensible.\n" +
				"If transport info is present, explain briefly how to move around.\n" +
				"Add a 1-day sample path.\n",
		},
		conversation.QueryAccommodation: {
			System: "You are a travel accommodation advisor.\n" +
				"GOALS: suggest concrete places to stay matching type, vibe and nightly budget.\n" +
				"STYLE: short bullets with name, area and one reason each.\n",
			User: "User query: {query}\n" +
				"Context: {history}\n" +
				"Nearby options and area data (JSON): {external_data}\n\n" +
				"Recommend up to 5 stays. If the data lists real hotels, prefer those.\n" +
				"Close with one practical booking tip.\n",
		},
		conversation.QueryGeneral: {
			System: "You are a friendly travel planning assistant. Answer briefly and " +
				"practically. If the question is not about travel, gently steer back to " +
				"trip planning.\n",
			User: "Context:\n{history}\n\n" +
				"User query: {query}\n\n" +
				"External data (JSON): {external_data}\n",
		},
	}
}

// Build renders the template for the query type. Unknown types use the
// destination template, matching the assistant's historical behavior.
func (e *Engine) Build(queryType conversation.QueryType, d Data) (system, user string) {
	tpl, ok := e.templates[queryType]
	if !ok {
		tpl = e.templates[conversation.QueryDestination]
	}

	r := strings.NewReplacer(
		"{query}", d.Query,
		"{history}", orDefault(d.History, "None yet"),
		"{external_data}", orDefault(d.ExternalJSON, "{}"),
		"{climate_info}", orDefault(d.ClimateInfo, "N/A"),
		"{duration}", orDefault(d.Duration, "Not specified"),
		"{activities}", orDefault(d.Activities, "Not specified"),
	)
	return tpl.System, r.Replace(tpl.User)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
