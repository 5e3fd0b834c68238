package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"tripwise-backend/internal/conversation"
	"tripwise-backend/internal/llm"
	"tripwise-backend/internal/metrics"
	"tripwise-backend/internal/models"
	"tripwise-backend/internal/prompt"
	"tripwise-backend/internal/session"
	"tripwise-backend/internal/services"
)

// Service runs the full question-answering pipeline: classify the turn,
// extract entities, enrich with external data, prompt the model, and fall
// back to deterministic answers when the model is unavailable.
type Service struct {
	llm      llm.Provider
	prompts  *prompt.Engine
	sessions *session.Manager
	geocode  *services.GeocodeService
	weather  *services.WeatherService
	country  *services.CountryService
	places   *services.PlacesService
	metrics  *metrics.Metrics

	rateChan   chan struct{}
	llmTimeout time.Duration
}

func New(provider llm.Provider, sessions *session.Manager,
	geocode *services.GeocodeService, weather *services.WeatherService,
	country *services.CountryService, places *services.PlacesService,
	concurrent int, llmTimeout time.Duration) *Service {

	if concurrent < 1 {
		concurrent = 1
	}
	return &Service{
		llm:        provider,
		prompts:    prompt.NewEngine(),
		sessions:   sessions,
		geocode:    geocode,
		weather:    weather,
		country:    country,
		places:     places,
		metrics:    metrics.Global(),
		rateChan:   make(chan struct{}, concurrent),
		llmTimeout: llmTimeout,
	}
}

// lookupData aggregates whatever external context the pipeline managed to
// fetch. Every field is optional; lookups fail independently.
type lookupData struct {
	Location    *services.Location
	Forecast    *services.Forecast
	Climate     string
	BestDay     *services.BestDay
	Country     *services.CountryInfo
	Hotels      []services.Place
	Attractions []services.Place
	Transport   []services.Place
}

func (d *lookupData) externalJSON() string {
	ext := map[string]any{}
	if d.Location != nil {
		ext["location"] = d.Location
	}
	if d.Forecast != nil {
		ext["weather"] = d.Forecast
	}
	if d.Country != nil {
		ext["country"] = d.Country
	}
	if len(d.Hotels) > 0 {
		ext["hotels"] = d.Hotels
	}
	if len(d.Attractions) > 0 {
		ext["attractions"] = d.Attractions
	}
	if len(d.Transport) > 0 {
		ext["transport"] = d.Transport
	}
	if len(ext) == 0 {
		return ""
	}
	b, err := json.Marshal(ext)
	if err != nil {
		return ""
	}
	return string(b)
}

// Ask handles one conversational turn. It always produces an answer: model
// failures degrade to heuristic responses rather than errors.
func (s *Service) Ask(ctx context.Context, sessionID, text string) *models.AskResponse {
	s.metrics.AsksTotal.Inc()

	sess := s.sessions.Get(sessionID)
	queryType := conversation.Classify(text)
	entities := conversation.Extract(text, sess.Entities())

	resp := &models.AskResponse{SessionID: sess.ID}
	defer func() {
		sess.SetEntities(entities)
		sess.SetLastQuery(queryType)
		sess.Record(text, resp.Answer)
		resp.Context = entities.AsContext()
	}()

	// Quick meta-questions about the current topic skip the full pipeline.
	if queryType == conversation.QueryGeneral {
		if intent := conversation.FollowupIntent(text); intent != "" {
			if answer := followupAnswer(intent, entities); answer != "" {
				resp.Answer = answer
				return resp
			}
		}
	}

	// Missing slots the intent can't do without.
	if question := clarify(queryType, entities); question != "" {
		resp.Answer = question
		return resp
	}

	ext := s.gather(ctx, queryType, entities)

	// Intents with deterministic answers skip the model entirely.
	switch queryType {
	case conversation.QueryBestTime:
		resp.Answer = bestTimeAnswer(entities, ext)
	case conversation.QueryBudget:
		resp.Answer = budgetAnswer(entities)
	case conversation.QueryVisa:
		resp.Answer = visaAnswer(entities, passportHint(sess))
	case conversation.QuerySafety:
		resp.Answer = safetyAnswer(entities, ext)
	default:
		answer, usedModel := s.generate(ctx, queryType, text, sess, entities, ext)
		resp.Answer = answer
		if usedModel {
			resp.Followup = s.generateFollowup(ctx, queryType, entities)
		}
	}
	if resp.Followup == "" {
		resp.Followup = followupQuestion(queryType, entities)
	}

	return resp
}

// Summary reports the session's accumulated context and recent history.
func (s *Service) Summary(sessionID string) *models.SummaryResponse {
	sess := s.sessions.Get(sessionID)
	summary := map[string]any{
		"context":        sess.Entities().AsContext(),
		"recent_history": sess.RecentHistory(),
	}
	if topic := sess.LastQuery(); topic != "" {
		summary["current_topic"] = string(topic)
	}
	return &models.SummaryResponse{Summary: summary, SessionID: sess.ID}
}

// Reset clears the session's history and entities.
func (s *Service) Reset(sessionID string) *models.ResetResponse {
	if sessionID == "" {
		sessionID = session.DefaultID
	}
	s.sessions.Reset(sessionID)
	return &models.ResetResponse{Status: "reset", SessionID: sessionID}
}

// gather fetches external context in parallel. Failures are logged and
// counted but never block the answer.
func (s *Service) gather(ctx context.Context, queryType conversation.QueryType, e conversation.Entities) *lookupData {
	ext := &lookupData{}
	if e.Destination == "" {
		return ext
	}

	loc, err := s.geocode.Lookup(ctx, e.Destination)
	if err != nil {
		log.Printf("geocode lookup failed for %q: %v", e.Destination, err)
		s.metrics.LookupErrors.WithLabelValues("geocode").Inc()
		return ext
	}
	if loc == nil {
		return ext
	}
	ext.Location = loc

	var wg sync.WaitGroup
	var mu sync.Mutex

	run := func(source string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Printf("%s lookup failed for %q: %v", source, e.Destination, err)
				s.metrics.LookupErrors.WithLabelValues(source).Inc()
			}
		}()
	}

	needsWeather := queryType == conversation.QueryPacking ||
		queryType == conversation.QueryBestTime || queryType == conversation.QueryDestination
	needsHotels := queryType == conversation.QueryAccommodation ||
		queryType == conversation.QueryDestination || queryType == conversation.QueryAttractions
	needsAttractions := queryType == conversation.QueryAttractions ||
		queryType == conversation.QueryDestination
	needsTransport := queryType == conversation.QueryAttractions ||
		queryType == conversation.QueryAccommodation

	if needsWeather {
		run("weather", func() error {
			f, err := s.weather.GetForecast(ctx, loc.Lat, loc.Lon, 7)
			if err != nil {
				return err
			}
			climate, err := s.weather.ClimateSummary(ctx, loc.Lat, loc.Lon)
			if err != nil {
				return err
			}
			mu.Lock()
			ext.Forecast = f
			ext.Climate = climate
			mu.Unlock()
			return nil
		})
	}
	if queryType == conversation.QueryBestTime {
		run("weather", func() error {
			best, err := s.weather.BestTravelDay(ctx, loc.Lat, loc.Lon)
			if err != nil {
				return err
			}
			mu.Lock()
			ext.BestDay = best
			mu.Unlock()
			return nil
		})
	}
	if queryType != conversation.QueryPacking {
		run("country", func() error {
			info, err := s.country.GetCountryInfo(ctx, e.Destination)
			if err != nil {
				return err
			}
			mu.Lock()
			ext.Country = info
			mu.Unlock()
			return nil
		})
	}
	if needsHotels {
		run("places", func() error {
			hotels, err := s.places.HotelsNearby(ctx, loc.Lat, loc.Lon, 3000, 5)
			if err != nil {
				return err
			}
			mu.Lock()
			ext.Hotels = hotels
			mu.Unlock()
			return nil
		})
	}
	if needsAttractions {
		run("places", func() error {
			attractions, err := s.places.AttractionsNearby(ctx, loc.Lat, loc.Lon, 5000, 8)
			if err != nil {
				return err
			}
			mu.Lock()
			ext.Attractions = attractions
			mu.Unlock()
			return nil
		})
	}
	if needsTransport {
		run("places", func() error {
			stops, err := s.places.TransportStops(ctx, loc.Lat, loc.Lon, 2000, 5)
			if err != nil {
				return err
			}
			mu.Lock()
			ext.Transport = stops
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()
	return ext
}

// generate prompts the model. Any failure falls back to the heuristic
// responder for the intent; the second return reports whether the model
// produced the answer.
func (s *Service) generate(ctx context.Context, queryType conversation.QueryType, text string,
	sess *session.Session, e conversation.Entities, ext *lookupData) (string, bool) {

	system, user := s.prompts.Build(queryType, prompt.Data{
		Query:        text,
		History:      sess.RecentHistory(),
		ExternalJSON: ext.externalJSON(),
		ClimateInfo:  ext.Climate,
		Duration:     e.Duration,
		Activities:   strings.Join(e.Interests, ", "),
	})

	answer, err := s.callModel(ctx, system, user)
	if err != nil {
		log.Printf("model call failed (%s): %v", queryType, err)
		s.metrics.LLMFailures.Inc()
		return fallbackAnswer(queryType, e, ext), false
	}
	return answer, true
}

// generateFollowup asks the model for the single most useful next question.
// Best effort: any failure just means no followup.
func (s *Service) generateFollowup(ctx context.Context, queryType conversation.QueryType, e conversation.Entities) string {
	var known []string
	for k, v := range e.AsContext() {
		known = append(known, fmt.Sprintf("%s: %v", k, v))
	}
	knownContext := "None yet"
	if len(known) > 0 {
		sort.Strings(known)
		knownContext = strings.Join(known, "; ")
	}

	followup, err := s.callModel(ctx,
		"You are a friendly, proactive travel planning assistant. "+
			"Ask the single most relevant next question given what you already know. "+
			"Do not repeat prior questions. Keep it short and conversational.",
		fmt.Sprintf("Current query type: %s\nKnown info: %s\n\nWhat is the next most natural follow-up question?",
			queryType, knownContext))
	if err != nil {
		return ""
	}
	return followup
}

// callModel holds a concurrency token so a burst of requests doesn't
// overwhelm the runtime, then calls the provider with the configured timeout.
func (s *Service) callModel(ctx context.Context, system, user string) (string, error) {
	select {
	case s.rateChan <- struct{}{}:
		defer func() { <-s.rateChan }()
	case <-ctx.Done():
		return "", llm.ErrTimeout
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	start := time.Now()
	answer, err := s.llm.Generate(llmCtx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
	s.metrics.LLMLatency.Observe(time.Since(start).Seconds())
	return answer, err
}

// passportHint scans the session history for a previously mentioned
// passport nationality. Best effort only.
func passportHint(sess *session.Session) string {
	for _, msg := range sess.History() {
		if msg.Role != "user" {
			continue
		}
		lower := strings.ToLower(msg.Content)
		if !strings.Contains(lower, "passport") && !strings.Contains(lower, "citizen") {
			continue
		}
		// "I have a German passport" / "my passport is from Germany"
		for mention, country := range passportMentions {
			if strings.Contains(lower, mention) {
				return country
			}
		}
	}
	return ""
}

var passportMentions = map[string]string{
	"united states": "united states", "usa": "united states", "american": "united states",
	"canada": "canada", "canadian": "canada",
	"united kingdom": "united kingdom", " uk ": "united kingdom", "british": "united kingdom",
	"germany": "germany", "german": "germany",
	"france": "france", "french": "france",
	"india": "india", "indian": "india",
	"china": "china", "chinese": "china",
	"australia": "australia", "australian": "australia",
	"japan": "japan", "japanese": "japan",
	"spain": "spain", "spanish": "spain",
	"italy": "italy", "italian": "italy",
}
