// Package dispatch drives one interpretation turn: redact for logging,
// consult the custom command registry, classify and extract, fold in
// conversation context, then branch to the handler for the final intent.
// The pipeline is synchronous; only the reminder scheduler runs in the
// background.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vera/internal/collab"
	"vera/internal/commands"
	"vera/internal/config"
	verrors "vera/internal/errors"
	"vera/internal/logging"
	"vera/internal/metrics"
	"vera/internal/nlu"
	"vera/internal/reminder"
	"vera/internal/security/redaction"
	"vera/internal/session"
)

const (
	farewellResponse = "Goodbye! Have a great day!"
	searchPrompt     = "What would you like me to search for?"
	emailPrompt      = "Who should I send the email to? Please include their address."
	reminderHint     = "I couldn't understand the reminder format. Try saying 'remind me to do something in 5 minutes'"
	reminderBusy     = "I have too many reminders pending. Try again after one fires."
	apologyResponse  = "Sorry, something went wrong on my end. Please try that again."

	helpResponse = "I can help you with telling time and date, searching the web, " +
		"getting weather information, setting reminders, controlling smart home devices, " +
		"and basic conversation. Try saying 'What time is it?', 'Search for Go tutorials', " +
		"'What's the weather like in Paris?' or 'Remind me to call mom in 30 minutes'."
)

var (
	exitWords     = []string{"exit", "quit", "goodbye", "bye"}
	greetingWords = []string{"hello", "hi", "hey"}
)

func greetingResponses(name string, hour int) []string {
	return []string{
		fmt.Sprintf("%s, %s! How can I help you?", salutation(hour), name),
		"Hi there! What can I do for you?",
		"Hey! I'm here to assist you.",
	}
}

var fallbackResponses = []string{
	"I'm not sure how to help with that. Try saying 'help' to see what I can do.",
	"I didn't understand that command. Can you try rephrasing?",
	"Sorry, I don't know how to do that yet. Say 'help' for available commands.",
}

func salutation(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Options wires the dispatcher's collaborators. Every field is optional;
// zero values fall back to in-process defaults (unconfigured collaborators,
// a random selector, a nop logger).
type Options struct {
	Classifier  *nlu.Classifier
	Tracker     *session.Tracker
	Registry    *commands.Registry
	Reminders   *reminder.Scheduler
	Weather     collab.Weather
	Search      collab.Search
	Email       collab.Email
	Selector    Selector
	Preferences config.Preferences
	Logger      logging.Logger
	Now         func() time.Time
}

// Dispatcher resolves one input string to an Action. It is not safe for
// concurrent calls; the interaction loop processes one turn at a time.
type Dispatcher struct {
	classifier *nlu.Classifier
	tracker    *session.Tracker
	registry   *commands.Registry
	reminders  *reminder.Scheduler
	weather    collab.Weather
	search     collab.Search
	email      collab.Email
	selector   Selector
	prefs      config.Preferences
	logger     logging.Logger
	now        func() time.Time
}

func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		classifier: opts.Classifier,
		tracker:    opts.Tracker,
		registry:   opts.Registry,
		reminders:  opts.Reminders,
		weather:    opts.Weather,
		search:     opts.Search,
		email:      opts.Email,
		selector:   opts.Selector,
		prefs:      opts.Preferences,
		logger:     logging.OrNop(opts.Logger),
		now:        opts.Now,
	}
	if d.classifier == nil {
		d.classifier = nlu.NewClassifier(config.DefaultIntentCacheSize)
	}
	if d.tracker == nil {
		d.tracker = session.NewTracker(config.DefaultHistorySize)
	}
	if d.registry == nil {
		d.registry = commands.NewRegistry()
	}
	if d.weather == nil {
		d.weather = collab.UnconfiguredWeather{}
	}
	if d.search == nil {
		d.search = collab.UnconfiguredSearch{}
	}
	if d.email == nil {
		d.email = collab.UnconfiguredEmail{}
	}
	if d.selector == nil {
		d.selector = NewRandomSelector()
	}
	if d.prefs.Name == "" {
		d.prefs.Name = config.DefaultName
	}
	if d.prefs.DefaultLocation == "" {
		d.prefs.DefaultLocation = config.DefaultLocation
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Tracker exposes the conversation history for callers that render it.
func (d *Dispatcher) Tracker() *session.Tracker {
	return d.tracker
}

// Registry exposes the custom command registry for runtime registration.
func (d *Dispatcher) Registry() *commands.Registry {
	return d.registry
}

// Handle runs the full pipeline for one utterance. Empty input is a no-op
// turn. A panic anywhere in the pipeline is logged and answered with a
// generic apology; only exit commands set Continue to false.
func (d *Dispatcher) Handle(ctx context.Context, input string) (act Action) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("turn failed: %v", r)
			act = respond(apologyResponse, nlu.IntentUnknown)
		}
	}()

	input = strings.TrimSpace(input)
	if input == "" {
		return Action{Continue: true}
	}
	input = stripWakeWord(input, d.prefs.WakeWord)

	metrics.TurnsTotal.Inc()
	d.logger.Info("input: %s", redaction.Filter(input))

	if response, ok := d.registry.Match(input); ok {
		metrics.CustomCommandHits.Inc()
		d.logger.Debug("custom command matched")
		return respond(response, nlu.IntentUnknown)
	}

	res := d.classifier.Interpret(input)
	metrics.IntentsTotal.WithLabelValues(string(res.Intent)).Inc()
	signal := d.tracker.RecordAndCheck(input)

	act = Action{Intent: res.Intent, Entities: res.Entities, Signal: signal, Continue: true}
	words := tokenize(input)

	switch {
	case signal == session.SignalWeatherFollowup:
		act.Response = d.weatherFollowup(ctx, res.Entities)
	case containsAny(words, greetingWords):
		act.Response = d.selector.Pick(greetingResponses(d.prefs.Name, d.now().Hour()))
	case res.Intent == nlu.IntentUnknown && containsAny(words, exitWords):
		// Exit only when nothing else claimed the turn, so a search for
		// "goodbye songs" still searches.
		act.Response = farewellResponse
		act.Continue = false
	default:
		act.Response = d.respondToIntent(ctx, input, res, words)
	}
	return act
}

func (d *Dispatcher) respondToIntent(ctx context.Context, input string, res nlu.Result, words []string) string {
	switch res.Intent {
	case nlu.IntentTimeQuery:
		return d.timeResponse()
	case nlu.IntentDateQuery:
		return d.dateResponse()
	case nlu.IntentSearchQuery:
		return d.searchResponse(ctx, input)
	case nlu.IntentWeatherQuery:
		return d.weatherResponse(ctx, res.Entities)
	case nlu.IntentEmail:
		return d.emailResponse(ctx, input, res.Entities)
	case nlu.IntentReminder:
		return d.reminderResponse(input)
	case nlu.IntentSmartHome:
		return d.smartHomeResponse(input, res.Entities)
	default:
		if containsAny(words, []string{"help"}) {
			return helpResponse
		}
		return d.selector.Pick(fallbackResponses)
	}
}

func (d *Dispatcher) timeResponse() string {
	layout := "3:04 PM"
	if d.prefs.TimeFormat == "24" {
		layout = "15:04"
	}
	return "The current time is " + d.now().Format(layout)
}

func (d *Dispatcher) dateResponse() string {
	return "Today's date is " + d.now().Format("January 2, 2006")
}

func (d *Dispatcher) searchResponse(ctx context.Context, input string) string {
	query := extractQuery(input)
	if query == "" {
		return searchPrompt
	}
	result, err := d.search.Search(ctx, query)
	if err != nil {
		d.logger.Warn("search failed: %v", err)
		return verrors.Advisory("Search", err, "Sorry, I couldn't complete that search.")
	}
	return result
}

func (d *Dispatcher) weatherResponse(ctx context.Context, ents nlu.Entities) string {
	location := d.location(ents)
	result, err := d.weather.CurrentWeather(ctx, location)
	if err != nil {
		d.logger.Warn("weather lookup failed for %s: %v", location, err)
		return verrors.Advisory("Weather", err,
			fmt.Sprintf("Could not get weather information for %s.", location))
	}
	return result
}

// weatherFollowup handles a forecast question that immediately follows a
// weather query. The classifier's verdict is irrelevant here; the context
// signal decides the path.
func (d *Dispatcher) weatherFollowup(ctx context.Context, ents nlu.Entities) string {
	location := d.location(ents)
	lead := fmt.Sprintf("Let me check the weather in %s for you, %s.", location, d.prefs.Name)
	result, err := d.weather.CurrentWeather(ctx, location)
	if err != nil {
		d.logger.Warn("weather followup failed for %s: %v", location, err)
		return lead + " " + verrors.Advisory("Weather", err,
			fmt.Sprintf("Could not get weather information for %s.", location))
	}
	return lead + " " + result
}

func (d *Dispatcher) emailResponse(ctx context.Context, input string, ents nlu.Entities) string {
	if len(ents.Emails) == 0 {
		return emailPrompt
	}
	recipient := ents.Emails[0]
	result, err := d.email.Send(ctx, recipient, "Voice assistant message", input)
	if err != nil {
		d.logger.Warn("email send failed: %v", err)
		return verrors.Advisory("Email", err, "Sorry, I couldn't send that email.")
	}
	return result
}

func (d *Dispatcher) reminderResponse(input string) string {
	message, minutes, ok := reminder.Parse(input)
	if !ok {
		return reminderHint
	}
	if d.reminders == nil {
		return "Reminders are not available right now."
	}
	task, err := d.reminders.Schedule(message, minutes)
	if err != nil {
		d.logger.Warn("reminder schedule failed: %v", err)
		if errors.Is(err, reminder.ErrTooManyPending) {
			return reminderBusy
		}
		return "I couldn't set that reminder."
	}
	return fmt.Sprintf("Reminder set for %d minutes: %s", minutes, task.Message)
}

func (d *Dispatcher) location(ents nlu.Entities) string {
	if len(ents.Locations) > 0 {
		return ents.Locations[0]
	}
	return d.prefs.DefaultLocation
}

// extractQuery pulls the search terms out of a search command. The query
// keeps the caller's casing; only the markers are matched case-insensitively.
func extractQuery(input string) string {
	lower := strings.ToLower(input)
	for _, marker := range []string{"search for", "google", "look up"} {
		if i := strings.Index(lower, marker); i >= 0 {
			return trimQuery(input[i+len(marker):])
		}
	}
	if i := strings.Index(lower, "search"); i >= 0 {
		return trimQuery(input[:i] + input[i+len("search"):])
	}
	return trimQuery(input)
}

func trimQuery(s string) string {
	return strings.Trim(s, " \t?.!,")
}

// stripWakeWord drops a leading wake phrase so "hello vera what time is it"
// interprets as "what time is it". A bare wake phrase is left alone; it reads
// as a greeting.
func stripWakeWord(input, wake string) string {
	wake = strings.TrimSpace(wake)
	if wake == "" || len(input) <= len(wake) {
		return input
	}
	if !strings.EqualFold(input[:len(wake)], wake) {
		return input
	}
	// Word boundary, so a wake phrase of "vera" leaves "veranda" alone.
	if next := input[len(wake)]; ('a' <= next && next <= 'z') || ('A' <= next && next <= 'Z') || ('0' <= next && next <= '9') {
		return input
	}
	rest := strings.TrimSpace(strings.TrimLeft(input[len(wake):], " \t,.!"))
	if rest == "" {
		return input
	}
	return rest
}

// tokenize lower-cases and splits on anything that is not a letter or digit,
// so "Goodbye!" and "bye." still match exit words.
func tokenize(input string) []string {
	return strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

func containsAny(words []string, targets []string) bool {
	for _, w := range words {
		for _, t := range targets {
			if w == t {
				return true
			}
		}
	}
	return false
}
