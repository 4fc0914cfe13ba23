package dispatch

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"vera/internal/collab"
	"vera/internal/config"
	"vera/internal/nlu"
	"vera/internal/reminder"
	"vera/internal/session"
)

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

type panicSelector struct{}

func (panicSelector) Pick([]string) string { panic("selector exploded") }

func fakeWeather() collab.Weather {
	return collab.WeatherFunc(func(_ context.Context, location string) (string, error) {
		return fmt.Sprintf("The weather in %s is sunny with a temperature of 22 degrees Celsius", location), nil
	})
}

func fakeSearch() collab.Search {
	return collab.SearchFunc(func(_ context.Context, query string) (string, error) {
		return "Searching the web for " + query, nil
	})
}

var testClock = time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)

func newTestDispatcher(opts Options) *Dispatcher {
	if opts.Selector == nil {
		opts.Selector = FixedSelector{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testClock }
	}
	if opts.Preferences.Name == "" {
		opts.Preferences.Name = "Ada"
	}
	return New(opts)
}

func TestHandleEmptyInputIsNoOp(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "   ")
	if !act.Continue {
		t.Fatal("empty input must not stop the loop")
	}
	if act.Response != "" {
		t.Errorf("expected silent turn, got %q", act.Response)
	}
	if d.Tracker().Len() != 0 {
		t.Errorf("empty input must not enter history, len = %d", d.Tracker().Len())
	}
}

func TestHandleCustomCommandShortCircuits(t *testing.T) {
	d := newTestDispatcher(Options{})
	d.Registry().Register("tell me a joke", "Why do programmers prefer dark mode? Because light attracts bugs.")

	act := d.Handle(context.Background(), "Please tell me a joke now")
	if !strings.Contains(act.Response, "dark mode") {
		t.Fatalf("custom response not emitted, got %q", act.Response)
	}
	if d.Tracker().Len() != 0 {
		t.Errorf("custom commands must terminate the turn before the context tracker, len = %d", d.Tracker().Len())
	}
}

func TestHandleWeatherEndToEnd(t *testing.T) {
	d := newTestDispatcher(Options{Weather: fakeWeather()})

	act := d.Handle(context.Background(), "What's the weather like in Paris?")
	if act.Intent != nlu.IntentWeatherQuery {
		t.Fatalf("intent = %q, want %q", act.Intent, nlu.IntentWeatherQuery)
	}
	if len(act.Entities.Locations) != 1 || act.Entities.Locations[0] != "Paris" {
		t.Fatalf("locations = %v, want [Paris]", act.Entities.Locations)
	}
	if !strings.Contains(act.Response, "Paris") {
		t.Errorf("response does not reference Paris: %q", act.Response)
	}
	if !act.Continue {
		t.Error("weather query must not stop the loop")
	}
}

func TestHandleWeatherFallsBackToDefaultLocation(t *testing.T) {
	d := newTestDispatcher(Options{
		Weather:     fakeWeather(),
		Preferences: config.Preferences{Name: "Ada", DefaultLocation: "Oslo"},
	})

	act := d.Handle(context.Background(), "What's the weather like?")
	if !strings.Contains(act.Response, "Oslo") {
		t.Errorf("response should use the preferred location, got %q", act.Response)
	}
}

func TestHandleWeatherUnconfigured(t *testing.T) {
	d := newTestDispatcher(Options{})

	act := d.Handle(context.Background(), "What's the weather like in Tokyo?")
	want := "Weather is not configured. Please set up the required credentials."
	if act.Response != want {
		t.Errorf("response = %q, want %q", act.Response, want)
	}
	if !act.Continue {
		t.Error("collaborator failure must not stop the loop")
	}
}

func TestHandleWeatherFollowup(t *testing.T) {
	d := newTestDispatcher(Options{Weather: fakeWeather()})
	ctx := context.Background()

	d.Handle(ctx, "What's the weather like in Paris?")
	act := d.Handle(ctx, "What about tomorrow?")

	if act.Signal != session.SignalWeatherFollowup {
		t.Fatalf("signal = %q, want %q", act.Signal, session.SignalWeatherFollowup)
	}
	if !strings.Contains(act.Response, "Let me check the weather in") {
		t.Errorf("follow-up must use its own template, got %q", act.Response)
	}
}

func TestHandleTimeQuery(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "What time is it?")
	if act.Response != "The current time is 9:30 AM" {
		t.Errorf("response = %q", act.Response)
	}

	d24 := newTestDispatcher(Options{
		Preferences: config.Preferences{Name: "Ada", TimeFormat: "24"},
	})
	act = d24.Handle(context.Background(), "What time is it?")
	if act.Response != "The current time is 09:30" {
		t.Errorf("24-hour response = %q", act.Response)
	}
}

func TestHandleDateQuery(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "What's the date today?")
	if act.Response != "Today's date is September 1, 2026" {
		t.Errorf("response = %q", act.Response)
	}
}

func TestHandleGreeting(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "hello")
	if act.Response != "Good morning, Ada! How can I help you?" {
		t.Errorf("response = %q", act.Response)
	}
}

func TestHandleWakeWordPrefixStripped(t *testing.T) {
	d := newTestDispatcher(Options{
		Preferences: config.Preferences{Name: "Ada", WakeWord: "hello vera"},
	})

	act := d.Handle(context.Background(), "Hello Vera, what time is it?")
	if act.Response != "The current time is 9:30 AM" {
		t.Errorf("wake-word prefix should be stripped, got %q", act.Response)
	}

	act = d.Handle(context.Background(), "hello vera")
	if !strings.Contains(act.Response, "How can I help you?") {
		t.Errorf("bare wake phrase should greet, got %q", act.Response)
	}
}

func TestHandleExit(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "Goodbye!")
	if act.Continue {
		t.Fatal("exit command must stop the loop")
	}
	if act.Response != farewellResponse {
		t.Errorf("response = %q", act.Response)
	}
}

func TestHandleExitWordInsideSearchStillSearches(t *testing.T) {
	d := newTestDispatcher(Options{Search: fakeSearch()})
	act := d.Handle(context.Background(), "search for goodbye songs")
	if !act.Continue {
		t.Fatal("a search mentioning an exit word must not stop the loop")
	}
	if act.Response != "Searching the web for goodbye songs" {
		t.Errorf("response = %q", act.Response)
	}
}

func TestHandleSearchWithoutQueryPrompts(t *testing.T) {
	d := newTestDispatcher(Options{Search: fakeSearch()})
	act := d.Handle(context.Background(), "search for")
	if act.Response != searchPrompt {
		t.Errorf("response = %q, want prompt", act.Response)
	}
}

func TestHandleReminderScheduleAndPending(t *testing.T) {
	sched := reminder.NewScheduler(reminder.Config{MaxPending: 5}, nopNotifier{}, nil)
	defer sched.Stop()
	d := newTestDispatcher(Options{Reminders: sched})

	act := d.Handle(context.Background(), "remind me to call mom in 30 minutes")
	if act.Intent != nlu.IntentReminder {
		t.Fatalf("intent = %q", act.Intent)
	}
	if act.Response != "Reminder set for 30 minutes: call mom" {
		t.Errorf("response = %q", act.Response)
	}
	if got := len(sched.Pending()); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
}

func TestHandleReminderBadFormatHints(t *testing.T) {
	sched := reminder.NewScheduler(reminder.Config{MaxPending: 5}, nopNotifier{}, nil)
	defer sched.Stop()
	d := newTestDispatcher(Options{Reminders: sched})

	act := d.Handle(context.Background(), "remind me to do something")
	if act.Response != reminderHint {
		t.Errorf("response = %q", act.Response)
	}
	if got := len(sched.Pending()); got != 0 {
		t.Errorf("pending = %d, want 0", got)
	}
}

func TestHandleSmartHome(t *testing.T) {
	d := newTestDispatcher(Options{})
	cases := []struct {
		input string
		want  string
	}{
		{"turn on the lights", "Turning on the lights"},
		{"turn off the living room light", "Turning off the lights"},
		{"turn on the alarm", "Activating security alarm"},
		{"set temperature to 72", "Setting temperature to 72 degrees"},
		{"turn on the toaster", "Smart home command not recognized"},
	}
	for _, tc := range cases {
		act := d.Handle(context.Background(), tc.input)
		if act.Response != tc.want {
			t.Errorf("Handle(%q) = %q, want %q", tc.input, act.Response, tc.want)
		}
	}
}

func TestHandleEmail(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "send an email about dinner")
	if act.Response != emailPrompt {
		t.Fatalf("missing recipient should prompt, got %q", act.Response)
	}

	sent := ""
	mail := collab.EmailFunc(func(_ context.Context, recipient, _, _ string) (string, error) {
		sent = recipient
		return "Email sent successfully to " + recipient, nil
	})
	d = newTestDispatcher(Options{Email: mail})
	act = d.Handle(context.Background(), "send an email to bob@example.com")
	if sent != "bob@example.com" {
		t.Errorf("recipient = %q", sent)
	}
	if !strings.Contains(act.Response, "bob@example.com") {
		t.Errorf("response = %q", act.Response)
	}
}

func TestHandleHelp(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "help")
	if act.Response != helpResponse {
		t.Errorf("response = %q", act.Response)
	}
}

func TestHandleFallback(t *testing.T) {
	d := newTestDispatcher(Options{})
	act := d.Handle(context.Background(), "abracadabra")
	if act.Intent != nlu.IntentUnknown {
		t.Fatalf("intent = %q", act.Intent)
	}
	if act.Response != fallbackResponses[0] {
		t.Errorf("response = %q", act.Response)
	}
	if !act.Continue {
		t.Error("unknown input must not stop the loop")
	}
}

func TestHandleRecoversFromPanic(t *testing.T) {
	d := newTestDispatcher(Options{Selector: panicSelector{}})
	act := d.Handle(context.Background(), "hello")
	if act.Response != apologyResponse {
		t.Errorf("response = %q", act.Response)
	}
	if !act.Continue {
		t.Error("internal fault must not stop the loop")
	}
}
