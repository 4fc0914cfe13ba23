package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"vera/internal/logging"
	"vera/internal/metrics"
)

// ErrInvalidDelay is returned when Schedule is called with a non-positive
// delay. The dispatcher path never hits this: Parse only accepts positive N.
var ErrInvalidDelay = errors.New("reminder delay must be positive")

// ErrTooManyPending is returned when the configured pending-reminder limit
// is reached.
var ErrTooManyPending = errors.New("maximum pending reminder limit reached")

// ErrNotFound is returned by Cancel for an unknown or already settled task.
var ErrNotFound = errors.New("reminder not found")

// Notifier delivers a fired reminder message. Implementations must be safe
// for concurrent use: reminders fire on independent goroutines.
type Notifier interface {
	Notify(message string)
}

// Trigger declares a recurring reminder driven by a cron schedule.
type Trigger struct {
	Name     string
	Schedule string // five-field cron expression
	Message  string
}

// Config holds scheduler limits.
type Config struct {
	MaxPending int
}

// Scheduler arranges one-shot reminders on background timers and recurring
// triggers on a cron engine. Schedule never blocks; firing happens on
// independent goroutines that share nothing with the main loop except the
// Notifier.
type Scheduler struct {
	notifier Notifier
	logger   logging.Logger
	config   Config
	cron     *cron.Cron

	// now is injectable for tests.
	now func() time.Time

	mu       sync.Mutex
	tasks    map[string]*Task
	handles  map[string]*time.Timer
	cronIDs  map[string]cron.EntryID
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a Scheduler delivering through notifier.
func NewScheduler(cfg Config, notifier Notifier, logger logging.Logger) *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return &Scheduler{
		notifier: notifier,
		logger:   logging.OrNop(logger),
		config:   cfg,
		cron:     cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		now:      time.Now,
		tasks:    make(map[string]*Task),
		handles:  make(map[string]*time.Timer),
		cronIDs:  make(map[string]cron.EntryID),
		stopped:  make(chan struct{}),
	}
}

// Schedule validates the delay, registers a background timer, and returns
// the created task immediately. delayMinutes must be positive; direct calls
// with a non-positive delay get ErrInvalidDelay.
func (s *Scheduler) Schedule(message string, delayMinutes int) (Task, error) {
	if delayMinutes <= 0 {
		return Task{}, fmt.Errorf("schedule %q: %w", message, ErrInvalidDelay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.MaxPending > 0 {
		pending := 0
		for _, t := range s.tasks {
			if t.Status == StatusPending {
				pending++
			}
		}
		if pending >= s.config.MaxPending {
			return Task{}, fmt.Errorf("schedule %q: %w (%d)", message, ErrTooManyPending, s.config.MaxPending)
		}
	}

	delay := time.Duration(delayMinutes) * time.Minute
	task := newTask(message, delay, s.now())
	s.tasks[task.ID] = task
	s.handles[task.ID] = time.AfterFunc(delay, func() {
		s.fire(task.ID)
	})
	metrics.RemindersScheduled.Inc()

	s.logger.Info("reminder scheduled: %q fires at %s", message, task.FireAt.Format(time.RFC3339))
	return *task, nil
}

// Cancel stops a pending reminder and marks it cancelled. The handle is
// retained at creation precisely so cancellation needs no redesign.
func (s *Scheduler) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Status != StatusPending {
		return fmt.Errorf("cancel %s: %w", id, ErrNotFound)
	}
	if handle, ok := s.handles[id]; ok {
		handle.Stop()
		delete(s.handles, id)
	}
	task.Status = StatusCancelled
	s.logger.Info("reminder cancelled: %q", task.Message)
	return nil
}

// Get returns a snapshot of a task by ID.
func (s *Scheduler) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Pending returns snapshots of all tasks still waiting to fire.
func (s *Scheduler) Pending() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Task
	for _, task := range s.tasks {
		if task.Status == StatusPending {
			out = append(out, *task)
		}
	}
	return out
}

// RegisterTrigger adds a recurring reminder on the cron engine. Start must
// be called for triggers to fire.
func (s *Scheduler) RegisterTrigger(trigger Trigger) error {
	if trigger.Schedule == "" {
		return fmt.Errorf("trigger %q has no schedule", trigger.Name)
	}
	message := trigger.Message
	entryID, err := s.cron.AddFunc(trigger.Schedule, func() {
		s.notifier.Notify("Reminder: " + message)
		metrics.RemindersFired.Inc()
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression for %q: %w", trigger.Name, err)
	}

	s.mu.Lock()
	s.cronIDs[trigger.Name] = entryID
	s.mu.Unlock()

	s.logger.Info("recurring reminder registered: %q (schedule=%s)", trigger.Name, trigger.Schedule)
	return nil
}

// Start launches the cron engine and stops the scheduler when ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop cancels pending one-shot timers and drains the cron engine. Safe to
// call multiple times.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		for id, handle := range s.handles {
			handle.Stop()
			delete(s.handles, id)
		}
		s.mu.Unlock()

		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		close(s.stopped)
		s.logger.Info("reminder scheduler stopped")
	})
}

// Done is closed once the scheduler has fully stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.stopped
}

// fire marks the task fired and emits its message through the notifier.
func (s *Scheduler) fire(id string) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok || task.Status != StatusPending {
		s.mu.Unlock()
		return
	}
	task.Status = StatusFired
	delete(s.handles, id)
	message := task.Message
	s.mu.Unlock()

	s.notifier.Notify("Reminder: " + message)
	metrics.RemindersFired.Inc()
	s.logger.Info("reminder fired: %q", message)
}
