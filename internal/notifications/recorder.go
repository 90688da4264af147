package notifications

import (
	"context"
	"sync"
)

// Event is one recorded notification.
type Event struct {
	Level   Level
	Message string
}

// Recorder is a Service implementation that captures notifications in
// memory. Tests and the CLI's verbose mode use it to surface workflow
// outcomes without a configured ntfy topic.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Service = (*Recorder)(nil)

func (r *Recorder) record(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Level: level, Message: message})
}

func (r *Recorder) Success(_ context.Context, message string) error {
	r.record(LevelSuccess, message)
	return nil
}

func (r *Recorder) Error(_ context.Context, message string) error {
	r.record(LevelError, message)
	return nil
}

func (r *Recorder) Warning(_ context.Context, message string) error {
	r.record(LevelWarning, message)
	return nil
}

func (r *Recorder) Info(_ context.Context, message string) error {
	r.record(LevelInfo, message)
	return nil
}

func (r *Recorder) TestNotification(_ context.Context) error {
	r.record(LevelInfo, "test notification")
	return nil
}

// Events returns a copy of the recorded notifications in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
