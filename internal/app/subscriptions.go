package app

import (
	"fmt"

	"github.com/dshills/calcstorm/internal/calc"
	"github.com/dshills/calcstorm/internal/persist"
)

// LoggingSubscriber records every committed calculation in the session log.
type LoggingSubscriber struct {
	log *Logger
}

// NewLoggingSubscriber creates a subscriber logging to log.
func NewLoggingSubscriber(log *Logger) *LoggingSubscriber {
	return &LoggingSubscriber{log: log}
}

// Notify implements event.Subscriber.
func (s *LoggingSubscriber) Notify(c calc.Calculation) error {
	s.log.WithFields(map[string]any{
		"op":     c.Op,
		"a":      c.A.String(),
		"b":      c.B.String(),
		"result": c.Result.String(),
	}).Info("calculation recorded")
	return nil
}

// AutosaveSubscriber persists the full history after every calculation.
// The history source is a function so the subscriber sees the post-commit
// state, including evictions.
type AutosaveSubscriber struct {
	store  *persist.Store
	source func() []calc.Calculation
}

// NewAutosaveSubscriber creates a subscriber saving source() to store.
func NewAutosaveSubscriber(store *persist.Store, source func() []calc.Calculation) *AutosaveSubscriber {
	return &AutosaveSubscriber{store: store, source: source}
}

// Notify implements event.Subscriber. A failed save propagates: the hub
// wraps it into an ObserverError so the session can warn that the
// calculation stands but the history file is stale.
func (s *AutosaveSubscriber) Notify(calc.Calculation) error {
	if err := s.store.Save(s.source()); err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	return nil
}
