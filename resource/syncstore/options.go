package syncstore

import (
	"errors"

	"github.com/libreshelf/library-console-go/resource"
)

var ErrEmptyCollectionName = errors.New("empty collection name supplied")

// Option defines a functional option for configuring a Store.
type Option[T resource.Entity, D any] func(*Store[T, D]) error

// WithName sets the collection name used in log attributes and metric labels.
func WithName[T resource.Entity, D any](name string) Option[T, D] {
	return func(s *Store[T, D]) error {
		if name == "" {
			return ErrEmptyCollectionName
		}

		s.name = name

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Info level: successful loads and mutations with entity counts and durations (production-safe)
// Warn level: non-critical inconsistencies such as a refreshed entity missing locally
// Error level: remote call failures that cause operation failures.
func WithLogger[T resource.Entity, D any](logger resource.Logger) Option[T, D] {
	return func(s *Store[T, D]) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// When both a Logger and a ContextualLogger are configured, the contextual
// logger takes precedence so trace correlation is never lost.
func WithContextualLogger[T resource.Entity, D any](logger resource.ContextualLogger) Option[T, D] {
	return func(s *Store[T, D]) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The metrics collector will receive operation counters and durations for
// every Load/Create/Update/Delete/Refresh, labeled by collection and outcome.
func WithMetrics[T resource.Entity, D any](collector resource.MetricsCollector) Option[T, D] {
	return func(s *Store[T, D]) error {
		s.metricsCollector = collector
		return nil
	}
}
