package store

import "log/slog"

// Option configures a store during construction. Options run before the
// initializer, in the order given.
type Option[T any] func(*Store[T])

// WithName sets the store name used in commit logs, trace attributes, and
// as context in errors. Stores are anonymous by default.
func WithName[T any](name string) Option[T] {
	return func(s *Store[T]) {
		s.name = name
	}
}

// WithMerge sets the merge strategy used by Set and SetFrom. A nil fn is
// ignored, leaving the current strategy in place.
func WithMerge[T any](fn MergeFunc[T]) Option[T] {
	return func(s *Store[T]) {
		if fn != nil {
			s.merge = fn
		}
	}
}

// WithLogger enables debug-level commit logging on the given logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(s *Store[T]) {
		s.logger = logger
	}
}
