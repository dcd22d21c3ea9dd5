package store

// Replace is the default merge strategy: the partial value becomes the next
// state wholesale. Use it for states updated with SetFrom or replaced as a
// unit.
func Replace[T any](_, partial T) T {
	return partial
}

// Shallow merges the partial map's top-level keys onto the current map and
// returns a new map; neither argument is mutated. The merge never recurses:
// a partial {"a": {"x": 1}} replaces key "a" entirely rather than combining
// it with a prior {"a": {"y": 2}}.
func Shallow[M ~map[K]V, K comparable, V any](current, partial M) M {
	next := make(M, len(current)+len(partial))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	return next
}

// Map is the conventional field-name-to-value state shape.
type Map = map[string]any

// NewMap creates a store over a Map state with the Shallow merge strategy
// installed, so Set(partial) overwrites only the keys the partial carries:
//
//	s := store.NewMap(func(s *store.Store[store.Map]) store.Map {
//	    return store.Map{"count": 0}
//	})
//	s.Set(store.Map{"count": 1})
//
// Options passed by the caller are applied after the default merge strategy
// and may override it.
func NewMap(init Initializer[Map], opts ...Option[Map]) *Store[Map] {
	merged := append([]Option[Map]{WithMerge(Shallow[Map])}, opts...)
	return New(init, merged...)
}
