package store

import (
	"reflect"
	"testing"
)

func TestShallowMergeOverwritesTopLevelKeys(t *testing.T) {
	s := NewMap(func(s *Store[Map]) Map {
		return Map{"a": 1, "b": 2}
	})

	s.Set(Map{"a": 3})

	got := s.Get()
	if got["a"] != 3 {
		t.Errorf("expected a=3, got %v", got["a"])
	}
	if got["b"] != 2 {
		t.Errorf("expected b untouched, got %v", got["b"])
	}
}

func TestShallowMergePreservesUnrelatedReference(t *testing.T) {
	unrelated := []int{1, 2, 3}
	s := NewMap(func(s *Store[Map]) Map {
		return Map{"a": 1, "b": unrelated}
	})

	s.Set(Map{"a": 99})

	// The unrelated field's stored value is carried over by reference,
	// not copied.
	got, ok := s.Get()["b"].([]int)
	if !ok {
		t.Fatalf("expected b to stay []int, got %T", s.Get()["b"])
	}
	if &got[0] != &unrelated[0] {
		t.Error("expected unrelated field to keep its original backing array")
	}
}

func TestShallowMergeDoesNotRecurse(t *testing.T) {
	s := NewMap(func(s *Store[Map]) Map {
		return Map{"a": Map{"x": 1, "y": 2}}
	})

	s.Set(Map{"a": Map{"x": 10}})

	got, ok := s.Get()["a"].(Map)
	if !ok {
		t.Fatalf("expected a to be a Map, got %T", s.Get()["a"])
	}
	if got["x"] != 10 {
		t.Errorf("expected a.x=10, got %v", got["x"])
	}
	if _, exists := got["y"]; exists {
		t.Error("expected a.y gone: nested objects are replaced, not merged")
	}
}

func TestShallowMergeFunctionalUpdate(t *testing.T) {
	s := NewMap(func(s *Store[Map]) Map {
		return Map{"a": 1}
	})

	s.SetFrom(func(m Map) Map {
		return Map{"a": m["a"].(int) + 1}
	})

	if got := s.Get()["a"]; got != 2 {
		t.Errorf("expected a=2, got %v", got)
	}
}

func TestShallowProducesNewMap(t *testing.T) {
	current := map[string]int{"a": 1, "b": 2}
	partial := map[string]int{"b": 3}

	next := Shallow(current, partial)

	if !reflect.DeepEqual(next, map[string]int{"a": 1, "b": 3}) {
		t.Errorf("unexpected merge result: %v", next)
	}
	if current["b"] != 2 {
		t.Error("merge mutated the current map")
	}
	if partial["b"] != 3 || len(partial) != 1 {
		t.Error("merge mutated the partial map")
	}
}

func TestReplaceStrategy(t *testing.T) {
	next := Replace(map[string]int{"a": 1}, map[string]int{"b": 2})
	if !reflect.DeepEqual(next, map[string]int{"b": 2}) {
		t.Errorf("expected Replace to return the partial, got %v", next)
	}
}

func TestWithMergeOverridesNewMapDefault(t *testing.T) {
	// A caller-supplied strategy wins over NewMap's Shallow default.
	s := NewMap(func(s *Store[Map]) Map {
		return Map{"a": 1, "b": 2}
	}, WithMerge(Replace[Map]))

	s.Set(Map{"a": 3})

	got := s.Get()
	if _, exists := got["b"]; exists {
		t.Error("expected Replace strategy to drop b")
	}
	if got["a"] != 3 {
		t.Errorf("expected a=3, got %v", got["a"])
	}
}

func TestWithMergeNilIgnored(t *testing.T) {
	s := New(func(s *Store[int]) int { return 1 }, WithMerge[int](nil))

	s.Set(2)
	if s.Get() != 2 {
		t.Errorf("expected default Replace strategy, got %d", s.Get())
	}
}
