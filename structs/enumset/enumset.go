// Package enumset implements a set with O(1) add, remove and
// membership plus O(n) enumeration. Removal uses swap-and-pop, so
// iteration order is insertion order modulated by removals.
package enumset

import (
	"github.com/dolthub/swiss"
)

// Set holds distinct values of a comparable type. The zero value is
// not usable; call New.
type Set[T comparable] struct {
	values []T
	// positions maps a value to its slice index plus one; absent
	// means not a member.
	positions *swiss.Map[T, int]
}

// New returns an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{positions: swiss.NewMap[T, int](8)}
}

// Add inserts v. It returns false when v is already a member.
func (s *Set[T]) Add(v T) bool {
	if s.positions.Has(v) {
		return false
	}
	s.values = append(s.values, v)
	s.positions.Put(v, len(s.values))
	return true
}

// Remove deletes v, moving the last element into its slot. It returns
// false when v is not a member.
func (s *Set[T]) Remove(v T) bool {
	pos, ok := s.positions.Get(v)
	if !ok {
		return false
	}
	i := pos - 1
	last := len(s.values) - 1
	if i != last {
		moved := s.values[last]
		s.values[i] = moved
		s.positions.Put(moved, i+1)
	}
	s.values = s.values[:last]
	s.positions.Delete(v)
	return true
}

// Contains reports membership of v.
func (s *Set[T]) Contains(v T) bool {
	return s.positions.Has(v)
}

// At returns the value at index i, or false when i is out of range.
func (s *Set[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(s.values) {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.values)
}

// Values returns a copy of the member array. Cost is linear in the
// set size; callers bound it.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// Clear removes all members.
func (s *Set[T]) Clear() {
	s.positions.Clear()
	s.values = s.values[:0]
}
