// Package reorder implements move semantics over ordered slices: an item is
// removed from its source position and reinserted at a target position, with
// every other item keeping its relative order. All functions are pure; the
// caller commits the returned slice as the new authoritative list.
package reorder

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	// ErrIndexOutOfRange is returned when a source or target index does not
	// address an element of the list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyList is returned when a move is requested on an empty list.
	ErrEmptyList = errors.New("empty list")
)

// Move returns a copy of list with the element at source removed and
// reinserted at target. The target index is interpreted against the list
// after removal, so Move([A B C D], 0, 2) yields [B C A D], not [B C D A].
// source == target is the identity move. The input slice is never mutated.
func Move[T any](list []T, source, target int) ([]T, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("move: %w", ErrEmptyList)
	}
	if source < 0 || source >= len(list) {
		return nil, fmt.Errorf("move: source %d of %d: %w", source, len(list), ErrIndexOutOfRange)
	}
	if target < 0 || target >= len(list) {
		return nil, fmt.Errorf("move: target %d of %d: %w", target, len(list), ErrIndexOutOfRange)
	}
	out := slices.Clone(list)
	if source == target {
		return out, nil
	}
	moved := out[source]
	out = slices.Delete(out, source, source+1)
	return slices.Insert(out, target, moved), nil
}

// MoveUp moves the element at i one position toward the front.
// i == 0 is a no-op and returns the list unchanged.
func MoveUp[T any](list []T, i int) ([]T, error) {
	if i == 0 {
		return list, nil
	}
	return Move(list, i, i-1)
}

// MoveDown moves the element at i one position toward the back.
// i == len(list)-1 is a no-op and returns the list unchanged.
func MoveDown[T any](list []T, i int) ([]T, error) {
	if len(list) > 0 && i == len(list)-1 {
		return list, nil
	}
	return Move(list, i, i+1)
}

// DuplicateIDs reports, sorted, every id that appears more than once in list.
// Move results are undefined on lists with duplicate ids; callers that accept
// untrusted input can check first. A nil result means all ids are unique.
func DuplicateIDs[T any](list []T, id func(T) string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	dups := mapset.NewThreadUnsafeSet[string]()
	for _, it := range list {
		if !seen.Add(id(it)) {
			dups.Add(id(it))
		}
	}
	if dups.Cardinality() == 0 {
		return nil
	}
	out := dups.ToSlice()
	sort.Strings(out)
	return out
}
