// Package fieldarray owns an ordered list on behalf of a form-style host and
// exposes the usual field-array mutations: append, prepend, insert, remove,
// update, swap and move. Move has the same semantics as reorder.Move, so
// hosts holding their list in an Array never need to do slice surgery.
//
// Every successful mutation replaces the backing slice and bumps a revision
// counter; slices previously returned by Items are never written through, so
// observers always see a complete version of the list.
package fieldarray

import (
	"fmt"
	"slices"

	"github.com/aliabb01/lineup/internal/reorder"
)

type Array[T any] struct {
	items []T
	rev   uint64
}

// New builds an Array seeded with items.
func New[T any](items ...T) *Array[T] {
	a := &Array[T]{}
	a.items = append(a.items, items...)
	return a
}

// Len reports the number of items.
func (a *Array[T]) Len() int { return len(a.items) }

// Revision increases by one on every successful mutation.
func (a *Array[T]) Revision() uint64 { return a.rev }

// Items returns a copy of the current list.
func (a *Array[T]) Items() []T { return slices.Clone(a.items) }

// At returns the item at i.
func (a *Array[T]) At(i int) (T, error) {
	var zero T
	if err := a.check(i); err != nil {
		return zero, err
	}
	return a.items[i], nil
}

// Append adds v at the end.
func (a *Array[T]) Append(v T) {
	a.commit(append(slices.Clone(a.items), v))
}

// Prepend adds v at the front.
func (a *Array[T]) Prepend(v T) {
	a.commit(slices.Insert(slices.Clone(a.items), 0, v))
}

// Insert places v at index i, shifting later items back.
// i == Len() appends.
func (a *Array[T]) Insert(i int, v T) error {
	if i < 0 || i > len(a.items) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(a.items), reorder.ErrIndexOutOfRange)
	}
	a.commit(slices.Insert(slices.Clone(a.items), i, v))
	return nil
}

// Remove deletes the item at i.
func (a *Array[T]) Remove(i int) error {
	if err := a.check(i); err != nil {
		return err
	}
	a.commit(slices.Delete(slices.Clone(a.items), i, i+1))
	return nil
}

// Update replaces the item at i with v.
func (a *Array[T]) Update(i int, v T) error {
	if err := a.check(i); err != nil {
		return err
	}
	next := slices.Clone(a.items)
	next[i] = v
	a.commit(next)
	return nil
}

// Swap exchanges the items at i and j. Unlike Move, items between the two
// positions do not shift.
func (a *Array[T]) Swap(i, j int) error {
	if err := a.check(i); err != nil {
		return err
	}
	if err := a.check(j); err != nil {
		return err
	}
	next := slices.Clone(a.items)
	next[i], next[j] = next[j], next[i]
	a.commit(next)
	return nil
}

// Move relocates the item at source to target with reorder.Move semantics.
func (a *Array[T]) Move(source, target int) error {
	next, err := reorder.Move(a.items, source, target)
	if err != nil {
		return err
	}
	a.commit(next)
	return nil
}

func (a *Array[T]) check(i int) error {
	if i < 0 || i >= len(a.items) {
		return fmt.Errorf("index %d of %d: %w", i, len(a.items), reorder.ErrIndexOutOfRange)
	}
	return nil
}

func (a *Array[T]) commit(next []T) {
	a.items = next
	a.rev++
}
