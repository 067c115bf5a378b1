package reorder

// Drop describes the end of a grab-and-move interaction: the item that was
// being moved and the item it was released over, both identified by id.
// Ids survive mid-session list changes where indices would not.
type Drop struct {
	ActiveID string
	OverID   string
}

// Resolve applies a completed drop to list. Both ids are located in the list
// as it is *now*, then the move is delegated to Move. Three situations are
// no-ops rather than errors, returning the original slice:
//
//   - the drop had no target (OverID is empty)
//   - the item was released over itself
//   - either id no longer resolves, meaning the session went stale
func Resolve[T any](list []T, id func(T) string, d Drop) ([]T, error) {
	if d.OverID == "" || d.ActiveID == d.OverID {
		return list, nil
	}
	source := IndexOf(list, id, d.ActiveID)
	target := IndexOf(list, id, d.OverID)
	if source < 0 || target < 0 {
		return list, nil
	}
	return Move(list, source, target)
}

// IndexOf returns the current position of the item with the given id,
// or -1 if no item has it.
func IndexOf[T any](list []T, id func(T) string, want string) int {
	for i, it := range list {
		if id(it) == want {
			return i
		}
	}
	return -1
}
