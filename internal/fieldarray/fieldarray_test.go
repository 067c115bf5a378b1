package fieldarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliabb01/lineup/internal/reorder"
)

func TestArray_AppendPrependInsert(t *testing.T) {
	a := New("B")

	a.Append("D")
	a.Prepend("A")
	require.NoError(t, a.Insert(2, "C"))

	assert.Equal(t, []string{"A", "B", "C", "D"}, a.Items())
	assert.Equal(t, 4, a.Len())

	require.NoError(t, a.Insert(4, "E"), "insert at Len appends")
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, a.Items())

	err := a.Insert(7, "X")
	assert.ErrorIs(t, err, reorder.ErrIndexOutOfRange)
}

func TestArray_RemoveUpdate(t *testing.T) {
	a := New("A", "B", "C")

	require.NoError(t, a.Remove(1))
	assert.Equal(t, []string{"A", "C"}, a.Items())

	require.NoError(t, a.Update(1, "Z"))
	assert.Equal(t, []string{"A", "Z"}, a.Items())

	assert.ErrorIs(t, a.Remove(2), reorder.ErrIndexOutOfRange)
	assert.ErrorIs(t, a.Update(-1, "X"), reorder.ErrIndexOutOfRange)
}

func TestArray_SwapVersusMove(t *testing.T) {
	a := New("A", "B", "C", "D")
	require.NoError(t, a.Swap(0, 3))
	assert.Equal(t, []string{"D", "B", "C", "A"}, a.Items(), "swap leaves middle items in place")

	b := New("A", "B", "C", "D")
	require.NoError(t, b.Move(0, 3))
	assert.Equal(t, []string{"B", "C", "D", "A"}, b.Items(), "move shifts items between the positions")
}

func TestArray_MoveErrors(t *testing.T) {
	a := New("A", "B")
	assert.ErrorIs(t, a.Move(0, 2), reorder.ErrIndexOutOfRange)

	empty := New[string]()
	assert.ErrorIs(t, empty.Move(0, 0), reorder.ErrEmptyList)
}

func TestArray_RevisionBumpsOnlyOnSuccess(t *testing.T) {
	a := New("A", "B")
	require.Equal(t, uint64(0), a.Revision())

	a.Append("C")
	assert.Equal(t, uint64(1), a.Revision())

	require.NoError(t, a.Move(0, 2))
	assert.Equal(t, uint64(2), a.Revision())

	require.Error(t, a.Move(0, 9))
	assert.Equal(t, uint64(2), a.Revision(), "failed mutation must not bump the revision")
}

func TestArray_ItemsIsACopy(t *testing.T) {
	a := New("A", "B", "C")

	snapshot := a.Items()
	require.NoError(t, a.Move(0, 2))

	assert.Equal(t, []string{"A", "B", "C"}, snapshot, "earlier snapshots must not observe later commits")
	assert.Equal(t, []string{"B", "C", "A"}, a.Items())

	got := a.Items()
	got[0] = "mutated"
	assert.Equal(t, []string{"B", "C", "A"}, a.Items(), "writing through Items must not reach the array")
}

func TestArray_At(t *testing.T) {
	a := New("A", "B")

	v, err := a.At(1)
	require.NoError(t, err)
	assert.Equal(t, "B", v)

	_, err = a.At(2)
	assert.ErrorIs(t, err, reorder.ErrIndexOutOfRange)
}
