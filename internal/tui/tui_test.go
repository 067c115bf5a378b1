package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliabb01/lineup/internal/model"
)

func testItems() []model.Item {
	return []model.Item{
		{ID: "1", Name: "Widget", Quantity: 2, UnitCents: 499},
		{ID: "2", Name: "Gadget", Quantity: 1, UnitCents: 1050},
		{ID: "3", Name: "Sprocket", Quantity: 4, UnitCents: 25},
	}
}

func newTestEditor(t *testing.T) editorModel {
	t.Helper()
	m := newEditor(testItems(), func([]model.Item) error { return nil })
	m.list.SetSize(80, 20)
	return m
}

func press(t *testing.T, m editorModel, keys ...tea.KeyMsg) editorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(editorModel)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ids(t *testing.T, m editorModel) []string {
	t.Helper()
	items := itemsOf(m.list)
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestGrabAndDrop(t *testing.T) {
	m := newTestEditor(t)

	// Grab the first item, carry it past two targets, drop.
	m = press(t, m, runes("g"))
	assert.Equal(t, "1", m.grabID)

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	assert.Empty(t, m.grabID)
	assert.Equal(t, []string{"2", "3", "1"}, ids(t, m))
	assert.True(t, m.changed)
	assert.Equal(t, 2, m.list.Index(), "cursor follows the dropped item")
}

func TestGrabDropOnSelf(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"1", "2", "3"}, ids(t, m))
	assert.False(t, m.changed, "dropping an item on itself must not mark the list changed")
}

func TestGrabCancel(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, m.grabID)
	assert.Equal(t, []string{"1", "2", "3"}, ids(t, m))
	assert.False(t, m.changed)
}

func TestGrabToggleKeyDrops(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyDown}, runes("g"))

	assert.Equal(t, []string{"2", "1", "3"}, ids(t, m))
	assert.True(t, m.changed)
}

func TestStepMoves(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("J"))
	assert.Equal(t, []string{"2", "1", "3"}, ids(t, m))
	assert.Equal(t, 1, m.list.Index())

	m = press(t, m, runes("K"))
	assert.Equal(t, []string{"1", "2", "3"}, ids(t, m))
	assert.Equal(t, 0, m.list.Index())
}

func TestStepBoundariesAreNoops(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("K"))
	assert.Equal(t, []string{"1", "2", "3"}, ids(t, m), "K at the top is a no-op")
	assert.False(t, m.changed)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, runes("J"))
	assert.Equal(t, []string{"1", "2", "3"}, ids(t, m), "J at the bottom is a no-op")
	assert.False(t, m.changed)
}

func TestDeleteAndUndo(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("d"))
	assert.Equal(t, []string{"2", "3"}, ids(t, m))
	assert.True(t, m.changed)

	m = press(t, m, runes("u"))
	assert.Equal(t, []string{"1", "2", "3"}, ids(t, m))
}

func TestInlineAdd(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("a"))
	require.True(t, m.adding)

	m.ti.SetValue("Flange x2 @3.50")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.False(t, m.adding)
	items := itemsOf(m.list)
	require.Len(t, items, 4)
	added := items[1] // inserted after the cursor
	assert.Equal(t, "Flange", added.Name)
	assert.Equal(t, 2, added.Quantity)
	assert.Equal(t, int64(350), added.UnitCents)
	assert.NotEmpty(t, added.ID)
	assert.True(t, m.changed)
}

func TestInlineAddRejectsEmptyName(t *testing.T) {
	m := newTestEditor(t)

	m = press(t, m, runes("a"))
	m.ti.SetValue("x2 @3.50")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.adding, "invalid entry keeps the input open")
	assert.NotEmpty(t, m.inputErr)
	assert.Len(t, itemsOf(m.list), 3)
}

func TestInlineEditKeepsIDAndDescription(t *testing.T) {
	items := testItems()
	items[0].Description = "a widget"
	m := newEditor(items, func([]model.Item) error { return nil })
	m.list.SetSize(80, 20)

	m = press(t, m, runes("e"))
	require.True(t, m.editing)
	assert.Equal(t, "Widget x2 @4.99", m.ti.Value())

	m.ti.SetValue("Widget Pro x3 @5.25")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := itemsOf(m.list)[0]
	assert.Equal(t, "1", got.ID, "edit must not change the id")
	assert.Equal(t, "a widget", got.Description)
	assert.Equal(t, "Widget Pro", got.Name)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, int64(525), got.UnitCents)
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		qty   int
		cents int64
	}{
		{"Widget", "Widget", 1, 0},
		{"Widget x3", "Widget", 3, 0},
		{"Widget @4.99", "Widget", 1, 499},
		{"Widget x3 @4.99", "Widget", 3, 499},
		{"@4.99 x3 Widget", "Widget", 3, 499},
		{"xylophone stand x2", "xylophone stand", 2, 0},
	}
	for _, tt := range tests {
		got, err := parseEntry(tt.in)
		require.NoError(t, err, "parseEntry(%q)", tt.in)
		assert.Equal(t, tt.name, got.Name, "parseEntry(%q)", tt.in)
		assert.Equal(t, tt.qty, got.Quantity, "parseEntry(%q)", tt.in)
		assert.Equal(t, tt.cents, got.UnitCents, "parseEntry(%q)", tt.in)
	}

	for _, bad := range []string{"", "x3 @4.99", "Widget @abc"} {
		_, err := parseEntry(bad)
		assert.Error(t, err, "parseEntry(%q)", bad)
	}
}

func TestEntryString(t *testing.T) {
	it := model.Item{Name: "Widget", Quantity: 2, UnitCents: 499}
	assert.Equal(t, "Widget x2 @4.99", entryString(it))
}
