// Package tui is the interactive editor: a Bubble Tea list over the line
// items where an item can be grabbed, carried over a target and dropped.
// The drop is resolved by id against the list as it is at drop time, so a
// stale grab can never move the wrong item.
package tui

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"unsafe"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliabb01/lineup/internal/model"
	"github.com/aliabb01/lineup/internal/reorder"
)

// lineItem adapts model.Item to bubbles/list.Item
type lineItem struct {
	Item    model.Item
	grabbed bool
}

func (i lineItem) FilterValue() string { return i.Item.Name }

type editorModel struct {
	list    list.Model
	changed bool
	save    func([]model.Item) error

	grabID string // id of the item being carried; empty when idle
	status string

	// Inline add / edit (shared text input)
	adding    bool
	editing   bool
	editIndex int
	ti        textinput.Model
	inputErr  string

	// Undo support (single-level)
	canUndo   bool
	undoIndex int
	undoItem  *lineItem
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(lineItem)

	name := it.Item.Name
	if len(name) > 28 {
		name = name[:25] + "..."
	}
	meta := fmt.Sprintf("%3d x %8s = %9s",
		it.Item.Quantity,
		model.FormatCents(it.Item.UnitCents),
		model.FormatCents(it.Item.TotalCents()))

	line := fmt.Sprintf("%-28s %s", name, mutedStyle.Render(meta))
	prefix := "  "
	switch {
	case it.grabbed:
		prefix = grabbedStyle.Render(handleGlyph + " ")
		line = grabbedStyle.Render(fmt.Sprintf("%-28s %s", name, meta))
	case index == m.Index():
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Run starts the Bubble Tea editor and persists changes when quitting.
func Run(items []model.Item, save func([]model.Item) error) error {
	m := newEditor(items, save)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, okModel := finalModel.(editorModel)
	if !okModel {
		return nil
	}

	// Write back list state and persist if changed
	if fm.changed {
		if err := fm.save(itemsOf(fm.list)); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("✔ saved"))
	}
	return nil
}

func newEditor(items []model.Item, save func([]model.Item) error) editorModel {
	l := list.New(toListItems(items), itemDelegate{}, 0, 0)

	l.Title = fmt.Sprintf("%s   %s %d  %s %s",
		titleStyle.Render("Line items"),
		accentStyle.Render("Items"), len(items),
		accentStyle.Render("Total"), model.FormatCents(grandTotal(items)),
	)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	// Extend help with the editor's own bindings
	grabBind := key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab/drop"))
	moveBind := key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "move up/down"))
	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	extra := func() []key.Binding {
		return []key.Binding{grabBind, moveBind, addBind, editBind, undoBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := editorModel{
		list: l,
		save: save,
	}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "Name x2 @4.99"
	m.ti.CharLimit = 200
	return m
}

// Update and View implement Bubble Tea's Model on editorModel
func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// add mode
	if m.adding {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				it, err := parseEntry(m.ti.Value())
				if err != nil {
					m.inputErr = err.Error()
					return m, nil
				}
				m.list.InsertItem(m.list.Index()+1, lineItem{Item: it})
				m.changed = true
				m.closeInput()
				return m, nil
			case "esc":
				m.closeInput()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// edit mode
	if m.editing {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				it, err := parseEntry(m.ti.Value())
				if err != nil {
					m.inputErr = err.Error()
					return m, nil
				}
				if m.editIndex >= 0 && m.editIndex < len(m.list.Items()) {
					if li, ok := m.list.Items()[m.editIndex].(lineItem); ok {
						// id and description survive an inline edit
						it.ID = li.Item.ID
						it.Description = li.Item.Description
						li.Item = it
						m.list.SetItem(m.editIndex, li)
						m.changed = true
					}
				}
				m.closeInput()
				return m, nil
			case "esc":
				m.closeInput()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			if m.grabID != "" {
				return m.releaseGrab(false), nil
			}
			return m, tea.Quit
		case "g", " ":
			if m.grabID == "" {
				return m.startGrab(), nil
			}
			return m.releaseGrab(true), nil
		case "enter":
			if m.grabID != "" {
				return m.releaseGrab(true), nil
			}
			return m, nil
		case "K":
			return m.step(-1), nil
		case "J":
			return m.step(+1), nil
		case "d":
			i := m.list.Index()
			if i >= 0 && i < len(m.list.Items()) {
				if li, ok := m.list.Items()[i].(lineItem); ok {
					if li.Item.ID == m.grabID {
						m.grabID = ""
					}
					tmp := li
					m.undoItem = &tmp
					m.undoIndex = i
					m.canUndo = true
				}
				m.list.RemoveItem(i)
				m.changed = true
			}
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "Name x2 @4.99"
			m.ti.Focus()
			return m, nil
		case "e":
			i := m.list.Index()
			if i >= 0 && i < len(m.list.Items()) {
				if li, ok := m.list.Items()[i].(lineItem); ok {
					m.editing = true
					m.editIndex = i
					m.ti.SetValue(entryString(li.Item))
					m.ti.CursorEnd()
					m.ti.Focus()
					return m, nil
				}
			}
			return m, nil
		case "u":
			if m.canUndo && m.undoItem != nil {
				idx := m.undoIndex
				if idx < 0 {
					idx = 0
				}
				if idx > len(m.list.Items()) {
					idx = len(m.list.Items())
				}
				m.list.InsertItem(idx, *m.undoItem)
				m.changed = true
				m.canUndo = false
				m.undoItem = nil
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// startGrab marks the selected item as carried. From here the cursor picks
// the target; the item itself stays put until the drop.
func (m editorModel) startGrab() editorModel {
	i := m.list.Index()
	if i < 0 || i >= len(m.list.Items()) {
		return m
	}
	li, ok := m.list.Items()[i].(lineItem)
	if !ok {
		return m
	}
	m.grabID = li.Item.ID
	li.grabbed = true
	m.list.SetItem(i, li)
	m.status = "moving: ↑/↓ pick target, enter/g drop, esc cancel"
	return m
}

// releaseGrab ends the grab session. When commit is true the drop is
// resolved by id against the current list; a cancel just clears the mark.
func (m editorModel) releaseGrab(commit bool) editorModel {
	items := itemsOf(m.list)
	drop := reorder.Drop{ActiveID: m.grabID}
	if i := m.list.Index(); commit && i >= 0 && i < len(items) {
		drop.OverID = items[i].ID
	}
	m.grabID = ""
	m.status = ""

	next, err := reorder.Resolve(items, model.ItemID, drop)
	if err != nil {
		// both ids were just resolved against this list, so this is a bug
		m.status = errorStyle.Render(err.Error())
		next = items
	}
	if !sameOrder(items, next) {
		m.changed = true
	}
	m.list.SetItems(toListItems(next))
	if at := reorder.IndexOf(next, model.ItemID, drop.ActiveID); at >= 0 {
		m.list.Select(at)
	}
	return m
}

// step moves the selected item one position up (-1) or down (+1),
// keeping the cursor on it.
func (m editorModel) step(delta int) editorModel {
	if m.grabID != "" {
		return m // carried items move on drop, not by step
	}
	i := m.list.Index()
	items := itemsOf(m.list)
	if i < 0 || i >= len(items) {
		return m
	}
	var next []model.Item
	var err error
	if delta < 0 {
		next, err = reorder.MoveUp(items, i)
	} else {
		next, err = reorder.MoveDown(items, i)
	}
	if err != nil || sameOrder(items, next) {
		return m
	}
	m.changed = true
	m.list.SetItems(toListItems(next))
	m.list.Select(i + delta)
	return m
}

func (m *editorModel) closeInput() {
	m.ti.SetValue("")
	m.ti.Blur()
	m.adding = false
	m.editing = false
	m.inputErr = ""
}

func (m editorModel) View() string {
	w, h := widthHeight()
	listHeight := h - 4
	if m.adding || m.editing || m.status != "" {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	if m.adding || m.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " — " + errorStyle.Render(m.inputErr)
		}
		inputLine := title + "\n" + m.ti.View()
		content = content + "\n" + bar.Render(inputLine)
	} else if m.status != "" {
		content = content + "\n" + helpStyle.Render(m.status)
	}
	return panelString(content)
}

// -------------- item plumbing --------------

func toListItems(items []model.Item) []list.Item {
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, lineItem{Item: it})
	}
	return li
}

func itemsOf(l list.Model) []model.Item {
	out := make([]model.Item, 0, len(l.Items()))
	for _, it := range l.Items() {
		if li, ok := it.(lineItem); ok {
			out = append(out, li.Item)
		}
	}
	return out
}

func sameOrder(a, b []model.Item) bool {
	return slices.EqualFunc(a, b, func(x, y model.Item) bool { return x.ID == y.ID })
}

func grandTotal(items []model.Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.TotalCents()
	}
	return sum
}

// parseEntry reads the inline input syntax: a name, an optional quantity
// ("x2") and an optional unit price ("@4.99"), e.g. "Widget x3 @4.99".
func parseEntry(s string) (model.Item, error) {
	qty := 1
	var cents int64
	var nameParts []string

	for _, f := range strings.Fields(s) {
		switch {
		case len(f) > 1 && f[0] == 'x' && isDigits(f[1:]):
			n, err := strconv.Atoi(f[1:])
			if err != nil {
				return model.Item{}, fmt.Errorf("quantity %q: %w", f, err)
			}
			qty = n
		case len(f) > 1 && f[0] == '@':
			c, err := model.ParseCents(f[1:])
			if err != nil {
				return model.Item{}, err
			}
			cents = c
		default:
			nameParts = append(nameParts, f)
		}
	}

	it := model.New(strings.Join(nameParts, " "), "", qty, cents)
	if err := it.Validate(); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// entryString is the inverse of parseEntry, used to prefill an edit.
func entryString(it model.Item) string {
	return fmt.Sprintf("%s x%d @%s", it.Name, it.Quantity,
		strings.TrimPrefix(model.FormatCents(it.UnitCents), "$"))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// helpers for View
func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := termSize(); err == nil {
		w, h = tw, th
	}
	return w, h
}

// portable terminal size
func termSize() (int, int, error) {
	fd := int(os.Stdout.Fd())
	type winsize struct {
		Row, Col, Xpixel, Ypixel uint16
	}
	ws := &winsize{}
	_, _, err := syscall.Syscall(syscall.SYS_IOCTL,
		uintptr(fd), uintptr(syscall.TIOCGWINSZ), uintptr(unsafe.Pointer(ws)))
	if err != 0 {
		return 0, 0, fmt.Errorf("ioctl: %v", err)
	}
	return int(ws.Col), int(ws.Row), nil
}
