package listview

import (
	"strings"
)

// RenderFunc renders one row. selected is true for the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// SelectableFunc reports whether the cursor may rest on item.
type SelectableFunc[T any] func(item T) bool

// Model is a windowed list with a cursor. It is driven by the owning
// bubbletea model through the movement methods rather than by raw key messages,
// so callers decide the key bindings.
type Model[T any] struct {
	items      []T
	render     RenderFunc[T]
	selectable SelectableFunc[T]

	selected int
	from     int
	height   int
}

// New creates a list showing height rows. A nil selectable accepts every row.
func New[T any](items []T, height int, render RenderFunc[T], selectable SelectableFunc[T]) *Model[T] {
	if selectable == nil {
		selectable = func(T) bool { return true }
	}
	m := &Model[T]{render: render, selectable: selectable, height: max(height, 1)}
	m.SetItems(items)
	return m
}

// SetItems replaces the rows and moves the cursor to the first selectable row.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = -1
	m.from = 0
	m.seek(0, 1)
}

// SetHeight changes the viewport height.
func (m *Model[T]) SetHeight(h int) {
	m.height = max(h, 1)
	m.scroll()
}

// Up moves the cursor to the previous selectable row.
func (m *Model[T]) Up() {
	m.seek(m.selected-1, -1)
}

// Down moves the cursor to the next selectable row.
func (m *Model[T]) Down() {
	m.seek(m.selected+1, 1)
}

// Home moves the cursor to the first selectable row.
func (m *Model[T]) Home() {
	m.seek(0, 1)
}

// End moves the cursor to the last selectable row.
func (m *Model[T]) End() {
	m.seek(len(m.items)-1, -1)
}

// Select places the cursor on the first row matching pred. It returns false
// and leaves the cursor alone when none matches.
func (m *Model[T]) Select(pred func(T) bool) bool {
	for i, it := range m.items {
		if m.selectable(it) && pred(it) {
			m.selected = i
			m.scroll()
			return true
		}
	}
	return false
}

// seek moves from start in direction dir to the nearest selectable row.
// The cursor stays put when there is none.
func (m *Model[T]) seek(start, dir int) {
	for i := start; i >= 0 && i < len(m.items); i += dir {
		if m.selectable(m.items[i]) {
			m.selected = i
			m.scroll()
			return
		}
	}
}

// scroll keeps the cursor inside the viewport. A header directly above the
// first selectable row stays visible.
func (m *Model[T]) scroll() {
	if m.selected < 0 {
		m.from = 0
		return
	}
	if m.selected < m.from {
		m.from = m.selected
		if m.from > 0 && !m.selectable(m.items[m.from-1]) {
			m.from--
		}
	}
	if m.selected >= m.from+m.height {
		m.from = m.selected - m.height + 1
	}
	if maxFrom := len(m.items) - m.height; m.from > maxFrom {
		m.from = max(maxFrom, 0)
	}
}

// View renders the rows in the viewport.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	to := min(m.from+m.height, len(m.items))
	var b strings.Builder
	for i := m.from; i < to; i++ {
		if i > m.from {
			b.WriteByte('\n')
		}
		b.WriteString(m.render(m.items[i], i == m.selected))
	}
	return b.String()
}

// Len returns the number of rows, selectable or not.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Cursor returns the cursor row index, or -1 when no row is selectable.
func (m *Model[T]) Cursor() int {
	return m.selected
}

// Current returns the row under the cursor.
func (m *Model[T]) Current() (T, bool) {
	var zero T
	if m.selected < 0 || m.selected >= len(m.items) {
		return zero, false
	}
	return m.items[m.selected], true
}

// Window returns the first visible row index and the exclusive end.
func (m *Model[T]) Window() (int, int) {
	return m.from, min(m.from+m.height, len(m.items))
}
