package listview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	label  string
	header bool
}

func rows(labels ...string) []row {
	out := make([]row, 0, len(labels))
	for _, l := range labels {
		out = append(out, row{label: strings.TrimPrefix(l, "#"), header: strings.HasPrefix(l, "#")})
	}
	return out
}

func newTestList(items []row, height int) *Model[row] {
	return New(items, height,
		func(r row, selected bool) string {
			if selected {
				return "> " + r.label
			}
			return "  " + r.label
		},
		func(r row) bool { return !r.header },
	)
}

func current(t *testing.T, m *Model[row]) string {
	t.Helper()
	r, ok := m.Current()
	require.True(t, ok)
	return r.label
}

func TestModel_SkipsHeaders(t *testing.T) {
	m := newTestList(rows("#Alpha", "a1", "a2", "#Beta", "b1"), 10)

	assert.Equal(t, "a1", current(t, m), "cursor starts on the first selectable row")
	m.Down()
	m.Down()
	assert.Equal(t, "b1", current(t, m), "headers are skipped")
	m.Down()
	assert.Equal(t, "b1", current(t, m), "stays on the last row")
	m.Up()
	assert.Equal(t, "a2", current(t, m))
	m.Home()
	assert.Equal(t, "a1", current(t, m))
	m.Up()
	assert.Equal(t, "a1", current(t, m))
	m.End()
	assert.Equal(t, "b1", current(t, m))
}

func TestModel_Empty(t *testing.T) {
	m := newTestList(nil, 5)
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Equal(t, -1, m.Cursor())
	assert.Empty(t, m.View())
	m.Down()
	m.Up()

	m = newTestList(rows("#only headers"), 5)
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestModel_ScrollsWindow(t *testing.T) {
	m := newTestList(rows("#H", "1", "2", "3", "4", "5", "6"), 3)

	from, to := m.Window()
	assert.Equal(t, 0, from)
	assert.Equal(t, 3, to)

	m.End()
	from, to = m.Window()
	assert.Equal(t, 4, from)
	assert.Equal(t, 7, to)
	assert.Equal(t, "  4\n  5\n> 6", m.View())

	m.Home()
	from, _ = m.Window()
	assert.Equal(t, 0, from, "header above the first row comes back into view")
}

func TestModel_SelectAndSetItems(t *testing.T) {
	m := newTestList(rows("#A", "x", "y", "#B", "z"), 10)

	require.True(t, m.Select(func(r row) bool { return r.label == "z" }))
	assert.Equal(t, "z", current(t, m))
	assert.False(t, m.Select(func(r row) bool { return r.label == "B" }), "headers cannot be selected")
	assert.Equal(t, "z", current(t, m))

	m.SetItems(rows("#C", "w"))
	assert.Equal(t, "w", current(t, m))
	assert.Equal(t, 2, m.Len())
}
