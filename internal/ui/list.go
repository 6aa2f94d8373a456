package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type listCursor struct {
	index int
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// navigate applies a movement key to cursor over n rows. It reports
// whether the key was a movement key.
func (k keyMap) navigate(msg tea.KeyMsg, cursor *int, n int) bool {
	switch {
	case key.Matches(msg, k.Up):
		*cursor = clampIndex(*cursor-1, n)
	case key.Matches(msg, k.Down):
		*cursor = clampIndex(*cursor+1, n)
	case key.Matches(msg, k.Top):
		*cursor = 0
	case key.Matches(msg, k.Bottom):
		*cursor = clampIndex(n-1, n)
	default:
		return false
	}
	return true
}

// window returns the slice bounds of a height-row window that keeps cursor
// visible.
func window(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

// renderRows joins rendered rows, highlighting the cursor row and clipping
// to height.
func (m Model) renderRows(rows []string, cursor, height int) string {
	styles := m.theme.Styles()
	start, end := window(cursor, len(rows), height)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == cursor {
			out = append(out, styles.Selected.Width(m.width).Render(rows[i]))
			continue
		}
		out = append(out, rows[i])
	}
	return strings.Join(out, "\n")
}

// renderEmpty renders a placeholder for an empty list.
func (m Model) renderEmpty(text string) string {
	return m.theme.Styles().MutedText.Padding(1, 2).Render(text)
}
