package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ClearActiveCmdMsg clears the active command highlight in the footer.
type ClearActiveCmdMsg struct{}

// ShortcutEntry pairs a trigger key with the display label for footer highlighting.
type ShortcutEntry struct {
	Key   string // trigger key to match against activeCmd (empty = no highlight)
	Label string // display text
}

// shortcutsFor builds footer entries from the bindings' help text. The first
// key of each binding is what activeCmd is matched against.
func shortcutsFor(bindings ...key.Binding) []ShortcutEntry {
	out := make([]ShortcutEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		e := ShortcutEntry{Label: h.Key + " " + h.Desc}
		if keys := b.Keys(); len(keys) > 0 {
			e.Key = keys[0]
		}
		out = append(out, e)
	}
	return out
}

// HighlightCmd returns a 500ms tick command to clear the active command highlight.
// Callers must set activeCmd on the model directly before returning:
//
//	m.activeCmd = "key"
//	return m, HighlightCmd()
func HighlightCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

// RenderFooterBar renders shortcut labels separated by dots, wrapping onto
// a new line before width is exceeded (0 = never wrap). The shortcut
// matching activeCmd is bracketed and highlighted.
func RenderFooterBar(shortcuts []ShortcutEntry, activeCmd string, width int) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sep := dim.Render(" • ")

	var lines []string
	var line strings.Builder
	for _, sc := range shortcuts {
		part := dim.Render(sc.Label)
		if activeCmd != "" && sc.Key == activeCmd {
			part = StyleHighlight.Render("[ " + sc.Label + " ]")
		}
		if line.Len() > 0 {
			if width > 0 && lipgloss.Width(line.String()+sep+part) > width {
				lines = append(lines, line.String())
				line.Reset()
			} else {
				line.WriteString(sep)
			}
		}
		line.WriteString(part)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
}
