package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth  = 6
	labelWidth = 4
	glyph      = "■"
)

var (
	styleEmpty   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"})
	styleFilled  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"})
	styleUpdated = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}).Bold(true)
	styleDeleted = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Faint(true)
	styleHit     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}).Reverse(true)
	styleCursor  = lipgloss.NewStyle().Bold(true)
	styleAxis    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderOptions controls Render.
type RenderOptions struct {
	// Cursor is the key of the focused cell, drawn in brackets.
	Cursor string
	// Plain disables colour, for pipes and --no-color.
	Plain bool
}

// Render draws the grid with column and row labels. Hidden slots are left
// blank so the shelf keeps its shape.
func Render(g Grid, opts RenderOptions) string {
	paint := func(s lipgloss.Style, text string) string {
		if opts.Plain {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for col := 1; col <= len(g.Columns); col++ {
		b.WriteString(paint(styleAxis, fmt.Sprintf("%-*s", cellWidth, fmt.Sprintf(" C%d", col))))
	}
	b.WriteString("\n")

	for row := 1; row <= g.Rows(); row++ {
		b.WriteString(paint(styleAxis, fmt.Sprintf("%-*s", labelWidth, fmt.Sprintf("L%d", row))))
		for col := 1; col <= len(g.Columns); col++ {
			c, ok := g.At(col, row)
			if !ok || !c.Visible {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(renderCell(c, c.Key() == opts.Cursor, paint))
		}
		b.WriteString("\n")
	}
	if len(g.Overflow) > 0 {
		b.WriteString(paint(styleAxis, "beyond the grid: "+strings.Join(g.Overflow, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(c Cell, focused bool, paint func(lipgloss.Style, string) string) string {
	body := "+"
	style := styleEmpty
	if c.Occupied() {
		body = strings.Repeat(glyph, c.Glyphs())
		style = styleFilled
	}
	switch {
	case c.Deleted:
		style = styleDeleted
	case c.SearchHit:
		style = styleHit
	case c.Updated:
		style = styleUpdated
	}

	// body is at most MaxGlyphs runes wide
	pad := cellWidth - 2 - len([]rune(body))
	inner := body + strings.Repeat(" ", pad)
	if focused {
		return paint(styleCursor, "[") + paint(style, inner) + paint(styleCursor, "]")
	}
	return " " + paint(style, inner) + " "
}
