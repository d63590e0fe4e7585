package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared with the grid renderer and the fatih/color console output.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}
	ColorText   = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
	ColorRed    = lipgloss.Color("196")
)

var (
	// StyleHighlight marks the focused editor row, prompt labels and the
	// footer shortcut just used.
	StyleHighlight = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	// StyleOK is for success toasts and search hits.
	StyleOK = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleBarcode renders barcode values wherever they appear.
	StyleBarcode = lipgloss.NewStyle().Foreground(ColorCyan)

	StyleHelp  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleHeader titles the details pane, the editor and dialogs.
	StyleHeader = lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	// StylePanel frames the cell editor.
	StylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	// StyleBanner is the bar shown while a move waits for its target.
	StyleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(ColorYellow).
			Bold(true).
			Padding(0, 1)
)
