package tui

import (
	"github.com/blackwell-systems/shelfscribe/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI reports whether cmd should open the interactive shelf view:
// both ends of the session must be a terminal, and neither --no-interactive
// nor --json may be set.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsInteractive() {
		return false
	}
	for _, name := range []string{"no-interactive", "json"} {
		if on, err := cmd.Flags().GetBool(name); err == nil && on {
			return false
		}
	}
	return true
}
