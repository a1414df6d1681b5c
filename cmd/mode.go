package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/vitrine/internal/theme"
)

var modeCmd = &cobra.Command{
	Use:   "mode [dark|light|clear]",
	Short: "Show or change the stored light/dark preference",
	Long: `Without an argument, print the resolved mode and where it came from.
"dark" and "light" store an explicit choice; "clear" removes it so the OS
color scheme is followed again.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "clear"},
	RunE:      runMode,
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

func runMode(cmd *cobra.Command, args []string) error {
	e, err := newEngine(cfg, true)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer func() { _ = e.Close() }()
	themes := e.services.Themes

	if len(args) == 1 {
		if args[0] == "clear" {
			themes.ClearPreference()
		} else {
			mode, ok := theme.ParseMode(args[0])
			if !ok {
				return fmt.Errorf("unknown mode %q: want dark, light or clear", args[0])
			}
			<-themes.SetMode(mode)
		}
	}

	printMode(cmd.OutOrStdout(), themes, e.preferenceSetAt)
	return nil
}

// printMode prints the mode and its source. setAt, when it knows, adds the
// time the stored preference was written.
func printMode(w io.Writer, themes *theme.Store, setAt func() (time.Time, bool)) {
	source := "follows OS"
	if themes.HasPreference() {
		source = "stored preference"
		if at, ok := setAt(); ok {
			source += ", set " + at.Local().Format(time.DateTime)
		}
	}
	fmt.Fprintf(w, "%s (%s)\n", themes.Mode(), source)
}
