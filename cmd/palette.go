package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/vitrine/internal/color"
	"github.com/zjrosen/vitrine/internal/config"
	"github.com/zjrosen/vitrine/internal/palette"
	"github.com/zjrosen/vitrine/internal/profile"
	"github.com/zjrosen/vitrine/internal/pubsub"
	"github.com/zjrosen/vitrine/internal/ui/swatch"
)

var paletteCmd = &cobra.Command{
	Use:   "palette [base-color]",
	Short: "Print the shade ramp for a base color",
	Long: `Print the ten-step ramp derived from a base color as swatches, or as
CSS custom properties with --css. Without an argument the configured
palette.base_color is used; --fetch asks the configured profile source first.`,
	Example: `  vitrine palette
  vitrine palette "#3366cc" --css
  vitrine palette 2e8b57 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPalette,
}

func init() {
	addPaletteFlags(paletteCmd)
	rootCmd.AddCommand(paletteCmd)
}

func addPaletteFlags(c *cobra.Command) {
	c.Flags().Bool("css", false, "print CSS custom properties")
	c.Flags().Bool("fetch", false, "fetch the base color from the configured profile source")
	c.Flags().Bool("save", false, "save the base color to the config file")
	c.Flags().Int("width", 24, "swatch width in columns")
}

func runPalette(cmd *cobra.Command, args []string) error {
	css, _ := cmd.Flags().GetBool("css")
	fetch, _ := cmd.Flags().GetBool("fetch")
	save, _ := cmd.Flags().GetBool("save")
	width, _ := cmd.Flags().GetInt("width")

	e, err := newEngine(cfg, false)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer func() { _ = e.Close() }()
	store := e.services.Palette

	if len(args) == 1 {
		if !store.SetBaseColor(args[0]) {
			return fmt.Errorf("invalid base color %q: want 6 hex digits, e.g. #976735", args[0])
		}
	}

	if fetch {
		if err := fetchProfile(cmd.Context(), e.services.Feeder); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using %s\n", err, store.BaseColor())
		}
	}

	p := store.Snapshot()
	out := cmd.OutOrStdout()
	if css {
		fmt.Fprint(out, palette.CSS(p))
	} else {
		fmt.Fprintln(out, swatch.Render(p, width))
		fmt.Fprintln(out, store.GradientCSS("to right"))
		fmt.Fprintf(out, "text on %s: %s\n", p.BaseColor, color.Contrast(p.BaseColor))
	}

	if save {
		path := configPath()
		if err := config.SaveBaseColor(path, p.BaseColor); err != nil {
			return fmt.Errorf("saving base color: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved palette.base_color %s to %s\n", p.BaseColor, path)
	}
	return nil
}

// fetchProfile runs one fetch and waits for it.
func fetchProfile(ctx context.Context, feeder *profile.Feeder) error {
	if feeder == nil {
		return fmt.Errorf("no profile source configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var result profile.Result
	unsubscribe := feeder.Results().SubscribeFunc(func(e pubsub.Event[profile.Result]) {
		result = e.Payload
	})
	defer unsubscribe()

	feeder.Refresh(ctx)
	feeder.Wait()

	switch {
	case result.Err != nil:
		return fmt.Errorf("profile fetch failed: %w", result.Err)
	case !result.Applied:
		return fmt.Errorf("profile base color %q rejected", result.Profile.BaseColor)
	}
	return nil
}
