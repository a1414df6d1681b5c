package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/vitrine/internal/app"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Interactive theme and layout playground",
	Long: `Open the playground. It acts as the browser: the mode preference is
persisted, the OS scheme is followed until you choose a mode, and the palette
updates as base colors arrive from the keyboard or the business profile.`,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	e, err := newEngine(cfg, true)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}

	model := app.New(e.services, debugFlag)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if closeErr := e.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
