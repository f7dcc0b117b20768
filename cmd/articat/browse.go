package main

import (
	"github.com/articat/articat/internal/tui"
	"github.com/articat/articat/pkg/selection"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog table",
		Long: `Opens the catalog in a full-screen table view.

Arrow keys move between pages, space toggles the row under the cursor, and
"s" opens a popup that selects the next N rows starting from the current
page, fetching further pages as needed.`,
		Example: `  # Browse with defaults
  articat browse

  # Browse with a Redis page cache and a log file
  articat browse --redis localhost:6379 --log-file articat.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := setupLogging(flags)
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := buildClient(cmd, flags, logger)
			if err != nil {
				return err
			}

			serveMetrics(flags.metricsAddr, logger)

			acc := selection.NewAccumulator(client, selection.Config{MaxPages: flags.maxPages})
			model := tui.NewModel(client, acc, logger)

			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
}
