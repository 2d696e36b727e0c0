package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"erlt/internal/cli"
	"erlt/internal/config"
	"erlt/internal/storage"
	"erlt/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
	flags  *cli.Flags
	viewer ui.Viewer
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, flags *cli.Flags) *HistoryCommand {
	return &HistoryCommand{
		config: cfg,
		flags:  flags,
		viewer: ui.NewHistoryViewer(),
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(hc.flags.Root)
	if err != nil {
		return err
	}

	records, err := storage.NewJSONStorage(hc.config).Load(root)
	if err != nil {
		return err
	}

	if hc.flags.Plain {
		ui.NewFormatter(cmd.OutOrStdout(), nil).PrintHistory(records)
		return nil
	}
	return hc.viewer.View(records)
}
