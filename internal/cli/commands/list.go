package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"erlt/internal/cli"
	"erlt/internal/config"
	"erlt/internal/discovery"
	"erlt/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	flags  *cli.Flags
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, flags *cli.Flags) *ListCommand {
	return &ListCommand{
		config: cfg,
		flags:  flags,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}
	projectPath, err := filepath.Abs(projectPath)
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(lc.config.PathsToIgnore)
	files, err := scanner.Scan(projectPath)
	if err != nil {
		return err
	}

	// Filter files
	files = discovery.NewFilter().FilterByName(files, lc.flags.NameFilter)

	formatter := ui.NewFormatter(cmd.OutOrStdout(), discovery.NewParser(discovery.NewResolver()))
	return formatter.PrintTestList(projectPath, files)
}
