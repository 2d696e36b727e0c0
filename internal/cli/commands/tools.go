package commands

import (
	"github.com/spf13/cobra"

	"erlt/internal/config"
	"erlt/internal/execution"
	"erlt/internal/ui"
)

// ToolsCommand handles the tools command
type ToolsCommand struct {
	config *config.Config
}

// NewToolsCommand creates a new ToolsCommand
func NewToolsCommand(cfg *config.Config) *ToolsCommand {
	return &ToolsCommand{config: cfg}
}

// Execute prints the located tools and fails when one of them is missing
func (tc *ToolsCommand) Execute(cmd *cobra.Command, args []string) error {
	sink := ui.NewConsole(cmd.OutOrStdout())
	executor := execution.NewExecutor(tc.config.ExtraPath, tc.config.Timeout)
	tools := execution.NewLocator(executor).LocateTools(cmd.Context(), tc.config.Rebar, tc.config.Erl)
	logTools(sink, tools)

	runner := execution.NewRunner(tc.config, executor, nil, sink, tools)
	if err := runner.CheckTools(); err != nil {
		sink.Error(err.Error())
		return err
	}
	return nil
}
