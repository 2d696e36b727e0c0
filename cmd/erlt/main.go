package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"erlt/internal/cli"
	"erlt/internal/cli/commands"
	"erlt/internal/config"
	"erlt/internal/domain"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "erlt",
		Short: "Run the EUnit test under your cursor",
		Long: `Find the EUnit test generator enclosing a cursor position in an Erlang source file,
compile the project with rebar and run that single generator with erl.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults; PreRunE replaces it with the loaded one
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, &flags, version)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Run errors were already written to the output
		var e *domain.Error
		if !errors.As(err, &e) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(domain.ExitCodeOf(err))
	}
}
