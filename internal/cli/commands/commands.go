package commands

import (
	"io"

	"erlt/internal/cli"
	"erlt/internal/config"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	Shell   *ShellCommand
	List    *ListCommand
	Tools   *ToolsCommand
	History *HistoryCommand
}

// NewCommands creates all commands. Run dependencies are built per invocation from cfg,
// after PreRunE has loaded it.
func NewCommands(cfg *config.Config, flags *cli.Flags, version string) *Commands {
	return &Commands{
		Run:     NewRunCommand(cfg, flags, version),
		Shell:   NewShellCommand(cfg, version),
		List:    NewListCommand(cfg, flags),
		Tools:   NewToolsCommand(cfg),
		History: NewHistoryCommand(cfg, flags),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	loadConfig := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to the YAML config file (default "+config.DefaultConfigFile+" if present)")
	pf.StringVar(&flags.Rebar, "rebar", "", "Rebar executable name or path")
	pf.StringVar(&flags.Erl, "erl", "", "Erlang runtime executable name or path")
	pf.DurationVar(&flags.Timeout, "timeout", 0, "Kill rebar or erl after this long (0 waits forever)")
	pf.BoolVar(&flags.NoProgress, "no-progress", false, "Do not draw the progress spinner")
	pf.BoolVar(&flags.NoHistory, "no-history", false, "Do not record runs in the history file")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the EUnit test generator under the cursor",
		Long:    "Resolve the test generator enclosing a cursor position, compile the project with rebar and run that single generator with erl",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	runCmd.Flags().StringVarP(&flags.File, "file", "f", "", "Erlang source file holding the cursor")
	runCmd.Flags().IntVarP(&flags.Offset, "offset", "o", -1, "Cursor byte offset into the buffer")
	runCmd.Flags().IntVarP(&flags.Line, "line", "l", 0, "Cursor line (1-based), instead of --offset")
	runCmd.Flags().IntVarP(&flags.Col, "col", "c", 1, "Cursor column (1-based), used with --line")
	runCmd.Flags().BoolVar(&flags.Stdin, "stdin", false, "Read the buffer from stdin instead of --file (--file still locates the project)")
	runCmd.MarkFlagsMutuallyExclusive("offset", "line")
	rootCmd.AddCommand(runCmd)

	// Shell command
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Serve editor requests on stdin",
		Long: `Read one request per line from stdin and keep the last resolved test for "redo":

  run <file> <offset>       run the test at a byte offset
  run <file> <line>:<col>   run the test at a 1-based position
  redo                      repeat the last resolved test
  tools                     show the located rebar and erl
  quit                      exit`,
		Args:    cobra.NoArgs,
		RunE:    c.Shell.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(shellCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [path]",
		Short:   "List test generators",
		Long:    "Scan a project for .erl files and list every test generator that can be run",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	listCmd.Flags().StringVar(&flags.NameFilter, "filter", "", "Filter files by name pattern (supports wildcards, e.g., '*_tests.erl' or '*cache*')")
	rootCmd.AddCommand(listCmd)

	// Tools command
	toolsCmd := &cobra.Command{
		Use:     "tools",
		Short:   "Show the rebar and erl executables that will be used",
		Args:    cobra.NoArgs,
		RunE:    c.Tools.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(toolsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "View recorded runs",
		Long:    "Display the runs recorded for a build root in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.History.Execute,
		PreRunE: loadConfig,
	}
	historyCmd.Flags().StringVarP(&flags.Root, "root", "r", ".", "Build root whose history to show")
	historyCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print the history instead of opening the viewer")
	rootCmd.AddCommand(historyCmd)
}

// progressOutput returns where progress is drawn, or nil when disabled
func progressOutput(cfg *config.Config, cmd *cobra.Command) io.Writer {
	if cfg.Flags.NoProgress {
		return nil
	}
	return cmd.ErrOrStderr()
}
