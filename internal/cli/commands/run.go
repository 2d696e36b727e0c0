package commands

import (
	"io"
	"os"

	"erlt/internal/cli"
	"erlt/internal/config"
	"erlt/internal/discovery"
	"erlt/internal/domain"
	"erlt/internal/pipeline"
	"erlt/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config  *config.Config
	flags   *cli.Flags
	version string
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, flags *cli.Flags, version string) *RunCommand {
	return &RunCommand{
		config:  cfg,
		flags:   flags,
		version: version,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	sink := ui.NewConsole(cmd.OutOrStdout())

	req, err := rc.request(cmd.InOrStdin())
	if err != nil {
		sink.Error(err.Error())
		return err
	}

	e := newEngine(cmd.Context(), rc.config, rc.version, sink, progressOutput(rc.config, cmd))
	defer e.close()

	_, err = e.pipeline.RunFresh(cmd.Context(), req)
	return err
}

// request reads the buffer and converts the cursor flags into a byte offset
func (rc *RunCommand) request(stdin io.Reader) (pipeline.Request, error) {
	req := pipeline.Request{FilePath: rc.flags.File}

	switch {
	case rc.flags.Stdin:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return req, domain.WrapError(domain.KindConfiguration, err, "Could not read buffer from stdin")
		}
		req.Buffer = string(data)
	case rc.flags.File != "":
		data, err := os.ReadFile(rc.flags.File)
		if err != nil {
			return req, domain.WrapError(domain.KindConfiguration, err, "Could not read %s", rc.flags.File)
		}
		req.Buffer = string(data)
	default:
		return req, domain.NewError(domain.KindConfiguration, "No buffer to run: pass --file or --stdin.")
	}

	offset, err := cursorOffset(req.Buffer, rc.flags.Offset, rc.flags.Line, rc.flags.Col)
	if err != nil {
		return req, err
	}
	req.Offset = offset
	return req, nil
}

// cursorOffset picks the byte offset from either a line/column pair (line > 0) or a raw offset (>= 0)
func cursorOffset(buffer string, offset, line, col int) (int, error) {
	if line > 0 {
		o, err := discovery.OffsetAt(buffer, line, col)
		if err != nil {
			return 0, domain.WrapError(domain.KindConfiguration, err, "Invalid cursor position")
		}
		return o, nil
	}
	if offset < 0 {
		return 0, domain.NewError(domain.KindConfiguration, "No cursor position: pass --offset or --line.")
	}
	if offset > len(buffer) {
		return 0, domain.NewError(domain.KindConfiguration, "Cursor offset %d is past the end of the buffer (%d bytes).", offset, len(buffer))
	}
	return offset, nil
}
