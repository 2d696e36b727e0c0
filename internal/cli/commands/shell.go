package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"erlt/internal/config"
	"erlt/internal/domain"
	"erlt/internal/execution"
	"erlt/internal/pipeline"
	"erlt/internal/ui"

	"github.com/spf13/cobra"
)

// ShellCommand handles the shell command
type ShellCommand struct {
	config  *config.Config
	version string
}

// NewShellCommand creates a new ShellCommand
func NewShellCommand(cfg *config.Config, version string) *ShellCommand {
	return &ShellCommand{
		config:  cfg,
		version: version,
	}
}

// Execute runs the command
func (sc *ShellCommand) Execute(cmd *cobra.Command, args []string) error {
	sink := ui.NewConsole(cmd.OutOrStdout())
	e := newEngine(cmd.Context(), sc.config, sc.version, sink, progressOutput(sc.config, cmd))
	defer e.close()

	s := &shell{
		pipeline: e.pipeline,
		tools:    e.runner.Tools,
		sink:     sink,
		readFile: os.ReadFile,
	}
	return s.serve(cmd.Context(), cmd.InOrStdin())
}

type shellVerb int

const (
	verbRun shellVerb = iota
	verbRedo
	verbTools
	verbQuit
)

// shellRequest is one parsed input line
type shellRequest struct {
	verb   shellVerb
	file   string
	offset int // -1 when the position was given as line:col
	line   int
	col    int
}

// parseShellRequest parses one non-empty input line
func parseShellRequest(input string) (shellRequest, error) {
	input = strings.TrimSpace(input)
	word, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch word {
	case "redo":
		return shellRequest{verb: verbRedo}, nil
	case "tools":
		return shellRequest{verb: verbTools}, nil
	case "quit", "exit":
		return shellRequest{verb: verbQuit}, nil
	case "run":
	default:
		return shellRequest{}, fmt.Errorf("unknown request %q (expected run, redo, tools or quit)", word)
	}

	// The position is the last field so file names may contain spaces
	i := strings.LastIndexAny(rest, " \t")
	if i < 0 {
		return shellRequest{}, errors.New("usage: run <file> <offset> | run <file> <line>:<col>")
	}
	req := shellRequest{verb: verbRun, file: strings.TrimSpace(rest[:i]), offset: -1}
	pos := rest[i+1:]

	if l, c, ok := strings.Cut(pos, ":"); ok {
		line, err := strconv.Atoi(l)
		if err != nil {
			return shellRequest{}, fmt.Errorf("invalid line %q", l)
		}
		col, err := strconv.Atoi(c)
		if err != nil {
			return shellRequest{}, fmt.Errorf("invalid column %q", c)
		}
		if line < 1 || col < 1 {
			return shellRequest{}, fmt.Errorf("invalid position %s", pos)
		}
		req.line, req.col = line, col
		return req, nil
	}

	offset, err := strconv.Atoi(pos)
	if err != nil || offset < 0 {
		return shellRequest{}, fmt.Errorf("invalid offset %q", pos)
	}
	req.offset = offset
	return req, nil
}

// shell serves editor requests against one session
type shell struct {
	pipeline *pipeline.Pipeline
	tools    func() execution.Tools
	sink     ui.Sink
	readFile func(string) ([]byte, error)
}

// serve handles requests until quit, end of input or cancellation. Failed runs are reported on the sink and do not end the shell.
func (s *shell) serve(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		req, err := parseShellRequest(line)
		if err != nil {
			s.sink.Error(err.Error())
			continue
		}

		switch req.verb {
		case verbQuit:
			return nil
		case verbTools:
			logTools(s.sink, s.tools())
		case verbRedo:
			_, err = s.pipeline.Redo(ctx)
			s.reportUnlogged(err)
		case verbRun:
			s.run(ctx, req)
		}
	}
	return scanner.Err()
}

func (s *shell) run(ctx context.Context, req shellRequest) {
	data, err := s.readFile(req.file)
	if err != nil {
		s.sink.Error(fmt.Sprintf("Could not read %s: %v", req.file, err))
		return
	}
	buffer := string(data)

	offset, err := cursorOffset(buffer, req.offset, req.line, req.col)
	if err != nil {
		s.sink.Error(err.Error())
		return
	}

	_, err = s.pipeline.RunFresh(ctx, pipeline.Request{FilePath: req.file, Buffer: buffer, Offset: offset})
	s.reportUnlogged(err)
}

// reportUnlogged reports errors the pipeline did not already write to the sink
func (s *shell) reportUnlogged(err error) {
	var e *domain.Error
	if err == nil || errors.As(err, &e) {
		return
	}
	s.sink.Error(err.Error())
}
