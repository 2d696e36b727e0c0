package commands

import (
	"context"
	"io"

	"erlt/internal/config"
	"erlt/internal/discovery"
	"erlt/internal/execution"
	"erlt/internal/parser"
	"erlt/internal/pipeline"
	"erlt/internal/session"
	"erlt/internal/storage"
	"erlt/internal/ui"
)

// engine is everything a run needs, built once from the loaded configuration
type engine struct {
	pipeline *pipeline.Pipeline
	runner   *execution.Runner
	spinner  *ui.Spinner
}

// newEngine locates the tools and wires the runner and pipeline. A nil progress writer disables the spinner.
func newEngine(ctx context.Context, cfg *config.Config, version string, sink ui.Sink, progress io.Writer) *engine {
	executor := execution.NewExecutor(cfg.ExtraPath, cfg.Timeout)
	tools := execution.NewLocator(executor).LocateTools(ctx, cfg.Rebar, cfg.Erl)
	runner := execution.NewRunner(cfg, executor, parser.NewEUnitParser(cfg.SentinelSuite), sink, tools)

	e := &engine{runner: runner}
	if progress != nil {
		e.spinner = ui.NewSpinner(progress)
		runner.SetObserver(e.spinner.Observe)
	}

	var st storage.Storage
	if !cfg.Flags.NoHistory {
		st = storage.NewJSONStorage(cfg)
	}
	e.pipeline = pipeline.New(version, discovery.NewResolver(), runner, session.New(), sink, st)
	return e
}

// close clears the spinner if a run was interrupted mid-way
func (e *engine) close() {
	if e.spinner != nil {
		e.spinner.Stop()
	}
}

// logTools reports the located tools on sink
func logTools(sink ui.Sink, tools execution.Tools) {
	sink.Log("rebar: %s", orNotFound(tools.Rebar))
	sink.Log("erl:   %s", orNotFound(tools.Erl))
}

func orNotFound(path string) string {
	if path == "" {
		return "not found"
	}
	return path
}
