package execution

import (
	"context"
	"fmt"
	"time"

	"erlt/internal/config"
	"erlt/internal/domain"
	"erlt/internal/parser"
	"erlt/internal/ui"
)

// Runner compiles a project with rebar and runs a single EUnit generator with erl
type Runner struct {
	config   *config.Config
	executor CommandRunner
	parser   parser.Parser
	sink     ui.Sink
	tools    Tools
	observer func(domain.State)
}

// NewRunner creates a Runner with already located tools
func NewRunner(cfg *config.Config, executor CommandRunner, p parser.Parser, sink ui.Sink, tools Tools) *Runner {
	return &Runner{
		config:   cfg,
		executor: executor,
		parser:   p,
		sink:     sink,
		tools:    tools,
	}
}

// SetObserver registers a callback receiving every state transition
func (r *Runner) SetObserver(fn func(domain.State)) {
	r.observer = fn
}

// Tools returns the tool paths the runner was built with
func (r *Runner) Tools() Tools {
	return r.tools
}

// CheckTools fails with a ToolMissing error naming the first tool that was not found
func (r *Runner) CheckTools() error {
	if r.tools.Rebar == "" {
		return domain.NewError(domain.KindToolMissing,
			"Rebar cannot be found, please download and install from <https://github.com/basho/rebar>.")
	}
	if r.tools.Erl == "" {
		return domain.NewError(domain.KindToolMissing,
			"Erlang binary (erl) cannot be found. Install Erlang/OTP or point --erl at it.")
	}
	return nil
}

// StartSingleTest compiles everything and runs target in the project's root.
// The returned outcome always carries a terminal state; Err is set unless the test passed.
func (r *Runner) StartSingleTest(ctx context.Context, project domain.ProjectContext, target domain.TestTarget) *domain.Outcome {
	start := time.Now()
	r.sink.Log("Running test %q for target module %q.", target.FunctionName, target.ModuleFilename)

	outcome := r.run(ctx, project, target)
	outcome.Target = target
	outcome.Duration = time.Since(start)
	r.transition(outcome.State)
	r.report(outcome)
	return outcome
}

func (r *Runner) run(ctx context.Context, project domain.ProjectContext, target domain.TestTarget) *domain.Outcome {
	r.transition(domain.StateCompiling)
	if outcome := r.compile(ctx, project); outcome != nil {
		return outcome
	}

	r.transition(domain.StateRunning)
	return r.runTest(ctx, project, target)
}

// compile returns nil when rebar reached the sentinel suite, an aborted outcome otherwise
func (r *Runner) compile(ctx context.Context, project domain.ProjectContext) *domain.Outcome {
	// A suite that does not exist makes rebar compile sources and tests, then stop
	commandLine := fmt.Sprintf("%s eunit suite=%s", shellQuote(r.tools.Rebar), r.config.SentinelSuite)
	r.sink.Log("%s", commandLine)

	result, err := r.executor.Run(ctx, commandLine, project.RootDirectory)
	if err != nil {
		return aborted(result, domain.WrapError(domain.KindCompile, err, "Could not run rebar"))
	}
	if r.parser.CompileSucceeded(result) {
		return nil
	}
	return aborted(result, domain.NewError(domain.KindCompile, "Could not compile source or test modules."))
}

func (r *Runner) runTest(ctx context.Context, project domain.ProjectContext, target domain.TestTarget) *domain.Outcome {
	commandLine := fmt.Sprintf(`%s -noshell -pa %s -eval "eunit:test({generator, fun %s:%s})" -s init stop`,
		shellQuote(r.tools.Erl), shellQuote(r.config.EunitDir), target.TestsModule(), target.FunctionName)

	result, err := r.executor.Run(ctx, commandLine, project.RootDirectory)
	if err != nil {
		return aborted(result, domain.WrapError(domain.KindRuntime, err, "Could not run erl"))
	}

	c := r.parser.Classify(result)
	outcome := &domain.Outcome{State: c.State, Count: c.Count}
	switch c.State {
	case domain.StateAborted:
		outcome.Output = result.Combined()
		outcome.Err = domain.NewError(domain.KindRuntime, "Undefined error while running tests.")
	case domain.StateFailed:
		outcome.Output = result.Stdout
		outcome.Err = domain.NewError(domain.KindTestFailure, "%s", failedText(c.Count))
	}
	return outcome
}

func aborted(result domain.ExecutionResult, err error) *domain.Outcome {
	return &domain.Outcome{
		State:  domain.StateAborted,
		Count:  domain.UnknownCount,
		Output: result.Combined(),
		Err:    err,
	}
}

func (r *Runner) report(o *domain.Outcome) {
	switch o.State {
	case domain.StatePassed:
		r.sink.Summary(true, "TEST PASSED.")
	case domain.StateMultiplePassed:
		r.sink.Summary(true, "%d TESTS PASSED.", o.Count)
	case domain.StateFailed:
		r.sink.Raw(o.Output)
		r.sink.Summary(false, "%s", failedText(o.Count))
	case domain.StateAborted:
		if o.Output != "" {
			r.sink.Raw(o.Output + "\n")
		}
		r.sink.Error(o.Err.Error())
	}
}

func failedText(count int) string {
	if count == domain.UnknownCount {
		return "TEST(S) FAILED."
	}
	return fmt.Sprintf("%d TEST(S) FAILED.", count)
}

func (r *Runner) transition(state domain.State) {
	if r.observer != nil {
		r.observer(state)
	}
}
