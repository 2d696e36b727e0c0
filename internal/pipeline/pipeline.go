// Package pipeline implements the two editor commands: run the test under the cursor,
// and repeat the last test.
package pipeline

import (
	"context"
	"time"

	"erlt/internal/discovery"
	"erlt/internal/domain"
	"erlt/internal/session"
	"erlt/internal/storage"
	"erlt/internal/ui"
)

// TestRunner runs one resolved target
type TestRunner interface {
	CheckTools() error
	StartSingleTest(ctx context.Context, project domain.ProjectContext, target domain.TestTarget) *domain.Outcome
}

// Request describes the editor state for a fresh run
type Request struct {
	FilePath string // Backing file of the buffer; empty if the buffer was never saved
	Buffer   string // Buffer text
	Offset   int    // Cursor byte offset into Buffer
}

// Pipeline resolves targets, runs them and records the results
type Pipeline struct {
	version  string
	resolver *discovery.Resolver
	runner   TestRunner
	session  *session.Session
	sink     ui.Sink
	storage  storage.Storage
	now      func() time.Time
}

// New creates a Pipeline. A nil storage disables run history.
func New(version string, resolver *discovery.Resolver, runner TestRunner, sess *session.Session, sink ui.Sink, st storage.Storage) *Pipeline {
	return &Pipeline{
		version:  version,
		resolver: resolver,
		runner:   runner,
		session:  sess,
		sink:     sink,
		storage:  st,
		now:      time.Now,
	}
}

// RunFresh resolves the test under the cursor, stores it in the session and runs it
func (p *Pipeline) RunFresh(ctx context.Context, req Request) (*domain.Outcome, error) {
	release, err := p.session.Begin()
	if err != nil {
		return nil, err
	}
	defer release()

	p.sink.Log("Starting tests (erlt %s).", p.version)

	project, target, err := p.resolve(req)
	if err != nil {
		return nil, p.fail(err)
	}

	p.session.Store(project, target)
	return p.execute(ctx, project, target)
}

// Redo repeats the last stored target. With nothing stored it does nothing and returns a nil outcome.
func (p *Pipeline) Redo(ctx context.Context) (*domain.Outcome, error) {
	release, err := p.session.Begin()
	if err != nil {
		return nil, err
	}
	defer release()

	entry, ok := p.session.Last()
	if !ok {
		return nil, nil
	}

	p.sink.Log("Starting tests (erlt %s).", p.version)
	if err := p.runner.CheckTools(); err != nil {
		return nil, p.fail(err)
	}
	return p.execute(ctx, entry.Project, entry.Target)
}

func (p *Pipeline) resolve(req Request) (domain.ProjectContext, domain.TestTarget, error) {
	var project domain.ProjectContext

	moduleTestsName, ok := p.resolver.ModuleName(req.Buffer)
	if !ok {
		return project, domain.TestTarget{}, domain.NewError(domain.KindConfiguration,
			"Module declaration could not be found: add a -module/1 directive.")
	}

	moduleFilename, testsFilename, err := discovery.DeriveTargets(moduleTestsName)
	if err != nil {
		return project, domain.TestTarget{}, domain.WrapError(domain.KindConfiguration, err, "Invalid module name")
	}

	project, err = discovery.LocateRoot(req.FilePath, testsFilename)
	if err != nil {
		return project, domain.TestTarget{}, err
	}

	if err := p.runner.CheckTools(); err != nil {
		return project, domain.TestTarget{}, err
	}

	functionName, ok := p.resolver.TestFunction(req.Buffer, req.Offset)
	if !ok {
		return project, domain.TestTarget{}, domain.NewError(domain.KindConfiguration,
			"Cannot get test function name: cursor is not scoped to a test function.")
	}

	return project, domain.TestTarget{
		ModuleFilename:      moduleFilename,
		ModuleTestsFilename: testsFilename,
		FunctionName:        functionName,
	}, nil
}

func (p *Pipeline) execute(ctx context.Context, project domain.ProjectContext, target domain.TestTarget) (*domain.Outcome, error) {
	outcome := p.runner.StartSingleTest(ctx, project, target)

	if p.storage != nil {
		if err := p.storage.Append(project.RootDirectory, domain.NewRunRecord(project, outcome, p.now())); err != nil {
			p.sink.Log("Could not record run: %v", err)
		}
	}
	return outcome, outcome.Err
}

// fail reports err to the sink; the run stops here
func (p *Pipeline) fail(err error) error {
	p.sink.Error(err.Error())
	return err
}
