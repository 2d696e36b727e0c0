package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erlt/internal/config"
	"erlt/internal/discovery"
	"erlt/internal/domain"
	"erlt/internal/session"
	"erlt/internal/storage"
	"erlt/internal/ui"
)

const buffer = `-module(mymod_tests).
-include_lib("eunit/include/eunit.hrl").

bar_test_() -> ?_assert(true).

% baz_test_() -> ?_assert(false).
`

type runCall struct {
	project domain.ProjectContext
	target  domain.TestTarget
}

type fakeTestRunner struct {
	toolsErr error
	outcome  domain.Outcome
	calls    []runCall
}

func (f *fakeTestRunner) CheckTools() error { return f.toolsErr }

func (f *fakeTestRunner) StartSingleTest(_ context.Context, project domain.ProjectContext, target domain.TestTarget) *domain.Outcome {
	f.calls = append(f.calls, runCall{project: project, target: target})
	o := f.outcome
	o.Target = target
	return &o
}

func newPipeline(runner *fakeTestRunner, st storage.Storage) (*Pipeline, *session.Session, *ui.Buffer) {
	sess := session.New()
	sink := ui.NewBuffer()
	return New("test", discovery.NewResolver(), runner, sess, sink, st), sess, sink
}

func offsetOf(s string) int { return strings.Index(buffer, s) }

func TestPipeline_RunFresh(t *testing.T) {
	runner := &fakeTestRunner{outcome: domain.Outcome{State: domain.StatePassed, Count: 1}}
	p, sess, sink := newPipeline(runner, nil)

	outcome, err := p.RunFresh(context.Background(), Request{
		FilePath: "/work/app/test/mymod_tests.erl",
		Buffer:   buffer,
		Offset:   offsetOf("?_assert(true)"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatePassed, outcome.State)

	expected := domain.TestTarget{ModuleFilename: "mymod.erl", ModuleTestsFilename: "mymod_tests.erl", FunctionName: "bar_test_/0"}
	require.Len(t, runner.calls, 1)
	assert.Equal(t, expected, runner.calls[0].target)
	assert.Equal(t, filepath.FromSlash("/work/app"), runner.calls[0].project.RootDirectory)

	entry, ok := sess.Last()
	require.True(t, ok)
	assert.Equal(t, expected, entry.Target)
	assert.Contains(t, sink.String(), "Starting tests (erlt test).")
}

func TestPipeline_RunFresh_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		toolsErr error
		kind     domain.Kind
		message  string
	}{
		{
			name:    "missing module declaration",
			req:     Request{FilePath: "/w/a/test/x.erl", Buffer: "bar_test_() -> ok.\n"},
			kind:    domain.KindConfiguration,
			message: "Module declaration could not be found",
		},
		{
			name:    "module name starting with _tests",
			req:     Request{FilePath: "/w/a/test/x.erl", Buffer: "-module(_tests).\nbar_test_() -> ok.\n"},
			kind:    domain.KindConfiguration,
			message: "Invalid module name",
		},
		{
			name:    "unsaved buffer",
			req:     Request{Buffer: buffer, Offset: offsetOf("bar_test_")},
			kind:    domain.KindConfiguration,
			message: "has not been saved on disk",
		},
		{
			name:     "missing tool",
			req:      Request{FilePath: "/w/a/test/mymod_tests.erl", Buffer: buffer, Offset: offsetOf("bar_test_")},
			toolsErr: domain.NewError(domain.KindToolMissing, "Rebar cannot be found"),
			kind:     domain.KindToolMissing,
			message:  "Rebar cannot be found",
		},
		{
			name:    "cursor outside a test",
			req:     Request{FilePath: "/w/a/test/mymod_tests.erl", Buffer: buffer, Offset: 0},
			kind:    domain.KindConfiguration,
			message: "cursor is not scoped to a test function",
		},
		{
			name:    "cursor in a commented test",
			req:     Request{FilePath: "/w/a/test/mymod_tests.erl", Buffer: buffer, Offset: offsetOf("baz_test_")},
			kind:    domain.KindConfiguration,
			message: "cursor is not scoped to a test function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeTestRunner{toolsErr: tt.toolsErr}
			p, sess, sink := newPipeline(runner, nil)

			outcome, err := p.RunFresh(context.Background(), tt.req)
			assert.Nil(t, outcome)
			assert.Equal(t, tt.kind, domain.KindOf(err))
			assert.Empty(t, runner.calls)

			_, stored := sess.Last()
			assert.False(t, stored, "failed resolutions are never stored")

			out := sink.String()
			assert.Contains(t, out, "Error => ")
			assert.Contains(t, out, tt.message)
			assert.Contains(t, out, ui.AbortedMarker)
		})
	}
}

func TestPipeline_FailedResolutionKeepsPreviousTarget(t *testing.T) {
	runner := &fakeTestRunner{outcome: domain.Outcome{State: domain.StatePassed}}
	p, sess, _ := newPipeline(runner, nil)

	_, err := p.RunFresh(context.Background(), Request{FilePath: "/w/a/test/mymod_tests.erl", Buffer: buffer, Offset: offsetOf("bar_test_")})
	require.NoError(t, err)

	_, err = p.RunFresh(context.Background(), Request{FilePath: "/w/a/test/mymod_tests.erl", Buffer: buffer, Offset: 0})
	require.Error(t, err)

	entry, ok := sess.Last()
	require.True(t, ok)
	assert.Equal(t, "bar_test_/0", entry.Target.FunctionName)
}

func TestPipeline_Redo(t *testing.T) {
	t.Run("no stored target is a no-op", func(t *testing.T) {
		runner := &fakeTestRunner{}
		p, _, sink := newPipeline(runner, nil)

		outcome, err := p.Redo(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, outcome)
		assert.Empty(t, runner.calls)
		assert.Empty(t, sink.String())
	})

	t.Run("repeats the stored target", func(t *testing.T) {
		runner := &fakeTestRunner{outcome: domain.Outcome{State: domain.StateFailed, Count: 1, Err: domain.NewError(domain.KindTestFailure, "1 TEST(S) FAILED.")}}
		p, sess, _ := newPipeline(runner, nil)
		project := domain.ProjectContext{RootDirectory: "/work/app"}
		target := domain.TestTarget{ModuleFilename: "m.erl", ModuleTestsFilename: "m_tests.erl", FunctionName: "x_test_/0"}
		sess.Store(project, target)

		outcome, err := p.Redo(context.Background())
		assert.True(t, errors.Is(err, domain.ErrTestFailure))
		require.NotNil(t, outcome)
		assert.Equal(t, domain.StateFailed, outcome.State)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, runCall{project: project, target: target}, runner.calls[0])
	})

	t.Run("missing tool aborts before running", func(t *testing.T) {
		runner := &fakeTestRunner{toolsErr: domain.NewError(domain.KindToolMissing, "Erlang binary (erl) cannot be found.")}
		p, sess, sink := newPipeline(runner, nil)
		sess.Store(domain.ProjectContext{RootDirectory: "/w"}, domain.TestTarget{FunctionName: "x_test_/0"})

		_, err := p.Redo(context.Background())
		assert.True(t, errors.Is(err, domain.ErrToolMissing))
		assert.Empty(t, runner.calls)
		assert.Contains(t, sink.String(), "Erlang binary (erl) cannot be found.")
	})
}

func TestPipeline_Busy(t *testing.T) {
	runner := &fakeTestRunner{}
	p, sess, _ := newPipeline(runner, nil)
	sess.Store(domain.ProjectContext{RootDirectory: "/w"}, domain.TestTarget{FunctionName: "x_test_/0"})

	release, err := sess.Begin()
	require.NoError(t, err)
	defer release()

	_, err = p.Redo(context.Background())
	assert.ErrorIs(t, err, session.ErrBusy)
	_, err = p.RunFresh(context.Background(), Request{})
	assert.ErrorIs(t, err, session.ErrBusy)
	assert.Empty(t, runner.calls)
}

func TestPipeline_RecordsHistory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "test", "mymod_tests.erl")
	st := storage.NewJSONStorage(config.New())
	runner := &fakeTestRunner{outcome: domain.Outcome{State: domain.StateMultiplePassed, Count: 3}}
	p, _, _ := newPipeline(runner, st)

	_, err := p.RunFresh(context.Background(), Request{FilePath: file, Buffer: buffer, Offset: offsetOf("bar_test_")})
	require.NoError(t, err)
	_, err = p.Redo(context.Background())
	require.NoError(t, err)

	runs, err := st.Load(root)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "multiple_passed", runs[0].State)
	assert.Equal(t, 3, runs[0].Count)
	assert.Equal(t, root, runs[0].Root)
	assert.Equal(t, "bar_test_/0", runs[1].Target.FunctionName)
}
