package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsKind(t *testing.T) {
	err := NewError(KindToolMissing, "Erlang binary (erl) cannot be found.")

	assert.True(t, errors.Is(err, ErrToolMissing))
	assert.False(t, errors.Is(err, ErrCompile))
	assert.Equal(t, "Erlang binary (erl) cannot be found.", err.Error())
}

func TestError_WrapsCause(t *testing.T) {
	err := WrapError(KindRuntime, context.DeadlineExceeded, "erl did not finish")
	wrapped := fmt.Errorf("run: %w", err)

	assert.True(t, errors.Is(wrapped, context.DeadlineExceeded))
	assert.True(t, errors.Is(wrapped, ErrRuntime))
	assert.Equal(t, KindRuntime, KindOf(wrapped))
	assert.Equal(t, "erl did not finish: context deadline exceeded", err.Error())
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: 0},
		{name: "plain error", err: errors.New("boom"), expected: 1},
		{name: "test failure", err: NewError(KindTestFailure, "failed"), expected: 1},
		{name: "configuration", err: NewError(KindConfiguration, "no module"), expected: 2},
		{name: "tool missing", err: NewError(KindToolMissing, "no rebar"), expected: 3},
		{name: "compile", err: NewError(KindCompile, "bad"), expected: 4},
		{name: "runtime", err: fmt.Errorf("x: %w", NewError(KindRuntime, "bad")), expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeOf(tt.err))
		})
	}
}

func TestTestTarget_TestsModule(t *testing.T) {
	target := TestTarget{ModuleFilename: "mymod.erl", ModuleTestsFilename: "mymod_tests.erl", FunctionName: "bar_test_/0"}
	assert.Equal(t, "mymod_tests", target.TestsModule())
}

func TestState_Terminal(t *testing.T) {
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateCompiling.Terminal())
	assert.False(t, StateRunning.Terminal())
	assert.True(t, StatePassed.Terminal())
	assert.True(t, StateMultiplePassed.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateAborted.Terminal())
	assert.Equal(t, "multiple_passed", StateMultiplePassed.String())
}
