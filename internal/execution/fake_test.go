package execution

import (
	"context"
	"strings"

	"erlt/internal/domain"
)

type call struct {
	commandLine string
	dir         string
}

type reply struct {
	result domain.ExecutionResult
	err    error
}

// fakeRunner answers commands by prefix and records every call
type fakeRunner struct {
	replies map[string]reply
	calls   []call
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{replies: make(map[string]reply)}
}

func (f *fakeRunner) on(prefix string, result domain.ExecutionResult, err error) *fakeRunner {
	f.replies[prefix] = reply{result: result, err: err}
	return f
}

func (f *fakeRunner) Run(_ context.Context, commandLine, dir string) (domain.ExecutionResult, error) {
	f.calls = append(f.calls, call{commandLine: commandLine, dir: dir})
	for prefix, r := range f.replies {
		if strings.HasPrefix(commandLine, prefix) {
			return r.result, r.err
		}
	}
	return domain.ExecutionResult{ExitCode: 127}, nil
}
