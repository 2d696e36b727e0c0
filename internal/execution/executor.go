package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"erlt/internal/domain"
)

// waitDelay bounds how long Wait lingers on inherited pipes after the shell is killed
const waitDelay = 2 * time.Second

// CommandRunner runs a shell command line in a working directory
type CommandRunner interface {
	Run(ctx context.Context, commandLine, dir string) (domain.ExecutionResult, error)
}

// Executor runs command lines through sh with an augmented PATH
type Executor struct {
	extraPath string
	timeout   time.Duration
}

// NewExecutor creates an Executor. extraPath is appended to PATH; a zero timeout waits forever.
func NewExecutor(extraPath string, timeout time.Duration) *Executor {
	return &Executor{extraPath: extraPath, timeout: timeout}
}

// Run executes commandLine and blocks until it exits. A nonzero exit status is reported in the
// result, not as an error; errors mean the command could not be started or did not finish in time.
func (e *Executor) Run(ctx context.Context, commandLine, dir string) (domain.ExecutionResult, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine)
	cmd.Dir = dir
	cmd.Env = e.environ()
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := domain.ExecutionResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s: %w", commandLine, ctxErr)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return result, fmt.Errorf("%s: %w", commandLine, err)
	}
	return result, nil
}

// environ returns the current environment with extraPath appended to PATH
func (e *Executor) environ() []string {
	env := os.Environ()
	if e.extraPath == "" {
		return env
	}
	for i, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			env[i] = kv + string(os.PathListSeparator) + e.extraPath
			return env
		}
	}
	return append(env, "PATH="+e.extraPath)
}
