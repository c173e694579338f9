package safety

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

// Runner executes allowlisted commands with a bounded runtime.
type Runner struct {
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// NewRunner returns a Runner that inherits the process's stdio for Run.
// A timeout of 0 disables the runtime bound.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout, stdout: os.Stdout, stderr: os.Stderr}
}

// NewRunnerWithIO returns a Runner whose Run output goes to the given writers.
func NewRunnerWithIO(timeout time.Duration, stdout, stderr io.Writer) *Runner {
	return &Runner{timeout: timeout, stdout: stdout, stderr: stderr}
}

// Output runs the command and returns its captured stdout. On a non-zero
// exit the returned *exec.ExitError carries the captured stderr. The command
// must pass ValidateCommand first.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if err := ValidateCommand(name, args); err != nil {
		return "", err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Run runs the command with its output wired to the Runner's stdio.
// Commands that draw on the terminal (clear and friends) need this path;
// Output would swallow their control sequences.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	if err := ValidateCommand(name, args); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}

// withTimeout applies the Runner's timeout when the caller's context has no
// deadline of its own.
func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return context.WithCancel(ctx)
}
