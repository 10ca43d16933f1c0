package allure

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// Launcher runs the steps needed to invoke the report tool, typically provisioning
// followed by the invocation itself. It can be customized with pre- and post-
// execution hook functions.
type Launcher struct {
	PreExecHook  Task
	PostExecHook Task
}

// New constructs a launcher.
func New(opts ...Option) *Launcher {
	l := Launcher{
		PreExecHook:  func(_ context.Context) error { return nil },
		PostExecHook: func(_ context.Context) error { return nil },
	}

	for _, opt := range opts {
		opt(&l)
	}

	return &l
}

// Execute a list of tasks inside the launcher.
// Tasks run sequentially and the first failure stops the execution; that error is
// returned as is so callers can inspect it. The summary with timing info goes to
// stderr.
func (l *Launcher) Execute(ctx context.Context, tasks ...Task) error {
	start := time.Now()

	if err := l.PreExecHook(ctx); err != nil {
		return fmt.Errorf("failed to run pre exec hook: %w", err)
	}

	for i := range tasks {
		task := tasks[i]
		if err := task(ctx); err != nil {
			elapsed := time.Since(start).Round(time.Millisecond)
			color.New(color.FgRed).Fprintf(os.Stderr, " ✘ failed after %s\n", elapsed)
			color.New(color.FgRed).Fprintf(os.Stderr, "   • %s\n\n", err.Error())
			return err
		}
	}

	if err := l.PostExecHook(ctx); err != nil {
		return fmt.Errorf("failed to run post exec hook: %w", err)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	color.New(color.FgGreen).Fprintf(os.Stderr, " ✔ done after %s\n", elapsed)
	return nil
}

// Task defines the basic function that the launcher executes.
// Additional configuration can be done by using closures which return Tasks.
type Task func(ctx context.Context) error

type Option func(l *Launcher)

// WithPreExecFunc allows specifying a task that will be run every execution, before the
// specific execution tasks are run.
func WithPreExecFunc(hook Task) Option {
	return func(l *Launcher) {
		l.PreExecHook = hook
	}
}

// WithPostExecFunc allows specifying a task that will be run every execution, after all
// the specific execution tasks succeeded.
func WithPostExecFunc(hook Task) Option {
	return func(l *Launcher) {
		l.PostExecHook = hook
	}
}
