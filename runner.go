package allure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// TaskRunner holds the metadata for a specific command.
type TaskRunner struct {
	Executable string
	Arguments  []string

	cmd      *exec.Cmd
	quiet    bool
	allowerr bool
}

// Cmd builds a command runner for a specific Executable.
// Relative executables are resolved against the current directory, so they keep
// working when combined with [WithDir].
func Cmd(ctx context.Context, executable string, opts ...RunnerOpt) (*TaskRunner, error) {
	executable, err := resolve(executable)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, executable)

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	r := TaskRunner{
		Executable: executable,
		cmd:        cmd,
	}

	for _, opt := range opts {
		err := opt(&r)
		if err != nil {
			return nil, err
		}
	}

	cmd.Args = append([]string{executable}, r.Arguments...)

	return &r, nil
}

// Exec a command returning its error and pretty printing its timing.
// Output is streamed to the configured writers.
func (r *TaskRunner) Exec() error {
	var err error

	start := time.Now()
	defer func() {
		if r.quiet {
			return
		}
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, " ✘ %s\n\n", elapsed)
			return
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, " ✔ %s\n\n", elapsed)
	}()

	if !r.quiet {
		logstep(fmt.Sprint(r.Executable, " ", strings.Join(r.Arguments, " ")))
	}

	err = r.cmd.Run()

	if err != nil {
		var exiterr *exec.ExitError
		if r.allowerr && errors.As(err, &exiterr) {
			err = nil
			return nil
		}
		return fmt.Errorf("%s: %w", r.Executable, err)
	}

	return nil
}

// Capture runs the command to completion and returns everything it wrote.
// A non zero exit status is not an error, the streams are what the caller needs;
// only failing to start the process is reported.
func (r *TaskRunner) Capture() ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	r.cmd.Stdout = &stdout
	r.cmd.Stderr = &stderr

	if !r.quiet {
		logstep(fmt.Sprint(r.Executable, " ", strings.Join(r.Arguments, " ")))
	}

	err := r.cmd.Run()

	var exiterr *exec.ExitError
	if err != nil && !errors.As(err, &exiterr) {
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w", r.Executable, err)
	}

	return stdout.Bytes(), stderr.Bytes(), nil
}

// ExitCode returns the exit status of a finished command, or -1 if it didn't run.
func (r *TaskRunner) ExitCode() int {
	if r.cmd.ProcessState == nil {
		return -1
	}
	return r.cmd.ProcessState.ExitCode()
}

// Run is a helper function to avoid repetition while gracefully handling errors.
func Run(ctx context.Context, program string, opts ...RunnerOpt) error {
	rnr, err := Cmd(ctx, program, opts...)
	if err != nil {
		return err
	}

	return rnr.Exec()
}

// Capture is a helper function that builds the command and captures its output.
func Capture(ctx context.Context, program string, opts ...RunnerOpt) ([]byte, []byte, error) {
	rnr, err := Cmd(ctx, program, opts...)
	if err != nil {
		return nil, nil, err
	}

	return rnr.Capture()
}

func resolve(executable string) (string, error) {
	if filepath.IsAbs(executable) {
		return executable, nil
	}

	if !strings.ContainsRune(executable, filepath.Separator) && !strings.ContainsRune(executable, '/') {
		path, err := exec.LookPath(executable)
		if err != nil {
			// let exec report the missing binary when the command starts
			return executable, nil
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs, nil
		}
		return path, nil
	}

	abs, err := filepath.Abs(executable)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", executable, err)
	}
	return abs, nil
}

// fancy-ish log of a task step.
func logstep(text string) {
	fmt.Fprintln(
		os.Stderr,
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(text),
	)
}

// RunnerOpt allows customizing the behavior of the command runner.
type RunnerOpt func(r *TaskRunner) error

// WithEnv sets up environment variables for the command.
func WithEnv(vars ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Env = os.Environ()
		for _, vrb := range vars {
			items := strings.SplitN(vrb, "=", 2)
			if len(items) != 2 || items[0] == "" {
				return fmt.Errorf("invalid env format; %s doesn't match NAME=value expectation", vrb)
			}
			r.cmd.Env = append(r.cmd.Env, vrb)
		}
		return nil
	}
}

// WithArgs command arguments.
func WithArgs(args ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.Arguments = args
		return nil
	}
}

// WithDir sets the directory where the command should be run inside.
func WithDir(dir string) RunnerOpt {
	return func(r *TaskRunner) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		r.cmd.Dir = abs
		return nil
	}
}

// WithoutNoise silences all output for the command; useful when handling that on the caller side.
func WithoutNoise() RunnerOpt {
	return func(r *TaskRunner) error {
		r.quiet = true
		r.cmd.Stdout = nil
		r.cmd.Stderr = nil

		return nil
	}
}

// WithStdOut set up stdout writer.
func WithStdOut(w io.Writer) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stdout = w
		return nil
	}
}

// WithStdIn set up stdin reader.
func WithStdIn(read io.Reader) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stdin = read
		return nil
	}
}

// WithAllowErrors allow errors in the command.
func WithAllowErrors() RunnerOpt {
	return func(r *TaskRunner) error {
		r.allowerr = true
		return nil
	}
}
