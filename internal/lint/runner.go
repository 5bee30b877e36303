package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/model"
)

// ErrNotInstalled is returned when the checker executable cannot be found
// on PATH.
var ErrNotInstalled = errors.New("l10n-lint not found: install it with your package manager or pip")

// execFunc runs a command and returns its output and exit code. It exists
// so tests can fake the external checker without a real binary.
type execFunc func(ctx context.Context, name string, args, env []string) (stdout, stderr string, exitCode int, err error)

// Runner invokes the external PO checker.
//
// Design decision: a struct holding the command name and an exec hook
// rather than free functions. The hook keeps tests hermetic, and commands
// share one Runner so the availability check and the runs agree on which
// executable they are talking about.
type Runner struct {
	// command is the checker executable name or path.
	command string

	// run executes the command; replaced in tests.
	run execFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithCommand sets the checker executable.
func WithCommand(command string) Option {
	return func(r *Runner) {
		r.command = command
	}
}

// withExec replaces the exec hook. Test-only.
func withExec(fn execFunc) Option {
	return func(r *Runner) {
		r.run = fn
	}
}

// NewRunner creates a Runner with the default checker command.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		command: config.DefaultLintCommand,
		run:     runCommand,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether the checker executable works.
func (r *Runner) Available(ctx context.Context) bool {
	_, _, code, err := r.run(ctx, r.command, []string{"--version"}, nil)
	return err == nil && code == 0
}

// DirResult is the outcome of a whole-directory run.
type DirResult struct {
	// Stdout and Stderr are the checker's raw output.
	Stdout string
	Stderr string

	// ExitCode is the checker's exit code, passed through unchanged.
	ExitCode int
}

// RunDir lints every PO file in dir in one checker invocation.
// The language code is exported through LANG/LC_ALL so the checker applies
// language-specific rules.
func (r *Runner) RunDir(ctx context.Context, dir, language string, strict bool) (*DirResult, error) {
	args := make([]string, 0, 3)
	if strict {
		args = append(args, "--strict")
	}
	args = append(args, dir)

	stdout, stderr, code, err := r.run(ctx, r.command, args, localeEnv(language))
	if err != nil {
		return nil, err
	}

	return &DirResult{Stdout: stdout, Stderr: stderr, ExitCode: code}, nil
}

// RunFiles lints each file separately with JSON output and returns results
// keyed by filename. Files whose output does not parse are skipped, which
// matches treating checker hiccups as missing data rather than failures.
func (r *Runner) RunFiles(ctx context.Context, files []string, language string) (map[string]model.FileResult, error) {
	results := make(map[string]model.FileResult, len(files))
	env := localeEnv(language)

	for _, path := range files {
		stdout, _, _, err := r.run(ctx, r.command, []string{"--format", "json", path}, env)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace([]byte(stdout))) == 0 {
			continue
		}

		var result model.FileResult
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			continue
		}
		name := filepath.Base(path)
		result.File = name
		results[name] = result
	}

	return results, nil
}

// localeEnv builds the environment additions carrying the language code to
// the checker.
func localeEnv(language string) []string {
	if language == "" {
		return nil
	}
	locale := language + ".UTF-8"
	return []string{"LANG=" + locale, "LC_ALL=" + locale}
}

// runCommand is the real exec hook.
func runCommand(ctx context.Context, name string, args, env []string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is a result, not a failure.
			return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", 0, fmt.Errorf("%s: %w", name, ErrNotInstalled)
		}
		return "", "", 0, fmt.Errorf("run %s: %w", name, err)
	}

	return stdout.String(), stderr.String(), 0, nil
}
