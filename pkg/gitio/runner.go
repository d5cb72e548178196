package gitio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts executing git operations.
// Implementations may call the git binary or return canned output in tests.
type Runner interface {
	// Run executes git with the given arguments and returns stdout and
	// stderr separately. A non-zero exit status is returned as an error;
	// stderr is still populated so callers can log it.
	Run(ctx context.Context, args ...string) (stdout, stderr string, err error)
}

// ExecRunner executes the configured git binary
type ExecRunner struct {
	// GitBin is the git executable name or path; defaults to "git"
	GitBin string
	// WorkDir is the repository root; empty means the process working directory
	WorkDir string
}

// NewExecRunner creates a runner for the given git binary and repository root
func NewExecRunner(gitBin, workDir string) *ExecRunner {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = "git"
	}
	return &ExecRunner{GitBin: gitBin, WorkDir: workDir}
}

// Run executes the git command
func (e *ExecRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, e.GitBin, args...)
	if strings.TrimSpace(e.WorkDir) != "" {
		cmd.Dir = e.WorkDir
	}

	var out bytes.Buffer
	var errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		return out.String(), errb.String(), fmt.Errorf("git %s: %w", firstArg(args), err)
	}
	return out.String(), errb.String(), nil
}

// firstArg returns the git subcommand for error messages, never paths or refs
func firstArg(args []string) string {
	if len(args) == 0 {
		return "<no-args>"
	}
	return args[0]
}
