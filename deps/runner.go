package deps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external tool and returns its combined output.
// Implementations return *ExitError when the process ran and failed, and
// *StartError when it could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError is a process that started but exited unsuccessfully.
type ExitError struct {
	Name   string
	Code   int
	Output []byte
	Err    error
}

func (e *ExitError) Error() string {
	if line := LastLine(e.Output); line != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Name, e.Code, line)
	}
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// StartError is a process that could not be launched (missing binary,
// permissions, cancelled context before start).
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Name, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// IsExitError reports whether err came from a process that ran and failed.
func IsExitError(err error) bool {
	var e *ExitError
	return errors.As(err, &e)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return out.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out.Bytes(), &ExitError{Name: name, Code: exitErr.ExitCode(), Output: out.Bytes(), Err: err}
	}
	return out.Bytes(), &StartError{Name: name, Err: err}
}

// LastLine returns the last non-empty line of tool output, which for ffmpeg
// and ffprobe carries the actual failure reason.
func LastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
