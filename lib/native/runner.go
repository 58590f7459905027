package native

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// A ToolError is returned when the converter exits unsuccessfully.
type ToolError struct {
	Path     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Path)
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " with exit status %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// A Runner runs an external program to completion.
type Runner interface {
	Run(path string, args ...string) error
}

// ExecRunner runs programs as child processes. The process cannot be
// interrupted once started.
type ExecRunner struct{}

// Run runs the program and waits for it to exit. A non-zero exit status or a
// failure to start is returned as a *ToolError carrying the captured stderr.
func (ExecRunner) Run(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	hideWindow(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	te := &ToolError{
		Path:   path,
		Args:   args,
		Stderr: stderr.String(),
		Err:    err,
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		te.ExitCode = ee.ExitCode()
	}
	if te.Stderr == "" {
		// Some converters report errors on stdout.
		te.Stderr = stdout.String()
	}
	return te
}
