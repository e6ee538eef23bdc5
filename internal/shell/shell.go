// Package shell runs external build tools through the system shell.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/sirupsen/logrus"
)

const redacted = "********"

// Command is a single shell command line. Secrets are masked when the
// command is logged or reported in an error.
type Command struct {
	Line    string
	Secrets []string
}

// String returns the command line with every secret masked.
func (c Command) String() string {
	line := c.Line
	for _, s := range c.Secrets {
		if s == "" {
			continue
		}
		line = strings.ReplaceAll(line, shellescape.Quote(s), redacted)
		line = strings.ReplaceAll(line, s, redacted)
	}
	return line
}

// Runner executes commands. Run streams output and fails on a non-zero
// exit; Output captures stdout.
type Runner interface {
	Run(c Command) error
	Output(c Command) (string, error)
}

// CommandError reports an external command that could not run or exited non-zero.
type CommandError struct {
	Line     string
	ExitCode int
	Err      error
	// RunID identifies the build that ran the command, if set.
	RunID    string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", e.Line, e.Err)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("command %q exited with status %d", e.Line, e.ExitCode)
	}
	if e.RunID != "" {
		msg += " (run " + e.RunID + ")"
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exec runs commands with sh -c, or cmd /C when Windows is set.
type Exec struct {
	Dir     string
	RunID   string
	Stdout  io.Writer
	Stderr  io.Writer
	Windows bool
	Log     logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Exec {
	return &Exec{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Windows: IsWindows(os.Getenv),
		Log:     log,
	}
}

// IsWindows reports whether the host shell is a Windows one.
func IsWindows(getenv func(string) string) bool {
	return getenv("OS") == "Windows_NT"
}

func (e *Exec) Run(c Command) error {
	e.Log.Infof("$ %s", c)
	cmd := e.command(c.Line)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return e.commandError(c, err)
	}
	return nil
}

func (e *Exec) Output(c Command) (string, error) {
	e.Log.Debugf("$ %s", c)
	cmd := e.command(c.Line)
	out, err := cmd.Output()
	if err != nil {
		return string(out), e.commandError(c, err)
	}
	return string(out), nil
}

func (e *Exec) command(line string) *exec.Cmd {
	var cmd *exec.Cmd
	if e.Windows {
		cmd = exec.Command("cmd", "/C", line)
	} else {
		cmd = exec.Command("sh", "-c", line)
	}
	cmd.Dir = e.Dir
	return cmd
}

func (e *Exec) commandError(c Command, err error) error {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{Line: c.String(), ExitCode: code, Err: err, RunID: e.RunID}
}
