// Package shelltest provides a Runner that records commands instead of running them.
package shelltest

import (
	"strings"

	"capbuild.dev/cmd/internal/shell"
)

type Recorder struct {
	// Ran holds the commands passed to Run, in order.
	Ran []shell.Command
	// Queried holds the commands passed to Output, in order.
	Queried []shell.Command
	// Outputs maps an Output command line to its stdout.
	Outputs map[string]string
	// Failures maps a command line prefix to the error Run returns for it.
	Failures map[string]error
}

func New() *Recorder {
	return &Recorder{
		Outputs:  map[string]string{},
		Failures: map[string]error{},
	}
}

func (r *Recorder) Run(c shell.Command) error {
	r.Ran = append(r.Ran, c)
	for prefix, err := range r.Failures {
		if strings.HasPrefix(c.Line, prefix) {
			return err
		}
	}
	return nil
}

func (r *Recorder) Output(c shell.Command) (string, error) {
	r.Queried = append(r.Queried, c)
	return r.Outputs[c.Line], nil
}

// Lines returns the lines of every command passed to Run.
func (r *Recorder) Lines() []string {
	lines := make([]string, 0, len(r.Ran))
	for _, c := range r.Ran {
		lines = append(lines, c.Line)
	}
	return lines
}
