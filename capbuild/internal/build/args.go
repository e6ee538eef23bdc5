package build

import (
	"strings"

	"github.com/spf13/pflag"

	"capbuild.dev/cmd/internal/params"
)

type Args struct {
	chdir    string
	config   string
	envFile  string
	logLevel string

	flags *pflag.FlagSet
}

// CreateArgs registers the command flags, one per build option.
func CreateArgs(f *pflag.FlagSet) *Args {
	a := &Args{flags: f}
	f.StringVarP(&a.chdir, "chdir", "C", ".", "change working directory before building")
	f.StringVar(&a.config, "config", "", "config file (default capbuild.yaml, capbuild.yml or capbuild.toml)")
	f.StringVar(&a.envFile, "env-file", "", "append the artifact paths as KEY=VALUE lines to this file")
	f.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	for _, o := range params.Schema {
		usage := o.Description
		if len(o.Env) > 0 {
			usage += " [$" + o.Env[0] + "]"
		}
		name := FlagName(o.Name)
		switch o.Kind {
		case params.KindBool:
			f.Bool(name, o.Default.AsBool(), usage)
		case params.KindList:
			f.StringArray(name, nil, usage)
		default:
			f.String(name, o.Default.AsString(), usage)
		}
	}
	return a
}

// FlagName is the command line spelling of an option name.
func FlagName(option string) string {
	return strings.ReplaceAll(option, "_", "-")
}

func (a *Args) Chdir() string {
	return a.chdir
}

// Overrides returns the options set explicitly on the command line.
func (a *Args) Overrides() map[string]any {
	values := map[string]any{}
	for _, o := range params.Schema {
		name := FlagName(o.Name)
		if !a.flags.Changed(name) {
			continue
		}
		var v any
		var err error
		switch o.Kind {
		case params.KindBool:
			v, err = a.flags.GetBool(name)
		case params.KindList:
			v, err = a.flags.GetStringArray(name)
		default:
			v, err = a.flags.GetString(name)
		}
		if err == nil {
			values[o.Name] = v
		}
	}
	return values
}
