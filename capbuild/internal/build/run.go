package build

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	core "capbuild.dev/cmd/internal/build"
	"capbuild.dev/cmd/internal/config"
	"capbuild.dev/cmd/internal/params"
)

// Command returns the build subcommand.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [android|ios]",
		Short: "Build an Ionic Capacitor app",
		Long: `Build an Ionic Capacitor app for Android or iOS.

Options are read from command line flags, then the config file, then
their environment variables. The expected artifact paths are printed
as KEY=VALUE lines when the build succeeds.`,
		Args: cobra.MaximumNArgs(1),
	}
	a := CreateArgs(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return Run(cmd, a, args)
	}
	return cmd
}

func Run(cmd *cobra.Command, a *Args, args []string) error {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if a.Chdir() != "." {
		if err := os.Chdir(a.Chdir()); err != nil {
			return err
		}
	}

	set, err := loadParams(a, args)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	b := core.NewBuilder("", runID, log.WithField("run", runID))
	artifacts, err := b.Build(set)
	if err != nil {
		return err
	}

	if err := artifacts.Export(os.Setenv); err != nil {
		return err
	}
	for _, line := range artifacts.Env() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if a.envFile != "" {
		return appendEnv(a.envFile, artifacts.Env())
	}
	return nil
}

// loadParams merges the config file, the positional platform and the flags.
func loadParams(a *Args, args []string) (*params.Set, error) {
	var values map[string]any
	var err error
	if a.config != "" {
		values, err = config.Load(a.config)
	} else {
		values, err = config.LoadDefault(".")
	}
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		values["platform"] = args[0]
	}
	for k, v := range a.Overrides() {
		values[k] = v
	}
	return params.Load(values, os.LookupEnv)
}

func appendEnv(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := io.WriteString(f, line+"\n"); err != nil {
			return err
		}
	}
	return f.Close()
}
