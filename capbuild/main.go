package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"capbuild.dev/cmd/capbuild/internal/build"
)

func main() {
	root := &cobra.Command{
		Use:           "capbuild",
		Short:         "Build Ionic Capacitor apps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(build.Command())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
