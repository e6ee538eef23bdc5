package build

import (
	"os"
	"path/filepath"

	"capbuild.dev/cmd/internal/params"
	"capbuild.dev/cmd/internal/shell"
)

// EnsurePlatform adds the native project of the selected platform when its
// directory does not exist yet.
func (b *Builder) EnsurePlatform(s *params.Set) error {
	platform := s.String("platform")
	if platform == "" {
		return nil
	}
	if st, err := os.Stat(filepath.Join(b.Dir, platform)); err == nil && st.IsDir() {
		return nil
	}

	line := joinLine("ionic capacitor platform add", platform, "--no-interactive")
	if s.Bool("capacitor_no_fetch") {
		line += " --nofetch"
	}
	if s.Bool("capacitor_no_resources") {
		line += " --no-resources"
	}
	b.Log.WithField("platform", platform).Info("adding platform")
	return b.Runner.Run(shell.Command{Line: line})
}
