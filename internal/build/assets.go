package build

import (
	"strings"

	"capbuild.dev/cmd/internal/shell"
)

const assetsPackage = "@capacitor/assets"

// Detector reports whether an executable is available on the host.
type Detector interface {
	HasExecutable(name string) bool
}

// NewDetector returns the lookup for the host shell.
func NewDetector(r shell.Runner, windows bool) Detector {
	if windows {
		return windowsDetector{r}
	}
	return posixDetector{r}
}

type posixDetector struct {
	runner shell.Runner
}

func (d posixDetector) HasExecutable(name string) bool {
	return query(d.runner, "which "+name) != ""
}

type windowsDetector struct {
	runner shell.Runner
}

func (d windowsDetector) HasExecutable(name string) bool {
	return query(d.runner, `powershell -Command "(gcm `+name+`).Path"`) != ""
}

// query returns the trimmed stdout of line. The exit status is ignored:
// lookups and package listings exit non-zero when nothing is found.
func query(r shell.Runner, line string) string {
	out, _ := r.Output(shell.Command{Line: line})
	return strings.TrimSpace(out)
}

// GenerateAssets runs capacitor-assets through bunx when bun is installed,
// otherwise through npx, provided the package is installed for that tool.
func (b *Builder) GenerateAssets() error {
	var line string
	if b.Detector.HasExecutable("bunx") {
		if strings.Contains(query(b.Runner, "bun pm ls"), assetsPackage) {
			line = "bunx capacitor-assets generate"
		}
	} else if strings.Contains(query(b.Runner, "npm list "+assetsPackage), assetsPackage) {
		line = "npx capacitor-assets generate"
	}
	if line == "" {
		b.Log.Debugf("%s not installed, skipping asset generation", assetsPackage)
		return nil
	}
	return b.Runner.Run(shell.Command{Line: line})
}
