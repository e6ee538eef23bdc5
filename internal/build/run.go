package build

import (
	"os"

	"github.com/sirupsen/logrus"

	"capbuild.dev/cmd/internal/params"
	"capbuild.dev/cmd/internal/shell"
)

// NewBuilder returns a Builder running the real tools in dir. Command
// failures are tagged with runID.
func NewBuilder(dir, runID string, log logrus.FieldLogger) *Builder {
	r := shell.New(log)
	r.Dir = dir
	r.RunID = runID
	return &Builder{
		Dir:      dir,
		Runner:   r,
		Detector: NewDetector(r, r.Windows),
		Info:     PlistEditor{},
		Env:      os.LookupEnv,
		Log:      log,
	}
}

// Build adds the platform if needed, builds it and returns the expected
// artifact paths. The first failing command aborts the build.
func (b *Builder) Build(s *params.Set) (Artifacts, error) {
	if err := b.EnsurePlatform(s); err != nil {
		return Artifacts{}, err
	}
	if err := b.Compile(s); err != nil {
		return Artifacts{}, err
	}
	a := RecordPaths(s, s.Bool("release"))
	b.Log.WithField("android", a.Android).WithField("ios", a.IOS).Info("build finished")
	return a, nil
}
