package build

import (
	"strings"

	"github.com/alessio/shellescape"
	"github.com/sirupsen/logrus"

	"capbuild.dev/cmd/internal/params"
	"capbuild.dev/cmd/internal/shell"
)

const (
	Android = "android"
	IOS     = "ios"
)

// Builder drives the external tools of one Capacitor project.
type Builder struct {
	// Dir is the project directory; "" means the working directory.
	Dir      string
	Runner   shell.Runner
	Detector Detector
	Info     InfoEditor
	// Env resolves signing state left by earlier steps, such as SIGH_UUID.
	Env      params.LookupFunc
	Log      logrus.FieldLogger
}

// BuildPlan is the argument layout of one capacitor build invocation.
type BuildPlan struct {
	Platform     string
	Flags        []string
	PlatformArgs string
	Secrets      []string
}

// GenericFlags returns the ionic flags shared by both platforms.
func GenericFlags(s *params.Set) []string {
	var flags []string
	if s.Bool("release") {
		flags = append(flags, "--prod")
	} else {
		flags = append(flags, "--debug")
	}
	if s.Bool("device") {
		flags = append(flags, "--device")
	}
	if s.Bool("prod") {
		flags = append(flags, "--prod")
	}
	if s.Bool("browserify") {
		flags = append(flags, "--browserify")
	}
	if s.Bool("verbose") {
		flags = append(flags, "--verbose")
	}
	if cfg := s.String("capacitor_build_config_file"); cfg != "" {
		flags = append(flags, "--buildConfig="+shellescape.Quote(cfg))
	}
	return flags
}

// NormalizePackageType maps the adhoc and appstore aliases to the names
// Xcode export expects.
func NormalizePackageType(t string) string {
	switch t {
	case "adhoc":
		return "ad-hoc"
	case "appstore":
		return "app-store"
	}
	return t
}

// Plan applies the platform corrections to s and maps its arguments.
func (b *Builder) Plan(s *params.Set, m Metadata) BuildPlan {
	plan := BuildPlan{
		Platform: s.String("platform"),
		Flags:    GenericFlags(s),
		Secrets:  signingSecrets(s),
	}
	switch plan.Platform {
	case Android:
		if s.String("key_password") == "" {
			s.Set("key_password", s.Get("keystore_password"))
		}
		plan.PlatformArgs = MapArgs(s, AndroidArgs)
	case IOS:
		if s.String("provisioning_profile") == "" {
			s.Set("provisioning_profile", params.Str(b.provisioningProfile(s, m)))
		}
		s.Set("type", params.Str(NormalizePackageType(s.String("type"))))
		plan.PlatformArgs = MapArgs(s, IOSArgs)
	}
	return plan
}

// provisioningProfile returns the profile installed by a previous
// match or sigh run, if any.
func (b *Builder) provisioningProfile(s *params.Set, m Metadata) string {
	if b.Env == nil {
		return ""
	}
	if uuid, ok := b.Env("SIGH_UUID"); ok && uuid != "" {
		return uuid
	}
	appID := s.String("app_identifier")
	if appID == "" {
		appID = m.AppID
	}
	typ := strings.Replace(s.String("type"), "-", "", 1)
	uuid, _ := b.Env("sigh_" + appID + "_" + typ)
	return uuid
}

// Compile runs the capacitor build and the native build of the selected platform.
func (b *Builder) Compile(s *params.Set) error {
	var m Metadata
	if s.String("platform") == IOS {
		var err error
		if m, err = ReadMetadata(b.Dir); err != nil {
			return err
		}
	}
	plan := b.Plan(s, m)

	if plan.Platform == IOS {
		if version := s.Get("build_number").String(); version != "" {
			path, err := m.infoPlistPath(b.Dir)
			if err != nil {
				return err
			}
			b.Log.WithField("version", version).Infof("setting CFBundleVersion in %s", path)
			if err := b.Info.SetBundleVersion(path, version); err != nil {
				return err
			}
		}
	}

	if err := b.GenerateAssets(); err != nil {
		return err
	}

	switch plan.Platform {
	case IOS:
		if err := b.Runner.Run(capacitorBuild(plan, "--")); err != nil {
			return err
		}
		return b.Runner.Run(xcodeBuild(s))
	case Android:
		if err := b.Runner.Run(capacitorBuild(plan, "-- --")); err != nil {
			return err
		}
		return b.Runner.Run(gradleAssemble(s))
	}
	return nil
}

// capacitorBuild passes the platform arguments after sep, which is one
// separator for iOS and two for Android.
func capacitorBuild(plan BuildPlan, sep string) shell.Command {
	line := joinLine(
		"ionic capacitor build", plan.Platform, "--no-open --no-interactive",
		strings.Join(plan.Flags, " "),
		sep,
		plan.PlatformArgs,
	)
	return shell.Command{Line: line, Secrets: plan.Secrets}
}

// xcodeBuild compiles the debug configuration whatever the release flag.
func xcodeBuild(s *params.Set) shell.Command {
	return shell.Command{
		Line: "xcodebuild -configuration debug -workspace ios/*.xcworkspace -scheme " + shellescape.Quote(s.String("scheme")) + " build",
	}
}

func signingSecrets(s *params.Set) []string {
	var secrets []string
	for _, key := range []string{"keystore_password", "key_password"} {
		if v := s.String(key); v != "" {
			secrets = append(secrets, v)
		}
	}
	return secrets
}
