package build

import (
	"fmt"

	"capbuild.dev/cmd/internal/params"
)

const (
	AndroidPathEnv = "CAPACITOR_ANDROID_RELEASE_BUILD_PATH"
	IOSPathEnv     = "CAPACITOR_IOS_RELEASE_BUILD_PATH"

	iosArtifact = "./ios/build/device/app.ipa"
)

// Artifacts are the expected build outputs, relative to the project directory.
type Artifacts struct {
	Android string
	IOS     string
}

// RecordPaths computes where the build leaves its artifacts.
func RecordPaths(s *params.Set, isRelease bool) Artifacts {
	buildType := "debug"
	if isRelease {
		buildType = "release"
	}
	packageType := s.String("android_package_type")
	if packageType == "" {
		packageType = "apk"
	}
	ext := ".apk"
	if packageType == "bundle" {
		ext = ".aab"
	}
	signed := ""
	if s.String("keystore_path") == "" {
		signed = "-unsigned"
	}

	return Artifacts{
		Android: fmt.Sprintf("./android/app/build/outputs/%s/%s/app-%s%s%s", packageType, buildType, buildType, signed, ext),
		IOS:     iosArtifact,
	}
}

// Export publishes the paths with setenv, overwriting previous values.
func (a Artifacts) Export(setenv func(key, value string) error) error {
	if err := setenv(AndroidPathEnv, a.Android); err != nil {
		return err
	}
	return setenv(IOSPathEnv, a.IOS)
}

// Env returns the paths as KEY=VALUE lines.
func (a Artifacts) Env() []string {
	return []string{
		AndroidPathEnv + "=" + a.Android,
		IOSPathEnv + "=" + a.IOS,
	}
}
