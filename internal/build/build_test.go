package build

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capbuild.dev/cmd/internal/params"
	"capbuild.dev/cmd/internal/shell"
	"capbuild.dev/cmd/internal/shell/shelltest"
)

type fakeDetector map[string]bool

func (d fakeDetector) HasExecutable(name string) bool {
	return d[name]
}

type fakeInfo struct {
	path, version string
	err           error
}

func (f *fakeInfo) SetBundleVersion(path, version string) error {
	f.path, f.version = path, version
	return f.err
}

func newTestBuilder(t *testing.T, env map[string]string) (*Builder, *shelltest.Recorder) {
	log, _ := test.NewNullLogger()
	r := shelltest.New()
	return &Builder{
		Dir:      t.TempDir(),
		Runner:   r,
		Detector: fakeDetector{},
		Info:     &fakeInfo{},
		Env: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		Log: log,
	}, r
}

func load(t *testing.T, overrides map[string]any) *params.Set {
	s, err := params.Load(overrides, nil)
	require.NoError(t, err)
	return s
}

func TestGenericFlags(t *testing.T) {
	s := load(t, nil)
	assert.Equal(t, []string{"--prod", "--device"}, GenericFlags(s))

	s = load(t, map[string]any{
		"release":                     false,
		"device":                      false,
		"prod":                        true,
		"browserify":                  true,
		"verbose":                     true,
		"capacitor_build_config_file": "build config.json",
	})
	assert.Equal(t, []string{"--debug", "--prod", "--browserify", "--verbose", "--buildConfig='build config.json'"}, GenericFlags(s))

	s = load(t, map[string]any{"prod": true})
	assert.Equal(t, []string{"--prod", "--device", "--prod"}, GenericFlags(s))
}

func TestNormalizePackageType(t *testing.T) {
	for in, want := range map[string]string{
		"adhoc":       "ad-hoc",
		"appstore":    "app-store",
		"ad-hoc":      "ad-hoc",
		"app-store":   "app-store",
		"development": "development",
		"enterprise":  "enterprise",
	} {
		got := NormalizePackageType(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, NormalizePackageType(got), in)
	}
}

func TestPlanAndroidKeyPassword(t *testing.T) {
	b, _ := newTestBuilder(t, nil)
	s := load(t, map[string]any{"platform": "android", "keystore_password": "storepw"})

	plan := b.Plan(s, Metadata{})
	assert.Equal(t, "storepw", s.String("key_password"))
	assert.Equal(t, "--storePassword=storepw --password=storepw --packageType=apk", plan.PlatformArgs)

	s = load(t, map[string]any{"platform": "android", "keystore_password": "storepw", "key_password": "keypw"})
	b.Plan(s, Metadata{})
	assert.Equal(t, "keypw", s.String("key_password"))
}

func TestPlanIOSProvisioningProfile(t *testing.T) {
	tests := []struct {
		env       map[string]string
		overrides map[string]any
		meta      Metadata
		want      string
	}{
		{
			env:  map[string]string{"SIGH_UUID": "generic", "sigh_io.app_adhoc": "specific"},
			meta: Metadata{AppID: "io.app"},
			want: "generic",
		},
		{
			env:       map[string]string{"sigh_io.app_adhoc": "specific"},
			overrides: map[string]any{"type": "ad-hoc"},
			meta:      Metadata{AppID: "io.app"},
			want:      "specific",
		},
		{
			env:       map[string]string{"sigh_com.example_appstore": "from-flag"},
			overrides: map[string]any{"app_identifier": "com.example"},
			meta:      Metadata{AppID: "io.app"},
			want:      "from-flag",
		},
		{
			env:       map[string]string{"SIGH_UUID": "generic"},
			overrides: map[string]any{"provisioning_profile": "explicit"},
			want:      "explicit",
		},
		{
			want: "",
		},
	}
	for i, test := range tests {
		b, _ := newTestBuilder(t, test.env)
		overrides := map[string]any{"platform": "ios"}
		for k, v := range test.overrides {
			overrides[k] = v
		}
		s := load(t, overrides)
		b.Plan(s, test.meta)
		assert.Equal(t, test.want, s.String("provisioning_profile"), "test #%d", i)
	}
}

func TestPlanIOSArgs(t *testing.T) {
	b, _ := newTestBuilder(t, nil)
	s := load(t, map[string]any{
		"platform":   "ios",
		"type":       "adhoc",
		"team_id":    "ABC123",
		"build_flag": []any{"-quiet", "-UseModernBuildSystem=YES"},
	})

	plan := b.Plan(s, Metadata{})
	assert.Equal(t, "ad-hoc", s.String("type"))
	assert.Equal(t, "--scheme=App --packageType=ad-hoc --developmentTeam=ABC123 --buildFlag=-quiet --buildFlag=-UseModernBuildSystem=YES", plan.PlatformArgs)
	assert.Equal(t, plan, b.Plan(s, Metadata{}))
}

func TestPlanSkipsOtherPlatform(t *testing.T) {
	b, _ := newTestBuilder(t, nil)
	s := load(t, map[string]any{"keystore_password": "pw"})

	plan := b.Plan(s, Metadata{})
	assert.Equal(t, "", plan.PlatformArgs)
	assert.Equal(t, "", s.String("key_password"))
	assert.Equal(t, "appstore", s.String("type"))
}

func TestCompileAndroidUnsigned(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	s := load(t, map[string]any{"platform": "android", "keystore_password": "pw", "android_package_type": "bundle"})

	require.NoError(t, b.Compile(s))
	assert.Equal(t, []string{
		"ionic capacitor build android --no-open --no-interactive --prod --device -- -- --storePassword=pw --password=pw --packageType=bundle",
		"./android/gradlew --project-dir android app:bundleRelease",
	}, r.Lines())
	assert.NotContains(t, r.Lines()[1], "-Pandroid.injected.signing")
}

func TestCompileAndroidSigned(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	s := load(t, map[string]any{
		"platform":          "android",
		"keystore_path":     "my keys/release.jks",
		"keystore_password": "p@ss word",
		"keystore_alias":    "upload",
	})

	require.NoError(t, b.Compile(s))
	require.Len(t, r.Ran, 2)
	gradle := r.Ran[1]
	assert.Equal(t, "./android/gradlew --project-dir android app:assembleRelease"+
		" -Pandroid.injected.signing.store.file='my keys/release.jks'"+
		" -Pandroid.injected.signing.store.password='p@ss word'"+
		" -Pandroid.injected.signing.key.alias=upload"+
		" -Pandroid.injected.signing.key.password='p@ss word'", gradle.Line)
	assert.Equal(t, 4, strings.Count(gradle.Line, "-Pandroid.injected.signing."))
	assert.NotContains(t, gradle.String(), "p@ss word")
	assert.NotContains(t, r.Ran[0].String(), "p@ss word")
}

func TestCompileIOS(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	s := load(t, map[string]any{"platform": "ios", "release": false, "scheme": "My App"})

	require.NoError(t, b.Compile(s))
	assert.Equal(t, []string{
		"ionic capacitor build ios --no-open --no-interactive --debug --device -- --scheme='My App' --packageType=app-store",
		"xcodebuild -configuration debug -workspace ios/*.xcworkspace -scheme 'My App' build",
	}, r.Lines())
}

func TestCompileIOSBuildNumber(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	info := &fakeInfo{}
	b.Info = info
	require.NoError(t, os.WriteFile(filepath.Join(b.Dir, ionicConfig), []byte(`{"name": "App"}`), 0644))
	s := load(t, map[string]any{"platform": "ios", "build_number": 7})

	require.NoError(t, b.Compile(s))
	assert.Equal(t, filepath.Join(b.Dir, "ios", "App", "App-Info.plist"), info.path)
	assert.Equal(t, "7", info.version)
	assert.Len(t, r.Ran, 2)

	info.err = errors.New("broken plist")
	r.Ran = nil
	assert.Error(t, b.Compile(s))
	assert.Empty(t, r.Ran)
}

func TestCompileIOSBuildNumberNeedsAppName(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	s := load(t, map[string]any{"platform": "ios", "build_number": "7"})

	assert.Error(t, b.Compile(s))
	assert.Empty(t, r.Ran)
}

func TestCompileAndroidIgnoresBuildNumberPlist(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	info := &fakeInfo{}
	b.Info = info
	s := load(t, map[string]any{"platform": "android", "build_number": "9"})

	require.NoError(t, b.Compile(s))
	assert.Empty(t, info.path)
	assert.Contains(t, r.Lines()[0], "--versionCode=9")
}

func TestCompileAndroidIgnoresCapacitorConfig(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(b.Dir, capacitorConfig), []byte(`{`), 0644))

	require.NoError(t, b.Compile(load(t, map[string]any{"platform": "android"})))
	assert.Len(t, r.Ran, 2)

	r.Ran = nil
	assert.Error(t, b.Compile(load(t, map[string]any{"platform": "ios"})))
	assert.Empty(t, r.Ran)
}

func TestCompileFailureAborts(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	failure := &shell.CommandError{Line: "ionic", ExitCode: 1}
	r.Failures["ionic capacitor build"] = failure
	s := load(t, map[string]any{"platform": "android"})

	err := b.Compile(s)
	assert.ErrorIs(t, err, failure)
	assert.Len(t, r.Ran, 1)
}

func TestCompileNoPlatform(t *testing.T) {
	b, r := newTestBuilder(t, nil)

	require.NoError(t, b.Compile(load(t, nil)))
	assert.Empty(t, r.Ran)
}

func TestBuild(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	b.Detector = fakeDetector{"bunx": true}
	r.Outputs["bun pm ls"] = "├── @capacitor/assets@3.0.5\n"
	s := load(t, map[string]any{"platform": "android", "android_package_type": "bundle"})

	a, err := b.Build(s)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ionic capacitor platform add android --no-interactive",
		"bunx capacitor-assets generate",
		"ionic capacitor build android --no-open --no-interactive --prod --device -- -- --packageType=bundle",
		"./android/gradlew --project-dir android app:bundleRelease",
	}, r.Lines())
	assert.Equal(t, "./android/app/build/outputs/bundle/release/app-release-unsigned.aab", a.Android)
	assert.Equal(t, "./ios/build/device/app.ipa", a.IOS)
}

func TestBuildFailureSkipsPaths(t *testing.T) {
	b, r := newTestBuilder(t, nil)
	r.Failures["ionic capacitor platform add"] = errors.New("exit status 1")
	s := load(t, map[string]any{"platform": "ios"})

	a, err := b.Build(s)
	assert.Error(t, err)
	assert.Equal(t, Artifacts{}, a)
	assert.Len(t, r.Ran, 1)
}
