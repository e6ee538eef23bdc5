package build

import (
	"github.com/alessio/shellescape"

	"capbuild.dev/cmd/internal/params"
	"capbuild.dev/cmd/internal/shell"
)

const gradlew = "./android/gradlew --project-dir android"

// gradleAssemble packages the release build. Signing properties are only
// passed when a keystore is configured, otherwise the output is unsigned.
func gradleAssemble(s *params.Set) shell.Command {
	task := "app:assembleRelease"
	if s.String("android_package_type") == "bundle" {
		task = "app:bundleRelease"
	}

	c := shell.Command{Line: gradlew + " " + task}
	keystore := s.String("keystore_path")
	if keystore == "" {
		return c
	}
	for _, p := range []struct{ prop, value string }{
		{"store.file", keystore},
		{"store.password", s.String("keystore_password")},
		{"key.alias", s.String("keystore_alias")},
		{"key.password", s.String("key_password")},
	} {
		c.Line += " -Pandroid.injected.signing." + p.prop + "=" + shellescape.Quote(p.value)
	}
	c.Secrets = signingSecrets(s)
	return c
}
