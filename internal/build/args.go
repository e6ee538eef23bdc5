package build

import (
	"strings"

	"github.com/alessio/shellescape"

	"capbuild.dev/cmd/internal/params"
)

// ArgFlag binds a build option to the CLI flag it controls.
type ArgFlag struct {
	Key  string
	Flag string
}

// ArgsMap is applied in declaration order.
type ArgsMap []ArgFlag

var AndroidArgs = ArgsMap{
	{"keystore_path", "keystore"},
	{"keystore_password", "storePassword"},
	{"key_password", "password"},
	{"keystore_alias", "alias"},
	{"build_number", "versionCode"},
	{"min_sdk_version", "gradleArg=-PcdvMinSdkVersion"},
	{"capacitor_no_fetch", "capacitorNoFetch"},
	{"android_package_type", "packageType"},
}

var IOSArgs = ArgsMap{
	{"scheme", "scheme"},
	{"type", "packageType"},
	{"team_id", "developmentTeam"},
	{"provisioning_profile", "provisioningProfile"},
	{"build_flag", "buildFlag"},
}

// MapArgs renders the options of m that carry a value as --flag=value
// tokens. Lists yield one token per element; booleans and empty strings
// yield nothing.
func MapArgs(s *params.Set, m ArgsMap) string {
	var args []string
	for _, a := range m {
		v := s.Get(a.Key)
		switch v.Kind() {
		case params.KindList:
			for _, item := range v.AsList() {
				args = append(args, flagArg(a.Flag, item))
			}
		case params.KindString:
			if str := v.AsString(); str != "" {
				args = append(args, flagArg(a.Flag, str))
			}
		}
	}
	return strings.Join(args, " ")
}

func flagArg(flag, value string) string {
	return "--" + flag + "=" + shellescape.Quote(value)
}

// joinLine joins the non-empty parts of a command line with single spaces.
func joinLine(parts ...string) string {
	line := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			line = append(line, p)
		}
	}
	return strings.Join(line, " ")
}
