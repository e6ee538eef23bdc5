package params

import (
	"errors"
)

// Option describes one recognised build parameter.
type Option struct {
	Name        string
	Env         []string // looked up in order, first set wins
	Description string
	Kind        Kind
	Default     Value
	Verify      func(Value) error
}

var (
	Platforms           = []string{"", "android", "ios"}
	IOSPackageTypes     = []string{"development", "enterprise", "adhoc", "appstore", "ad-hoc", "app-store"}
	AndroidPackageTypes = []string{"apk", "bundle"}
)

// Schema is the catalogue of every option, in declaration order.
var Schema = []Option{
	{
		Name:        "platform",
		Env:         []string{"CAPACITOR_PLATFORM"},
		Description: "Platform to build on. Should be either android or ios",
		Kind:        KindString,
		Default:     Str(""),
		Verify:      oneOf("Platform should be either android or ios", Platforms...),
	},
	{
		Name:        "release",
		Env:         []string{"CAPACITOR_RELEASE"},
		Description: "Build for release if true, or for debug if false",
		Kind:        KindBool,
		Default:     Bool(true),
	},
	{
		Name:        "device",
		Env:         []string{"CAPACITOR_DEVICE"},
		Description: "Build for device",
		Kind:        KindBool,
		Default:     Bool(true),
	},
	{
		Name:        "prod",
		Env:         []string{"IONIC_PROD"},
		Description: "Build for production",
		Kind:        KindBool,
		Default:     Bool(false),
	},
	{
		Name:        "scheme",
		Env:         []string{"CAPACITOR_IOS_SCHEME"},
		Description: "The scheme to use when building the app",
		Kind:        KindString,
		Default:     Str("App"),
	},
	{
		Name:        "type",
		Env:         []string{"CAPACITOR_IOS_PACKAGE_TYPE"},
		Description: "This will determine what type of build is generated by Xcode. Valid options are development, enterprise, adhoc, and appstore",
		Kind:        KindString,
		Default:     Str("appstore"),
		Verify:      oneOf("Valid options are development, enterprise, adhoc, and appstore.", IOSPackageTypes...),
	},
	{
		Name:        "verbose",
		Env:         []string{"CAPACITOR_VERBOSE"},
		Description: "Pipe out more verbose output to the shell",
		Kind:        KindBool,
		Default:     Bool(false),
	},
	{
		Name:        "team_id",
		Env:         []string{"CAPACITOR_IOS_TEAM_ID", "FASTLANE_TEAM_ID"},
		Description: "The development team (Team ID) to use for code signing",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "provisioning_profile",
		Env:         []string{"CAPACITOR_IOS_PROVISIONING_PROFILE"},
		Description: "GUID of the provisioning profile to be used for signing",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "app_identifier",
		Env:         []string{"CAPACITOR_APP_IDENTIFIER", "APP_IDENTIFIER"},
		Description: "Bundle identifier used to find a provisioning profile (default is appId of capacitor.config.json)",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "android_package_type",
		Env:         []string{"CAPACITOR_ANDROID_PACKAGE_TYPE"},
		Description: "This will determine what type of Android build is generated. Valid options are apk or bundle",
		Kind:        KindString,
		Default:     Str("apk"),
		Verify:      oneOf("Valid options are apk or bundle.", AndroidPackageTypes...),
	},
	{
		Name:        "keystore_path",
		Env:         []string{"CAPACITOR_ANDROID_KEYSTORE_PATH"},
		Description: "Path to the Keystore for Android",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "keystore_password",
		Env:         []string{"CAPACITOR_ANDROID_KEYSTORE_PASSWORD"},
		Description: "Android Keystore password",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "key_password",
		Env:         []string{"CAPACITOR_ANDROID_KEY_PASSWORD"},
		Description: "Android Key password (default is keystore password)",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "keystore_alias",
		Env:         []string{"CAPACITOR_ANDROID_KEYSTORE_ALIAS"},
		Description: "Android Keystore alias",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "build_number",
		Env:         []string{"CAPACITOR_BUILD_NUMBER"},
		Description: "Sets the build number for iOS and version code for Android",
		Kind:        KindString,
		Default:     Absent(),
	},
	{
		Name:        "browserify",
		Env:         []string{"CAPACITOR_BROWSERIFY"},
		Description: "Specifies whether to browserify build or not",
		Kind:        KindBool,
		Default:     Bool(false),
	},
	{
		Name:        "capacitor_prepare",
		Env:         []string{"CAPACITOR_PREPARE"},
		Description: "Specifies whether to run `ionic capacitor prepare` before building",
		Kind:        KindBool,
		Default:     Bool(true),
	},
	{
		Name:        "min_sdk_version",
		Env:         []string{"CAPACITOR_ANDROID_MIN_SDK_VERSION"},
		Description: "Overrides the value of minSdkVersion set in AndroidManifest.xml",
		Kind:        KindString,
		Default:     Str(""),
	},
	{
		Name:        "capacitor_no_fetch",
		Env:         []string{"CAPACITOR_NO_FETCH"},
		Description: "Call `capacitor platform add` with `--nofetch` parameter",
		Kind:        KindBool,
		Default:     Bool(false),
	},
	{
		Name:        "capacitor_no_resources",
		Env:         []string{"CAPACITOR_NO_RESOURCES"},
		Description: "Call `capacitor platform add` with `--no-resources` parameter",
		Kind:        KindBool,
		Default:     Bool(false),
	},
	{
		Name:        "build_flag",
		Env:         []string{"CAPACITOR_IOS_BUILD_FLAG"},
		Description: "An array of Xcode buildFlag. Will be appended on compile command",
		Kind:        KindList,
		Default:     List(),
	},
	{
		Name:        "capacitor_build_config_file",
		Env:         []string{"CAPACITOR_BUILD_CONFIG_FILE"},
		Description: "Call `ionic capacitor compile` with `--buildConfig=<ConfigFile>` to specify build config file path",
		Kind:        KindString,
		Default:     Str(""),
	},
}

// Lookup returns the option with the given name.
func Lookup(name string) (Option, bool) {
	for _, o := range Schema {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func oneOf(msg string, allowed ...string) func(Value) error {
	return func(v Value) error {
		for _, a := range allowed {
			if v.AsString() == a {
				return nil
			}
		}
		return errors.New(msg)
	}
}
