package build

import (
	"fmt"
	"os"

	"howett.net/plist"
)

// InfoEditor updates the Info.plist of the native iOS project.
type InfoEditor interface {
	SetBundleVersion(path, version string) error
}

// PlistEditor rewrites the plist in place, keeping its original format.
type PlistEditor struct{}

func (PlistEditor) SetBundleVersion(path, version string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	info := map[string]any{}
	format, err := plist.Unmarshal(data, &info)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	info["CFBundleVersion"] = version

	out, err := plist.MarshalIndent(info, format, "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, st.Mode().Perm())
}
