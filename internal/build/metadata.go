package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ionicConfig     = "ionic.config.json"
	capacitorConfig = "capacitor.config.json"
)

// Metadata describes the Ionic project being built.
type Metadata struct {
	Name  string
	AppID string
}

// ReadMetadata reads the app name from ionic.config.json and the bundle
// identifier from capacitor.config.json. Missing files leave fields empty.
func ReadMetadata(dir string) (Metadata, error) {
	var m Metadata

	var ionic struct {
		Name string `json:"name"`
	}
	if err := readJSON(filepath.Join(dir, ionicConfig), &ionic); err != nil {
		return Metadata{}, err
	}
	m.Name = ionic.Name

	var capacitor struct {
		AppID string `json:"appId"`
	}
	if err := readJSON(filepath.Join(dir, capacitorConfig), &capacitor); err != nil {
		return Metadata{}, err
	}
	m.AppID = capacitor.AppID
	return m, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// infoPlistPath is the Info.plist of the generated Xcode project.
func (m Metadata) infoPlistPath(dir string) (string, error) {
	if m.Name == "" {
		return "", fmt.Errorf("no app name found in %s", filepath.Join(dir, ionicConfig))
	}
	return filepath.Join(dir, "ios", m.Name, m.Name+"-Info.plist"), nil
}
