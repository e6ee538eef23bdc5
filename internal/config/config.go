// Package config reads build parameters from a capbuild.yaml or capbuild.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are tried in order when no config file is named.
var DefaultFiles = []string{"capbuild.yaml", "capbuild.yml", "capbuild.toml"}

// Find returns the first default config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Load decodes the file at path into option values keyed by option name.
// The format is chosen by extension.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	case ".toml":
		err = toml.Unmarshal(data, &values)
	default:
		return nil, fmt.Errorf("unsupported config format %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// LoadDefault loads the first default config file in dir, if any.
func LoadDefault(dir string) (map[string]any, error) {
	path, ok := Find(dir)
	if !ok {
		return map[string]any{}, nil
	}
	values, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	return values, err
}
