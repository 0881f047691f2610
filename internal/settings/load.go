package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are searched in this order in every directory.
var ConfigFileNames = []string{"gtadapter.toml", "gtadapter.yaml", "gtadapter.yml"}

// appName is the directory used under the XDG config home.
const appName = "gtadapter"

// File is one parsed settings file. Settings maps are partial: only the keys
// present in the file are applied on top of the lower layers.
type File struct {
	Path        string               `toml:"-" yaml:"-"`
	SolutionDir string               `toml:"solution_dir" yaml:"solution_dir"`
	Settings    map[string]any       `toml:"settings" yaml:"settings"`
	Executables []ExecutableOverride `toml:"executables" yaml:"executables"`
}

// ExecutableOverride holds settings that apply only to executables matching
// Pattern (a doublestar glob) or Regex (a Go regular expression).
type ExecutableOverride struct {
	Pattern  string         `toml:"pattern" yaml:"pattern"`
	Regex    string         `toml:"regex" yaml:"regex"`
	Settings map[string]any `toml:"settings" yaml:"settings"`
}

// FindConfigFile walks up from startDir looking for a settings file and
// returns its absolute path, or "" when none exists up to the root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// UserConfigFile is the per-user settings file applied below the solution
// file. GTA_USER_CONFIG overrides the XDG location.
func UserConfigFile(lookupEnv EnvFunc) string {
	if lookupEnv != nil {
		if v, ok := lookupEnv("GTA_USER_CONFIG"); ok && v != "" {
			return v
		}
	}
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// LoadFile parses a TOML or YAML settings file, chosen by extension. Keys the
// file format does not define are an error.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings %s: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("loading settings %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("loading settings %s: %w", path, err)
		}
		var keys []string
		for _, k := range md.Undecoded() {
			if !inSettingsTable(k) {
				keys = append(keys, k.String())
			}
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return nil, fmt.Errorf("loading settings %s: %w: %s", path, ErrUnknownOption, strings.Join(keys, ", "))
		}
	}

	f.Path = path
	return &f, nil
}

// inSettingsTable reports whether k lies below a settings table. Those values
// land in a map and are checked by name when applied, so toml reports nested
// keys such as rule tables as undecoded.
func inSettingsTable(k toml.Key) bool {
	switch {
	case len(k) > 1 && k[0] == "settings":
		return true
	case len(k) > 2 && k[0] == "executables" && k[1] == "settings":
		return true
	}
	return false
}

// LoadOptionalFile is LoadFile, except that a missing file yields nil.
func LoadOptionalFile(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadFile(path)
}

// solutionDir resolves the solution directory declared by f: relative paths
// are taken from the file's directory, and an undeclared one is the file's
// directory itself.
func (f *File) solutionDir() string {
	base := filepath.Dir(f.Path)
	if f.SolutionDir == "" {
		return base
	}
	if filepath.IsAbs(f.SolutionDir) {
		return filepath.Clean(f.SolutionDir)
	}
	return filepath.Join(base, f.SolutionDir)
}
