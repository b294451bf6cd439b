package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/system"
)

// DefaultSettingsFile is looked up in the working directory when --config is not given.
const DefaultSettingsFile = ".generate-cloud-init.toml"

// Settings holds optional file-based defaults.
type Settings struct {
	Template    string `toml:"template"`
	Output      string `toml:"output"`
	DefaultUser string `toml:"default_user"`
	KeyDir      string `toml:"key_dir"`
	KeyPattern  string `toml:"key_pattern"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Template:    DefaultTemplatePath,
		Output:      DefaultOutputPath,
		DefaultUser: DefaultUsername,
		KeyPattern:  DefaultKeyPattern,
	}
}

// LoadSettings reads a TOML settings file and fills unset fields with defaults.
// A missing file is only an error when required is true (the path was given explicitly).
func LoadSettings(fsys system.FileSystem, path string, required bool) (*Settings, error) {
	settings := DefaultSettings()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !required {
			return settings, nil
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to read settings %s", path), err)
	}

	var fromFile Settings
	md, err := toml.Decode(string(data), &fromFile)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse settings %s", path), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.ConfigError(fmt.Sprintf("unknown keys in settings %s: %s", path, strings.Join(keys, ", ")), nil)
	}

	settings.merge(&fromFile)
	return settings, nil
}

func (s *Settings) merge(other *Settings) {
	if other.Template != "" {
		s.Template = other.Template
	}
	if other.Output != "" {
		s.Output = other.Output
	}
	if other.DefaultUser != "" {
		s.DefaultUser = other.DefaultUser
	}
	if other.KeyDir != "" {
		s.KeyDir = other.KeyDir
	}
	if other.KeyPattern != "" {
		s.KeyPattern = other.KeyPattern
	}
}
