package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
)

// Environment variable names read at process start.
const (
	EnvRepoURL    = "DOTFILES_REPO_URL"
	EnvUsername   = "CLOUD_INIT_USER"
	EnvPublicKeys = "SSH_PUBLIC_KEYS"
	EnvKeyPath    = "SSH_KEY_PATH_" // numbered: SSH_KEY_PATH_1, SSH_KEY_PATH_2, ...
)

const (
	DefaultUsername     = "dev"
	DefaultTemplatePath = "cloud-init/user-data.yaml.tmpl"
	DefaultOutputPath   = "cloud-init/user-data.yaml"
	DefaultKeyPattern   = "*.pub"
)

var (
	keyPathVarRegex = regexp.MustCompile(`^` + EnvKeyPath + `([0-9]+)$`)

	// Login names as useradd accepts them by default. The name lands
	// unquoted in YAML flow sequences, so nothing else is allowed through.
	usernameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)
)

const maxUsernameLen = 32

// envVars is the raw environment as parsed by caarlos0/env.
type envVars struct {
	RepoURL    string `env:"DOTFILES_REPO_URL"`
	Username   string `env:"CLOUD_INIT_USER"`
	PublicKeys string `env:"SSH_PUBLIC_KEYS"`
	Home       string `env:"HOME"`
}

// Config is the resolved, immutable input to a render.
// It is built once by Load and never re-reads the environment.
type Config struct {
	RepoURL      string
	Username     string
	PublicKeys   string   // Direct multi-key string, unsplit
	KeyPaths     []string // From SSH_KEY_PATH_<n>, ordered by n
	KeyDir       string   // Directory scanned as the last key source (empty disables it)
	KeyPattern   string
	TemplatePath string
	OutputPath   string
}

// LoadOptions carries command-line overrides into Load.
type LoadOptions struct {
	Settings     *Settings
	TemplatePath string
	OutputPath   string
}

// Load builds a Config from an environment slice in os.Environ() form.
// Precedence: command-line overrides, then environment, then settings, then defaults.
func Load(environ []string, opts LoadOptions) (*Config, error) {
	vars := env.ToMap(environ)

	var raw envVars
	if err := env.ParseWithOptions(&raw, env.Options{Environment: vars}); err != nil {
		return nil, errors.ConfigError("failed to parse environment", err)
	}

	settings := opts.Settings
	if settings == nil {
		settings = DefaultSettings()
	}

	cfg := &Config{
		RepoURL:      strings.TrimSpace(raw.RepoURL),
		Username:     strings.TrimSpace(raw.Username),
		PublicKeys:   raw.PublicKeys,
		KeyPaths:     numberedKeyPaths(vars, raw.Home),
		KeyPattern:   settings.KeyPattern,
		TemplatePath: firstNonEmpty(opts.TemplatePath, settings.Template),
		OutputPath:   firstNonEmpty(opts.OutputPath, settings.Output),
	}

	if cfg.Username == "" {
		cfg.Username = settings.DefaultUser
	}

	switch {
	case settings.KeyDir != "":
		cfg.KeyDir = expandHome(settings.KeyDir, raw.Home)
	case raw.Home != "":
		cfg.KeyDir = filepath.Join(raw.Home, ".ssh")
	}

	return cfg, nil
}

// Validate checks the values a render cannot proceed without.
func (c *Config) Validate() error {
	if c.RepoURL == "" {
		return errors.MissingRequiredValue(EnvRepoURL).
			WithHint("set %s to the dotfiles repository URL, e.g. export %s=https://github.com/you/dotfiles.git", EnvRepoURL, EnvRepoURL)
	}
	if c.Username == "" {
		return errors.MissingRequiredValue(EnvUsername).
			WithHint("set %s or default_user in the settings file", EnvUsername)
	}
	if !ValidUsername(c.Username) {
		return InvalidUsername(c.Username)
	}
	if c.TemplatePath == "" {
		return errors.MissingRequiredValue("template path").
			WithHint("pass --template or set template in the settings file")
	}
	if c.OutputPath == "" {
		return errors.MissingRequiredValue("output path").
			WithHint("pass --output or set output in the settings file")
	}
	return nil
}

// ValidUsername reports whether name is a usable login name.
func ValidUsername(name string) bool {
	return len(name) <= maxUsernameLen && usernameRegex.MatchString(name)
}

// InvalidUsername returns the error for a username ValidUsername rejects.
func InvalidUsername(name string) *errors.RenderError {
	return errors.ConfigError(fmt.Sprintf("invalid username %q", name), nil).
		WithHint("set %s (or default_user) to a lowercase login name matching %s, at most %d characters",
			EnvUsername, usernameRegex, maxUsernameLen)
}

// numberedKeyPaths collects SSH_KEY_PATH_<n> values ordered by n.
// Gaps in the numbering are allowed; empty values are skipped.
func numberedKeyPaths(vars map[string]string, home string) []string {
	type numbered struct {
		n    int
		path string
	}

	var found []numbered
	for name, value := range vars {
		m := keyPathVarRegex.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		found = append(found, numbered{n: n, path: expandHome(value, home)})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	paths := make([]string, 0, len(found))
	for _, f := range found {
		paths = append(paths, f.path)
	}
	return paths
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// String renders the config for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("repo=%s user=%s keyPaths=%d keyDir=%s template=%s output=%s",
		c.RepoURL, c.Username, len(c.KeyPaths), c.KeyDir, c.TemplatePath, c.OutputPath)
}
