package cmd

import (
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/config"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/keys"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/logging"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/system"
)

// fileSystem returns the filesystem commands operate on.
func fileSystem() system.FileSystem {
	return system.DefaultFS()
}

// loadConfig reads the settings file and environment once, applying flag overrides.
func loadConfig() (*config.Config, error) {
	path := settingsPath
	required := path != ""
	if path == "" {
		path = config.DefaultSettingsFile
	}

	settings, err := config.LoadSettings(fileSystem(), path, required)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(environ(), config.LoadOptions{
		Settings:     settings,
		TemplatePath: templatePath,
		OutputPath:   outputPath,
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("loaded config", "config", cfg.String())
	return cfg, nil
}

// keySources returns the key sources in priority order.
func keySources(cfg *config.Config, fsys system.FileSystem) []keys.Source {
	return []keys.Source{
		keys.NewLiteralSource(config.EnvPublicKeys, cfg.PublicKeys),
		keys.NewFileSource(config.EnvKeyPath+"<n>", fsys, cfg.KeyPaths),
		keys.NewDirSource(fsys, cfg.KeyDir, cfg.KeyPattern),
	}
}

// resolveKeys resolves keys and logs their fingerprints at debug level.
func resolveKeys(cfg *config.Config, fsys system.FileSystem) (*keys.Resolution, error) {
	res, err := keys.Resolve(keySources(cfg, fsys)...)
	if err != nil {
		return nil, err
	}

	for i, key := range res.Keys {
		fingerprint, err := keys.Fingerprint(key)
		if err != nil {
			logging.Debug("key does not parse as an authorized key", "index", i, "err", err)
			continue
		}
		logging.Debug("resolved key", "index", i, "fingerprint", fingerprint)
	}
	return res, nil
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
