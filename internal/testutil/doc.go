// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// Templates and settings are embedded using go:embed:
//
//	fixtures/basic.yaml.tmpl
//	fixtures/unknown_token.yaml.tmpl
//	fixtures/settings.toml
//
// # Test Environments
//
// NewTestEnv creates a temporary working tree with a home directory and
// changes into it. The Environ slice is what commands see as the process
// environment:
//
//	env := testutil.NewTestEnv(t)
//	env.WriteFile("cloud-init/user-data.yaml.tmpl", testutil.BasicTemplate())
//	env.Setenv("DOTFILES_REPO_URL", "https://example.com/repo.git")
//	env.AddHomeKey("id_ed25519.pub", testutil.GenerateKey(t, "dev@host"))
package testutil
