// Package config is the single boundary where generate-cloud-init reads
// process state.
//
// Load takes the environment as a slice (os.Environ() in production, a
// literal slice in tests) and returns an immutable Config. Nothing else in
// the module calls os.Getenv.
//
// # Environment
//
//	DOTFILES_REPO_URL   required repository URL
//	CLOUD_INIT_USER     optional username (default "dev")
//	SSH_PUBLIC_KEYS     direct keys, comma or newline separated
//	SSH_KEY_PATH_<n>    numbered key file paths, ordered by n
//	HOME                locates the default scan directory ~/.ssh
//
// # Settings File
//
// An optional TOML file supplies defaults:
//
//	template     = "cloud-init/user-data.yaml.tmpl"
//	output       = "cloud-init/user-data.yaml"
//	default_user = "dev"
//	key_dir      = "~/.ssh"
//	key_pattern  = "*.pub"
package config
