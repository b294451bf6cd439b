package generator

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/system"
)

// Placeholder tokens recognised in templates.
const (
	TokenUsername = "{{USERNAME}}"
	TokenRepoURL  = "{{REPO_URL}}"
	TokenSSHKeys  = "{{SSH_KEYS}}"
)

//go:embed templates/user-data.yaml.tmpl
var defaultTemplate string

// DefaultTemplate returns the built-in cloud-config template.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadTemplate reads a template from disk.
func LoadTemplate(fsys system.FileSystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.TemplateNotFound(path).
				WithHint("pass --template <path>, or write the built-in one with: generate-cloud-init template > %s", path)
		}
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return string(data), nil
}
