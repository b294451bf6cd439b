package generator

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/config"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
)

// Context holds every value substituted into a template.
type Context struct {
	Username string
	RepoURL  string
	Keys     []string
}

// NewContext builds a render context from the loaded config and resolved keys.
func NewContext(cfg *config.Config, keys []string) Context {
	return Context{
		Username: cfg.Username,
		RepoURL:  cfg.RepoURL,
		Keys:     keys,
	}
}

// Validate checks that the context can fill every placeholder.
func (c Context) Validate() error {
	if c.RepoURL == "" {
		return errors.MissingRequiredValue(config.EnvRepoURL).
			WithHint("export %s=<repository url>", config.EnvRepoURL)
	}
	if c.Username == "" {
		return errors.MissingRequiredValue(config.EnvUsername).
			WithHint("export %s=<username>", config.EnvUsername)
	}
	if !config.ValidUsername(c.Username) {
		return config.InvalidUsername(c.Username)
	}
	if len(c.Keys) == 0 {
		return errors.NoKeysFound(nil).
			WithHint("set SSH_PUBLIC_KEYS or SSH_KEY_PATH_1")
	}
	return nil
}

// Render substitutes ctx into tmpl and validates the result.
// The output contains no placeholder tokens and parses as YAML, or an error
// is returned and no output is produced.
func Render(tmpl string, ctx Context) ([]byte, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	if unknown := unknownTokens(tmpl); len(unknown) > 0 {
		return nil, errors.UnresolvedPlaceholder(unknown).
			WithHint("the template uses tokens this tool does not know; supported: %s %s %s",
				TokenUsername, TokenRepoURL, TokenSSHKeys)
	}

	out, err := substitute(tmpl, ctx)
	if err != nil {
		return nil, err
	}

	// Template tokens are all known at this point, so anything left came in
	// through a value.
	if tokens := FindPlaceholders(out); len(tokens) > 0 {
		return nil, errors.UnresolvedPlaceholder(tokens).
			WithHint("a username, repository URL or key contains %v; remove it from the value", tokens)
	}

	if err := ValidateYAML([]byte(out)); err != nil {
		return nil, err
	}

	return []byte(out), nil
}

// substitute replaces tokens line by line over the template text only, so
// a value is never itself substituted.
func substitute(tmpl string, ctx Context) (string, error) {
	replacer := strings.NewReplacer(
		TokenUsername, ctx.Username,
		TokenRepoURL, ctx.RepoURL,
	)

	lines := strings.Split(tmpl, "\n")
	result := make([]string, 0, len(lines)+len(ctx.Keys))
	for i, line := range lines {
		if !strings.Contains(line, TokenSSHKeys) {
			result = append(result, replacer.Replace(line))
			continue
		}
		items, err := keyBlock(line, i+1, ctx.Keys)
		if err != nil {
			return "", err
		}
		result = append(result, items...)
	}
	return strings.Join(result, "\n"), nil
}

// unknownTokens returns the placeholder tokens in tmpl that Render cannot fill.
func unknownTokens(tmpl string) []string {
	var unknown []string
	for _, token := range FindPlaceholders(tmpl) {
		switch token {
		case TokenUsername, TokenRepoURL, TokenSSHKeys:
		default:
			unknown = append(unknown, token)
		}
	}
	return unknown
}

// keyBlock turns a template line holding the key token into one list item
// per key, indented like the token.
func keyBlock(line string, lineNo int, keys []string) ([]string, error) {
	idx := strings.Index(line, TokenSSHKeys)
	indent := line[:idx]
	rest := line[idx+len(TokenSSHKeys):]
	if strings.TrimSpace(indent) != "" || strings.TrimSpace(rest) != "" {
		return nil, errors.New(errors.KindUnresolvedPlaceholder,
			fmt.Sprintf("%s must be alone on its line (template line %d)", TokenSSHKeys, lineNo)).
			WithHint("put %s on its own line, indented where the list items belong", TokenSSHKeys)
	}

	items := make([]string, 0, len(keys))
	for _, key := range keys {
		items = append(items, indent+"- "+yamlScalar(key))
	}
	return items, nil
}

// yamlScalar returns s unchanged when YAML reads it back as the same plain
// string, and double-quoted otherwise (e.g. a comment containing " #").
func yamlScalar(s string) string {
	var probe string
	if err := yaml.Unmarshal([]byte(s), &probe); err == nil && probe == s {
		return s
	}
	return strconv.Quote(s)
}
