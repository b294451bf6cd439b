package generator

import (
	"bytes"
	stderrors "errors"
	"io"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
)

// CloudConfigHeader is the first line cloud-init requires to treat user-data as cloud-config.
const CloudConfigHeader = "#cloud-config"

var placeholderRegex = regexp.MustCompile(`\{\{[A-Z][A-Z0-9_]*\}\}`)

// FindPlaceholders returns the distinct placeholder tokens in text, sorted.
func FindPlaceholders(text string) []string {
	matches := placeholderRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var tokens []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			tokens = append(tokens, m)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// ValidateYAML checks that every document in data parses.
func ValidateYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.MalformedOutput(err).
				WithHint("check the template's indentation around the substituted values")
		}
	}
}

// HasCloudConfigHeader reports whether data starts with the #cloud-config line.
func HasCloudConfigHeader(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	return string(bytes.TrimRight(line, " \r")) == CloudConfigHeader
}

// Check validates an already rendered document: no leftover tokens and valid YAML.
func Check(data []byte) error {
	if tokens := FindPlaceholders(string(data)); len(tokens) > 0 {
		return errors.UnresolvedPlaceholder(tokens).
			WithHint("re-run generate-cloud-init to regenerate the file")
	}
	return ValidateYAML(data)
}
