// Package keys gathers SSH public keys from ordered sources.
//
// A Source yields zero or more authorized-key lines. Resolve consults
// sources in order and keeps the keys of the first one that is non-empty;
// later sources are never read once an earlier one produced keys.
package keys

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/logging"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/system"
)

// Source yields SSH public keys.
type Source interface {
	// Name identifies the source in summaries and error hints.
	Name() string

	// Keys returns the keys this source provides, in a stable order.
	// An empty result with a nil error means the source is unset.
	Keys() ([]string, error)
}

// LiteralSource provides keys from a directly supplied string.
type LiteralSource struct {
	Label string
	Value string
}

// NewLiteralSource creates a LiteralSource named after the variable it came from.
func NewLiteralSource(label, value string) *LiteralSource {
	return &LiteralSource{Label: label, Value: value}
}

func (s *LiteralSource) Name() string { return s.Label }

func (s *LiteralSource) Keys() ([]string, error) {
	return SplitKeys(s.Value), nil
}

// SplitKeys splits a multi-key string. Commas are treated exactly like line
// breaks, each line is trimmed, and blank lines are dropped.
func SplitKeys(value string) []string {
	return parseLines(strings.ReplaceAll(value, ",", "\n"), false)
}

// FileSource provides keys from a list of key file paths.
// Paths that do not exist contribute nothing.
type FileSource struct {
	Label string
	FS    system.FileSystem
	Paths []string
}

// NewFileSource creates a FileSource reading through fsys.
func NewFileSource(label string, fsys system.FileSystem, paths []string) *FileSource {
	return &FileSource{Label: label, FS: fsys, Paths: paths}
}

func (s *FileSource) Name() string { return s.Label }

func (s *FileSource) Keys() ([]string, error) {
	var keys []string
	for _, path := range s.Paths {
		data, err := s.FS.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logging.Debug("key file does not exist, skipping", "source", s.Label, "path", path)
				continue
			}
			return nil, errors.Wrap(errors.KindGeneral, fmt.Sprintf("failed to read key file %s", path), err).
				WithHint("make %s readable, or remove it from %s", path, s.Label)
		}
		found := parseLines(string(data), true)
		logging.Debug("read key file", "path", path, "keys", len(found))
		keys = append(keys, found...)
	}
	return keys, nil
}

// DirSource provides keys from files in a directory whose names match a
// glob pattern. Entries are resolved with securejoin so a symlink cannot
// lead the scan outside Dir.
type DirSource struct {
	FS      system.FileSystem
	Dir     string
	Pattern string
}

// NewDirSource creates a DirSource scanning dir for names matching pattern.
func NewDirSource(fsys system.FileSystem, dir, pattern string) *DirSource {
	return &DirSource{FS: fsys, Dir: dir, Pattern: pattern}
}

func (s *DirSource) Name() string {
	return filepath.Join(s.Dir, s.Pattern)
}

func (s *DirSource) Keys() ([]string, error) {
	if s.Dir == "" {
		return nil, nil
	}
	if _, err := filepath.Match(s.Pattern, ""); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid key pattern %q", s.Pattern), err)
	}

	entries, err := s.FS.ReadDir(s.Dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logging.Debug("key directory does not exist, skipping", "dir", s.Dir)
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindGeneral, fmt.Sprintf("failed to scan key directory %s", s.Dir), err).
			WithHint("make %s readable, or point key_dir in the settings file elsewhere", s.Dir)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(s.Pattern, entry.Name()); !ok {
			continue
		}

		path, err := securejoin.SecureJoinVFS(s.Dir, entry.Name(), s.FS)
		if err != nil {
			return nil, errors.Wrap(errors.KindGeneral, fmt.Sprintf("failed to resolve %s in %s", entry.Name(), s.Dir), err).
				WithHint("check the symlink %s", filepath.Join(s.Dir, entry.Name()))
		}

		info, err := s.FS.Stat(path)
		if err != nil || info.IsDir() {
			logging.Debug("skipping unreadable key entry", "path", path, "err", err)
			continue
		}

		data, err := s.FS.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.KindGeneral, fmt.Sprintf("failed to read key file %s", path), err).
				WithHint("make %s readable, or remove it from %s", path, s.Dir)
		}
		keys = append(keys, parseLines(string(data), true)...)
	}
	return keys, nil
}

// parseLines returns trimmed, non-empty lines. With skipComments, lines
// starting with '#' are dropped as well.
func parseLines(text string, skipComments bool) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
