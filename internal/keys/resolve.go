package keys

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/logging"
)

// Resolution records which source supplied the keys.
type Resolution struct {
	Source    string
	Keys      []string
	Consulted []string // Names of every source read, in order
}

// Resolve returns the keys of the first source that yields at least one key.
// If no source yields a key the error is a NoKeysFound RenderError.
func Resolve(sources ...Source) (*Resolution, error) {
	res := &Resolution{}
	for _, src := range sources {
		res.Consulted = append(res.Consulted, src.Name())

		keys, err := src.Keys()
		if err != nil {
			var renderErr *errors.RenderError
			if errors.As(err, &renderErr) {
				return nil, err
			}
			return nil, errors.Wrap(errors.KindGeneral, fmt.Sprintf("key source %s failed", src.Name()), err).
				WithHint("check the value of %s", src.Name())
		}
		if len(keys) == 0 {
			logging.Debug("key source empty", "source", src.Name())
			continue
		}

		logging.Debug("using key source", "source", src.Name(), "keys", len(keys))
		res.Source = src.Name()
		res.Keys = keys
		return res, nil
	}

	return nil, errors.NoKeysFound(res.Consulted).
		WithHint("set SSH_PUBLIC_KEYS, or SSH_KEY_PATH_1 to a public key file, or add a *.pub key to ~/.ssh (checked: %s)",
			strings.Join(res.Consulted, ", "))
}
