package main

import (
	"os"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/cmd"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
