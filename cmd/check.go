package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/generator"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Verify a rendered user-data file",
	Long: `Verify that a rendered file has no placeholder tokens left and parses as
YAML. Defaults to the configured output path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.OutputPath
	}

	data, err := fileSystem().ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := generator.Check(data); err != nil {
		return err
	}
	if !generator.HasCloudConfigHeader(data) {
		logWarning("%s does not start with %s; cloud-init will not treat it as cloud-config", path, generator.CloudConfigHeader)
	}

	logSuccess("%s is valid", path)
	return nil
}
