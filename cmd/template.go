package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/generator"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the built-in cloud-config template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := io.WriteString(cmd.OutOrStdout(), generator.DefaultTemplate())
		return err
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
