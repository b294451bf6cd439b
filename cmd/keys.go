package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the SSH keys that would be rendered",
	Long: `List the SSH public keys resolved from the environment, with the source
they came from and their SHA256 fingerprints. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := resolveKeys(cfg, fileSystem())
	if err != nil {
		return err
	}

	logInfo("%d key(s) from %s", len(res.Keys), res.Source)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tFINGERPRINT\tCOMMENT")
	for i, key := range res.Keys {
		info := keys.Inspect(key)
		if info.Err != nil {
			logWarning("key %d does not parse as an authorized key: %v", i+1, info.Err)
			fmt.Fprintf(w, "%d\t?\t-\t%s\n", i+1, key)
			continue
		}
		comment := info.Comment
		if comment == "" {
			comment = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, info.Type, info.Fingerprint, comment)
	}
	return w.Flush()
}
