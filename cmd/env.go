package cmd

import (
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/config"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the resolved values as shell exports",
	Long: `Print the resolved username, repository URL and keys as shell export
lines. Keys found through SSH_KEY_PATH_<n> or the ~/.ssh scan are inlined,
so the output can be evaluated on another machine:

  eval "$(generate-cloud-init env)"`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := resolveKeys(cfg, fileSystem())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	exports := []struct{ name, value string }{
		{config.EnvRepoURL, cfg.RepoURL},
		{config.EnvUsername, cfg.Username},
		{config.EnvPublicKeys, strings.Join(res.Keys, "\n")},
	}
	for _, e := range exports {
		fmt.Fprintf(w, "export %s=%s\n", e.name, shellquote.Join(e.value))
	}
	return nil
}
