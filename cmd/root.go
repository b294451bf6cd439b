package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/config"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/generator"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/logging"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/system"
)

var (
	verbose      bool
	jsonOutput   bool
	settingsPath string
	templatePath string
	outputPath   string
	dryRun       bool
)

var rootCmd = &cobra.Command{
	Use:   "generate-cloud-init",
	Short: "Render cloud-init user-data for a dotfiles VM",
	Long: `generate-cloud-init renders a cloud-init user-data file from a template.

Values come from the environment:
  DOTFILES_REPO_URL   repository to clone (required)
  CLOUD_INIT_USER     login user (default "dev")
  SSH_PUBLIC_KEYS     authorized keys, comma or newline separated
  SSH_KEY_PATH_<n>    key files, used when SSH_PUBLIC_KEYS is unset

When neither key variable yields a key, ~/.ssh/*.pub is scanned.
The output is written atomically and is byte-identical for identical inputs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
	RunE: runRender,
}

// Execute runs the root command and reports a failed run with its
// remediation hint.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	// Flag parsing fails before PersistentPreRun points user output at the command.
	logging.SetUserOutput(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr())
	logError("%v", err)
	if hint := errors.GetHint(err); hint != "" {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "hint: %s\n", hint)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Settings file (default "+config.DefaultSettingsFile+" if present)")
	rootCmd.PersistentFlags().StringVarP(&templatePath, "template", "t", "", "Template file (default "+config.DefaultTemplatePath+")")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file (default "+config.DefaultOutputPath+")")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the rendered document instead of writing it")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fsys := fileSystem()

	res, err := resolveKeys(cfg, fsys)
	if err != nil {
		return err
	}

	tmpl, err := generator.LoadTemplate(fsys, cfg.TemplatePath)
	if err != nil {
		return err
	}

	out, err := generator.Render(tmpl, generator.NewContext(cfg, res.Keys))
	if err != nil {
		return err
	}

	if dryRun {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	if err := system.WriteFileAtomic(fsys, cfg.OutputPath, out, 0644); err != nil {
		return err
	}

	logging.Debug("rendered user-data", "template", cfg.TemplatePath, "output", cfg.OutputPath, "bytes", len(out))
	printSummary(cmd.OutOrStdout(), cfg, res)
	return nil
}

// environ is the process environment; tests replace it.
var environ = os.Environ
