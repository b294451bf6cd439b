package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/config"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/keys"
)

// printSummary writes the post-render summary. Styles are bound to w, so
// color is dropped when w is not a terminal.
func printSummary(w io.Writer, cfg *config.Config, res *keys.Resolution) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	label := r.NewStyle().Foreground(lipgloss.Color("241")).Width(12)
	value := r.NewStyle().Foreground(lipgloss.Color("39"))

	fmt.Fprintln(w, title.Render("✓ Rendered "+cfg.OutputPath))
	row := func(name, v string) {
		fmt.Fprintln(w, "  "+label.Render(name)+value.Render(v))
	}
	row("Username", cfg.Username)
	row("Repository", cfg.RepoURL)
	row("SSH keys", fmt.Sprintf("%d (from %s)", len(res.Keys), res.Source))
	row("Template", cfg.TemplatePath)
}
