package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/herb/internal/cli/output"
	"github.com/leapstack-labs/herb/internal/config"
	"github.com/leapstack-labs/herb/internal/customrule"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/rules"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Loaded
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command and builds a renderer for the --format flag.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	return &CommandContext{
		Cfg:      config.GetConfig(ctx),
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format)),
	}
}

// Registry returns the built-in rules plus the custom rules of the
// configured rules directory.
func (c *CommandContext) Registry() (*lint.Registry, error) {
	registry := rules.NewRegistry()

	loader := customrule.NewLoader(c.Cfg.Linter.CustomRulesDir, c.Cfg.Linter.Concurrency, c.Logger)
	custom, err := loader.Load()
	if err != nil {
		return nil, err
	}
	for _, r := range custom {
		if registry.Has(r.Name()) {
			c.Logger.Info("custom rule overrides built-in", slog.String("rule", r.Name()), slog.String("file", r.Path))
		}
	}
	customrule.Register(registry, custom)
	if len(custom) > 0 {
		c.Logger.Debug("loaded custom rules", slog.Int("count", len(custom)), slog.String("dir", c.Cfg.Linter.CustomRulesDir))
	}
	return registry, nil
}

// displayPath shortens path to be relative to the working directory.
func displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
