package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/herb/internal/config"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/rules"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "linter" or "rule"
}

// getConfigSchema returns the .herb.yml schema, mirroring core.LinterConfig and core.RuleConfig.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "linter.enabled", Type: "bool", Default: "true", Description: "Set to false to skip linting entirely", Category: "linter"},
		{Name: "linter.include", Type: "[]string", Default: strings.Join(config.DefaultInclude, ", "), Description: "Glob patterns of files to lint, relative to the config file", Category: "linter"},
		{Name: "linter.exclude", Type: "[]string", Default: strings.Join(config.DefaultExclude, ", "), Description: "Glob patterns of files to skip", Category: "linter"},
		{Name: "linter.custom_rules_dir", Type: "string", Default: config.DefaultCustomRulesDir, Description: "Directory of Starlark custom rules", Category: "linter"},
		{Name: "linter.concurrency", Type: "int", Default: "number of CPUs", Description: "Number of files linted in parallel", Category: "linter"},
		{Name: "linter.docs_url", Type: "string", Default: lint.DefaultDocsBaseURL, Description: "Base URL of the rule documentation links", Category: "linter"},

		{Name: "enabled", Type: "bool", Description: "Enable or disable the rule", Category: "rule"},
		{Name: "severity", Type: "string", Description: "Override severity: error, warning, info or hint", Category: "rule"},
		{Name: "include", Type: "[]string", Description: "Only run the rule on files matching these globs", Category: "rule"},
		{Name: "exclude", Type: "[]string", Description: "Never run the rule on files matching these globs", Category: "rule"},
		{Name: "only", Type: "[]string", Description: "Run the rule on these globs, ignoring include", Category: "rule"},
		{Name: "options", Type: "map", Description: "Rule-specific options", Category: "rule"},
	}
}

// generateConfigDocs generates the .herb.yml reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "herb configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("herb reads %s from the working directory or the nearest parent directory. "+
		"Run %s to create one.", InlineCode(config.FileNames[0]), InlineCode("herb init")))

	fields := getConfigSchema()

	w.Header(2, "Linter Options")
	writeFieldTable(w, fields, "linter")

	w.Header(2, "Rule Options")
	w.Paragraph(fmt.Sprintf("Each entry under %s accepts:", InlineCode("linter.rules.<rule-name>")))
	writeFieldTable(w, fields, "rule")

	w.Header(2, "Default File")
	content, err := config.DefaultFile(rules.NewRegistry().All())
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	w.CodeBlock("yaml", string(content))

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

func writeFieldTable(w *MarkdownWriter, fields []ConfigField, category string) {
	var rows [][]string
	for _, f := range fields {
		if f.Category != category {
			continue
		}
		def := f.Default
		if def == "" {
			def = "-"
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)
}
