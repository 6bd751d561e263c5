package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	lint.GroupHTML:    "Rules about HTML structure, attributes and accessibility.",
	lint.GroupERB:     "Rules about ERB tags and their formatting.",
	lint.GroupHerb:    "Rules about herb's own disable comments.",
	lint.GroupParser:  "Rules surfacing parser diagnostics.",
	lint.GroupGeneral: "Rules that apply to the raw template source.",
}

var groupOrder = []string{lint.GroupHTML, lint.GroupERB, lint.GroupHerb, lint.GroupParser, lint.GroupGeneral}

// generateRuleDocs writes an index page plus one page per built-in rule.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	infos := rules.NewRegistry().All()
	grouped := groupRules(infos)

	if err := generateRulesIndex(outDir, len(infos), grouped); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, info := range infos {
		if err := writeRulePage(outDir, info); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", info.Name, err)
		}
	}
	log.Printf("  Generated %d rule pages", len(infos))

	return nil
}

// generateRulesIndex generates the rules overview page.
func generateRulesIndex(outDir string, total int, grouped map[string][]core.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Linter Rules", "Built-in lint rules for HTML+ERB templates")
	w.GeneratedMarker()

	w.Header(1, "Linter Rules")
	w.Paragraph(fmt.Sprintf("herb ships with **%d built-in rules**.", total))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Fails the run with exit code 1"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `.herb.yml`:")
	w.CodeBlock("yaml", `linter:
  rules:
    html-tag-name-lowercase:
      enabled: false       # disable rule
    erb-require-whitespace-inside-tags:
      severity: error      # override severity
      exclude:
        - "app/views/legacy/**"`)

	w.Header(2, "Disable Comments")
	w.Paragraph("Offenses on the next line can be suppressed inline:")
	w.CodeBlock("erb", `<%# herb:disable html-tag-name-lowercase %>
<DIV></DIV>`)

	titleCaser := cases.Title(language.English)
	for _, group := range groupOrder {
		infos := grouped[group]
		if len(infos) == 0 {
			continue
		}
		w.Header(2, titleCaser.String(group))
		w.Paragraph(groupDescriptions[group])

		var rows [][]string
		for _, info := range infos {
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s.md)", InlineCode(info.Name), info.Name),
				InlineCode(info.DefaultSeverity.String()),
				fixLabel(info),
				cleanDescription(info.Description),
			})
		}
		w.Table([]string{"Rule", "Severity", "Fix", "Description"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// writeRulePage writes detailed documentation for a single rule.
func writeRulePage(outDir string, info core.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter(info.Name, cleanDescription(info.Description))
	w.GeneratedMarker()

	w.Header(1, info.Name)
	w.Paragraph(cleanDescription(info.Description))

	enabled := "yes"
	if !info.EnabledByDefault {
		enabled = "no"
	}
	w.Table(
		[]string{"Property", "Value"},
		[][]string{
			{"Group", info.Group},
			{"Severity", InlineCode(info.DefaultSeverity.String())},
			{"Enabled by default", enabled},
			{"Autofix", fixLabel(info)},
			{"Type", info.Type},
		},
	)

	w.Header(2, "Configuration")
	w.CodeBlock("yaml", fmt.Sprintf(`linter:
  rules:
    %s:
      enabled: %t
      severity: %s`, info.Name, info.EnabledByDefault, info.DefaultSeverity))

	return os.WriteFile(filepath.Join(outDir, info.Name+".md"), w.Bytes(), 0600)
}

// groupRules organizes rules by group, sorted by name within each group.
func groupRules(infos []core.RuleInfo) map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, info := range infos {
		grouped[info.Group] = append(grouped[info.Group], info)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].Name < grouped[group][j].Name
		})
	}
	return grouped
}

func fixLabel(info core.RuleInfo) string {
	switch {
	case info.SafeAutofixable:
		return "safe"
	case info.UnsafeAutofixable:
		return "unsafe"
	default:
		return "-"
	}
}
