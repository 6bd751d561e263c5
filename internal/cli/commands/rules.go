package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/herb/internal/cli/output"
	"github.com/leapstack-labs/herb/pkg/core"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group string // html, erb, herb, parser or general
	Type  string // visitor, source or directive
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available lint rules",
		Long: `List the built-in and custom lint rules with their default severity,
whether they run by default and which fixes they offer.`,
		Example: `  # List all rules
  herb rules

  # Show one rule
  herb rules html-img-require-alt

  # List ERB rules only
  herb rules --group erb

  # Output as JSON
  herb rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format: auto, text, markdown, json")
	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type: visitor, source, directive")

	return cmd
}

func ruleInfos(cc *CommandContext) ([]core.RuleInfo, error) {
	registry, err := cc.Registry()
	if err != nil {
		return nil, err
	}
	infos := registry.All()
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Group != infos[j].Group {
			return infos[i].Group < infos[j].Group
		}
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	infos, err := ruleInfos(cc)
	if err != nil {
		return err
	}
	infos = filterRules(infos, opts)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(RulesJSONOutput{Rules: infos, Count: len(infos)})
	}

	t := r.Table()
	t.AppendHeader(table.Row{"Rule", "Severity", "Default", "Fix", "Description"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.Name,
			info.DefaultSeverity.String(),
			enabledLabel(info.EnabledByDefault),
			fixLabel(info),
			info.Description,
		})
	}
	r.RenderTable(t)
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("%s. Use 'herb rules <rule-name>' for details.", pluralize(len(infos), "rule", "rules"))))
	return nil
}

func filterRules(infos []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" && opts.Type == "" {
		return infos
	}
	var filtered []core.RuleInfo
	for _, info := range infos {
		if opts.Group != "" && info.Group != opts.Group {
			continue
		}
		if opts.Type != "" && info.Type != opts.Type {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

func showRule(cmd *cobra.Command, name string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	infos, err := ruleInfos(cc)
	if err != nil {
		return err
	}
	var rule *core.RuleInfo
	for i := range infos {
		if infos[i].Name == name {
			rule = &infos[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", name)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		r.Printf("# %s\n\n", rule.Name)
		r.Printf("**Group:** %s | **Type:** %s | **Severity:** `%s` | **Fix:** %s\n\n", rule.Group, rule.Type, rule.DefaultSeverity, fixLabel(*rule))
		r.Println(rule.Description)
		if rule.DocumentationURL != "" {
			r.Printf("\n[Documentation](%s)\n", rule.DocumentationURL)
		}
		return nil
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(rule.Name))
	r.Println("")
	r.Println("  " + rule.Description)
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Type"), rule.Type)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), styles.Severity(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Default"), enabledLabel(rule.EnabledByDefault))
	r.Printf("  %s: %s\n", styles.Bold.Render("Fix"), fixLabel(*rule))
	if rule.DocumentationURL != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), rule.DocumentationURL)
	}
	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
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

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count int             `json:"count"`
}
