package erb

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

var assetHelpers = []string{"image_path", "asset_path"}

// PreferImageTagHelper suggests image_tag over an <img> whose src is built
// from an asset helper.
type PreferImageTagHelper struct {
	lint.BaseRule
}

// NewPreferImageTagHelper creates the erb-prefer-image-tag-helper rule.
func NewPreferImageTagHelper() *PreferImageTagHelper {
	return &PreferImageTagHelper{lint.BaseRule{
		RuleName:        "erb-prefer-image-tag-helper",
		RuleDescription: "Prefer the image_tag helper over <img> with asset helpers in src.",
		Severity:        core.SeverityWarning,
	}}
}

type imageTagVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *PreferImageTagHelper) NewVisitor(p *lint.Pass) ast.Visitor {
	return &imageTagVisitor{pass: p}
}

func (v *imageTagVisitor) VisitElement(t *ast.Tree, id ast.NodeID) bool {
	if t.Node(id).LowerTagName() != "img" {
		return true
	}
	src, ok := t.Attribute(id, "src")
	if !ok {
		return true
	}
	for _, part := range t.Children(src) {
		n := t.Node(part)
		if !n.IsERBOutput() || !callsAssetHelper(n.Content) {
			continue
		}
		v.pass.AddOffense("Prefer `image_tag` helper over manual `<img>` with dynamic ERB expressions. Use `<%= image_tag ..., alt: \"...\" %>` instead.", t.Node(src).Span)
		break
	}
	return true
}

func callsAssetHelper(code string) bool {
	for _, h := range assetHelpers {
		if strings.Contains(code, h) {
			return true
		}
	}
	return false
}
