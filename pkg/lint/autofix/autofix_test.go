package autofix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/testutil"
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/autofix"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
	"github.com/leapstack-labs/herb/pkg/parser"
)

// quoteRule quotes unquoted attribute values through the tree.
type quoteRule struct{ lint.BaseRule }

type quoteVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

func (r *quoteRule) NewVisitor(p *lint.Pass) ast.Visitor { return &quoteVisitor{pass: p} }

func (v *quoteVisitor) VisitAttribute(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.HasValue() && n.Quote == 0 {
		v.pass.AddOffenseWithAutofix("unquoted", n.Span, id)
	}
	return false
}

func (r *quoteRule) Autofix(t *ast.Tree, id ast.NodeID) bool {
	t.Rebuild(id, func(n *ast.Node) { n.Quote = '"' })
	return true
}

// replaceRule rewrites every occurrence of from with to in the source.
type replaceRule struct {
	lint.BaseRule
	from, to string
}

func (r *replaceRule) CheckSource(p *lint.Pass) {
	for i := 0; ; {
		j := strings.Index(p.Source[i:], r.from)
		if j < 0 {
			return
		}
		start := i + j
		p.AddOffenseWithSourceAutofix("found "+r.from, p.Span(start, start+len(r.from)), start, start+len(r.from))
		i = start + len(r.from)
	}
}

func (r *replaceRule) AutofixSource(o lint.Offense, source string) (string, bool) {
	fix := o.Autofix.(lint.SourceFix)
	return source[:fix.Start] + r.to + source[fix.End:], true
}

// wholeLineRule claims the first line and fails or misbehaves on demand.
type wholeLineRule struct {
	lint.BaseRule
	mode string // "fail", "outside"
}

func (r *wholeLineRule) CheckSource(p *lint.Pass) {
	end := strings.IndexByte(p.Source, '\n')
	if end < 0 {
		end = len(p.Source)
	}
	p.AddOffenseWithSourceAutofix("line", p.Span(0, end), 0, end)
}

func (r *wholeLineRule) AutofixSource(_ lint.Offense, source string) (string, bool) {
	if r.mode == "outside" {
		return source + "extra", true
	}
	return "", false
}

func newChecker(t *testing.T, rules ...lint.Rule) autofix.CheckFunc {
	t.Helper()
	instances := make([]*lint.Instance, len(rules))
	for i, r := range rules {
		instances[i] = &lint.Instance{Rule: r, Severity: r.DefaultSeverity()}
	}
	return func(source string) (autofix.Checked, bool) {
		res := parser.Parse(source)
		if !res.OK() {
			return autofix.Checked{}, false
		}
		doc := &lint.Document{Source: source, Tree: res.Tree, Directives: directive.Parse(res.Tree, directive.ModeLinter)}
		var offenses []lint.Offense
		for _, inst := range instances {
			found, failure := lint.Check(inst, doc)
			require.Nil(t, failure)
			offenses = append(offenses, found...)
		}
		filtered := directive.Filter(doc.Directives, offenses, false)
		return autofix.Checked{Tree: res.Tree, Offenses: filtered.Kept}, true
	}
}

func safeBase(name string) lint.BaseRule {
	return lint.BaseRule{RuleName: name, Safe: true}
}

func TestApply_NodeFix(t *testing.T) {
	check := newChecker(t, &quoteRule{safeBase("quote")})
	c, ok := check(`<div class=foo id=bar></div>`)
	require.True(t, ok)
	require.Len(t, c.Offenses, 2)

	res := autofix.New().Apply(c.Tree, `<div class=foo id=bar></div>`, c.Offenses)
	assert.Equal(t, `<div class="foo" id="bar"></div>`, res.Source)
	assert.Len(t, res.Fixed, 2)
	assert.Empty(t, res.Open)
}

func TestApply_SourceFixesDescendingOrder(t *testing.T) {
	source := "aa x aa"
	check := newChecker(t, &replaceRule{BaseRule: safeBase("replace"), from: "aa", to: "bbbb"})
	c, ok := check(source)
	require.True(t, ok)

	res := autofix.New().Apply(c.Tree, source, c.Offenses)
	assert.Equal(t, "bbbb x bbbb", res.Source)
	assert.Len(t, res.Fixed, 2)
}

func TestApply_OverlappingSourceFixesStayOpen(t *testing.T) {
	source := "abc\n"
	check := newChecker(t,
		&replaceRule{BaseRule: safeBase("replace-bc"), from: "bc", to: "X"},
		&replaceRule{BaseRule: safeBase("replace-ab"), from: "ab", to: "Y"},
	)
	c, ok := check(source)
	require.True(t, ok)
	require.Len(t, c.Offenses, 2)

	res := autofix.New().Apply(c.Tree, source, c.Offenses)
	assert.Equal(t, "aX\n", res.Source)
	require.Len(t, res.Fixed, 1)
	assert.Equal(t, "replace-bc", res.Fixed[0].Rule)
	require.Len(t, res.Open, 1)
	assert.Equal(t, "replace-ab", res.Open[0].Rule)
}

func TestApply_AdjacentSourceFixesBothApply(t *testing.T) {
	source := "abab\n"
	check := newChecker(t, &replaceRule{BaseRule: safeBase("replace"), from: "ab", to: "Z"})
	c, ok := check(source)
	require.True(t, ok)
	require.Len(t, c.Offenses, 2)

	res := autofix.New().Apply(c.Tree, source, c.Offenses)
	assert.Equal(t, "ZZ\n", res.Source)
	assert.Len(t, res.Fixed, 2)
	assert.Empty(t, res.Open)
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name     string
		r, prev  lint.SourceFix
		conflict bool
	}{
		{"before", lint.SourceFix{Start: 0, End: 2}, lint.SourceFix{Start: 4, End: 6}, false},
		{"adjacent", lint.SourceFix{Start: 0, End: 4}, lint.SourceFix{Start: 4, End: 6}, false},
		{"overlapping", lint.SourceFix{Start: 0, End: 5}, lint.SourceFix{Start: 4, End: 6}, true},
		{"same start", lint.SourceFix{Start: 4, End: 4}, lint.SourceFix{Start: 4, End: 6}, true},
		{"covers insertion", lint.SourceFix{Start: 2, End: 6}, lint.SourceFix{Start: 4, End: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, autofix.Conflicts(tt.r.Range(), tt.prev.Range()))
		})
	}
}

func TestApply_StaleSourceFixesAfterNodeFix(t *testing.T) {
	source := "<p class=a>zz</p>"
	check := newChecker(t,
		&quoteRule{safeBase("quote")},
		&replaceRule{BaseRule: safeBase("replace"), from: "zz", to: "y"},
	)
	c, ok := check(source)
	require.True(t, ok)

	res := autofix.New().Apply(c.Tree, source, c.Offenses)
	assert.Equal(t, `<p class="a">zz</p>`, res.Source)
	require.Len(t, res.Open, 1)
	assert.Equal(t, "replace", res.Open[0].Rule)
}

func TestApply_FailedFixesStayOpen(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{"returns false", "fail"},
		{"edits outside range", "outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "hello\n"
			check := newChecker(t, &wholeLineRule{BaseRule: safeBase("line"), mode: tt.mode})
			c, ok := check(source)
			require.True(t, ok)

			res := autofix.New(autofix.WithLogger(testutil.NewTestLogger(t))).Apply(c.Tree, source, c.Offenses)
			assert.Equal(t, source, res.Source)
			assert.Empty(t, res.Fixed)
			assert.Len(t, res.Open, 1)
		})
	}
}

func TestApply_UnsafeTier(t *testing.T) {
	source := "<p class=a></p>"
	rule := &quoteRule{lint.BaseRule{RuleName: "quote", Unsafe: true}}
	check := newChecker(t, rule)

	c, _ := check(source)
	res := autofix.New().Apply(c.Tree, source, c.Offenses)
	assert.Equal(t, source, res.Source, "unsafe fixes are never applied implicitly")
	assert.Len(t, res.Open, 1)

	c, _ = check(source)
	res = autofix.New(autofix.WithUnsafe(true)).Apply(c.Tree, source, c.Offenses)
	assert.Equal(t, `<p class="a"></p>`, res.Source)
	assert.Len(t, res.Fixed, 1)
}

func TestRun_Converges(t *testing.T) {
	// Each pass turns one "aa" into "a"; "aaaa" needs several passes.
	check := newChecker(t, &replaceRule{BaseRule: safeBase("shrink"), from: "aa", to: "a"})

	out := autofix.New().Run("aaaa\n", check)
	assert.Equal(t, "a\n", out.Source)
	assert.True(t, out.Converged)
	assert.Empty(t, out.Open)
	assert.Len(t, out.Fixed, 3)
	assert.LessOrEqual(t, out.Passes, autofix.MaxPasses)
}

func TestRun_BoundedByMaxPasses(t *testing.T) {
	// Two rules that undo each other never converge.
	check := newChecker(t,
		&replaceRule{BaseRule: safeBase("a-to-b"), from: "a", to: "b"},
		&replaceRule{BaseRule: safeBase("b-to-a"), from: "b", to: "a"},
	)

	out := autofix.New().Run("a\n", check)
	assert.Equal(t, autofix.MaxPasses, out.Passes)
	assert.False(t, out.Converged)
	assert.Len(t, out.Open, 1)
}

func TestRun_RevertsUnparsableOutput(t *testing.T) {
	check := newChecker(t, &replaceRule{BaseRule: safeBase("break"), from: "</p>", to: ""})

	out := autofix.New(autofix.WithLogger(testutil.NewTestLogger(t))).Run("<p>x</p>\n", check)
	assert.Equal(t, "<p>x</p>\n", out.Source)
	assert.True(t, out.Reverted)
	assert.Empty(t, out.Fixed)
	assert.Len(t, out.Open, 1)
}

func TestRun_NothingToFix(t *testing.T) {
	check := newChecker(t, &quoteRule{safeBase("quote")})

	out := autofix.New().Run(`<p class="a"></p>`, check)
	assert.True(t, out.Converged)
	assert.Equal(t, 1, out.Passes)
	assert.False(t, out.Changed(`<p class="a"></p>`))
}
