package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/testutil"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/linter"
	"github.com/leapstack-labs/herb/pkg/lint/rules/html"
)

func TestImgRequireAlt(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"missing alt", `<img src="a.png">`, 1},
		{"empty alt", `<img src="a.png" alt="">`, 0},
		{"uppercase", `<IMG SRC="a.png" ALT="x">`, 0},
		{"not an image", `<div></div>`, 0},
		{"two images", `<img><img alt="">`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testutil.Lint(t, tt.source, html.NewImgRequireAlt())
			assert.Len(t, got, tt.want)
		})
	}
}

func TestImgRequireAlt_Location(t *testing.T) {
	got := testutil.Lint(t, "<p>\n  <img src=\"a.png\">\n</p>\n", html.NewImgRequireAlt())
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Location.Start.Line)
	assert.Equal(t, 3, got[0].Location.Start.Column)
	assert.Equal(t, "html-img-require-alt", got[0].Rule)
}

func TestAttributeValuesRequireQuotes(t *testing.T) {
	rule := html.NewAttributeValuesRequireQuotes()

	assert.Len(t, testutil.Lint(t, `<div class=foo id="bar"></div>`, rule), 1)
	assert.Empty(t, testutil.Lint(t, `<input disabled>`, rule))

	res := testutil.Fix(t, `<div class=foo id=bar></div>`, false, rule)
	assert.Equal(t, `<div class="foo" id="bar"></div>`, res.Source)
	assert.Equal(t, 2, res.FixedCount())
	assert.Empty(t, res.Offenses)
}

func TestAttributeValuesRequireQuotes_ERBValue(t *testing.T) {
	res := testutil.Fix(t, `<div class=<%= css %>></div>`, false, html.NewAttributeValuesRequireQuotes())
	assert.Equal(t, `<div class="<%= css %>"></div>`, res.Source)
}

func TestAttributeDoubleQuotes(t *testing.T) {
	rule := html.NewAttributeDoubleQuotes()

	res := testutil.Fix(t, `<a href='/x' title='say "hi"'></a>`, false, rule)
	assert.Equal(t, `<a href="/x" title='say "hi"'></a>`, res.Source)
	assert.Equal(t, 1, res.FixedCount())
	assert.Empty(t, res.Offenses)
}

func TestTagNameLowercase(t *testing.T) {
	rule := html.NewTagNameLowercase()

	got := testutil.Lint(t, `<DIV><Span>x</Span></DIV>`, rule)
	assert.Len(t, got, 4)

	res := testutil.Fix(t, `<DIV class="a"><Span>x</Span></DIV>`, false, rule)
	assert.Equal(t, `<div class="a"><span>x</span></div>`, res.Source)
	assert.Empty(t, res.Offenses)
}

func TestTagNameLowercase_CloseTagOnly(t *testing.T) {
	rule := html.NewTagNameLowercase()

	got := testutil.Lint(t, "<div>\n</DIV>\n", rule)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "`</DIV>`")
	assert.Equal(t, 2, got[0].Location.Start.Line)
	assert.Equal(t, 1, got[0].Location.Start.Column)

	res := testutil.Fix(t, "<div>\n</DIV>\n", false, rule)
	assert.Equal(t, "<div>\n</div>\n", res.Source)
	assert.Empty(t, res.Offenses)

	assert.Empty(t, testutil.Lint(t, `<svg><linearGradient></LinearGradient></svg>`, rule))
}

func TestTagNameLowercase_SVG(t *testing.T) {
	rule := html.NewTagNameLowercase()
	source := `<svg><linearGradient id="g"></linearGradient></svg><DIV></DIV>`

	got := testutil.Lint(t, source, rule)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "<DIV>")
}

func TestTagNameLowercase_SVGDoesNotLeak(t *testing.T) {
	rule := html.NewTagNameLowercase()
	l := testutil.NewLinter(t, rule)

	// SVG depth is tracked per check, never across files.
	first := l.Lint("a.html.erb", `<svg><g></g></svg>`, linter.Options{})
	assert.Empty(t, first.Offenses)

	second := l.Lint("b.html.erb", `<Div></Div>`, linter.Options{})
	assert.Len(t, second.Offenses, 1)
}

func TestNoDuplicateAttributes(t *testing.T) {
	rule := html.NewNoDuplicateAttributes()

	got := testutil.Lint(t, `<div class="a" id="x" CLASS="b" class="c"></div>`, rule)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "`CLASS`")
	assert.Contains(t, got[1].Message, "`class`")
	assert.Empty(t, testutil.Lint(t, `<div class="a"></div><div class="b"></div>`, rule))
}

func TestBooleanAttributesNoValue(t *testing.T) {
	rule := html.NewBooleanAttributesNoValue()

	res := testutil.Fix(t, `<input disabled="disabled" type="checkbox" checked>`, false, rule)
	assert.Equal(t, `<input disabled type="checkbox" checked>`, res.Source)
	assert.Equal(t, 1, res.FixedCount())

	// dynamic values are left alone
	assert.Empty(t, testutil.Lint(t, `<input disabled="<%= off %>">`, rule))
}

func TestAnchorRequireHref(t *testing.T) {
	rule := html.NewAnchorRequireHref()

	assert.Len(t, testutil.Lint(t, `<a>click</a>`, rule), 1)
	assert.Empty(t, testutil.Lint(t, `<a href="#">click</a>`, rule))
	assert.Empty(t, testutil.Lint(t, `<a href="<%= root_path %>">home</a>`, rule))
}

func TestNoSelfClosing(t *testing.T) {
	rule := html.NewNoSelfClosing()
	source := `<br /><div/><svg><path d="M0"/></svg>`

	got := testutil.Lint(t, source, rule)
	assert.Len(t, got, 2)

	// unsafe: not applied at the safe tier
	safe := testutil.Fix(t, source, false, rule)
	assert.Equal(t, source, safe.Source)
	assert.Len(t, safe.Offenses, 2)

	unsafe := testutil.Fix(t, source, true, rule)
	assert.Equal(t, `<br><div></div><svg><path d="M0"/></svg>`, unsafe.Source)
	assert.Empty(t, unsafe.Offenses)
}

func TestNoUnknownTags(t *testing.T) {
	rule := html.NewNoUnknownTags()
	assert.False(t, rule.EnabledByDefault())

	got := testutil.Lint(t, `<div><fancybox>x</fancybox><my-widget></my-widget><svg><foo/></svg></div>`, rule)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "<fancybox>")

	configured, err := rule.Configure(lint.Options{"allow": []any{"fancybox"}})
	require.NoError(t, err)
	assert.Empty(t, testutil.Lint(t, `<fancybox>x</fancybox>`, configured))
}

func TestFactories(t *testing.T) {
	r := lint.NewRegistry()
	html.Register(r)

	assert.Equal(t, len(html.Factories), r.Len())
	for _, info := range r.All() {
		assert.Equal(t, lint.GroupHTML, info.Group, info.Name)
		assert.Equal(t, "visitor", info.Type, info.Name)
	}
}
