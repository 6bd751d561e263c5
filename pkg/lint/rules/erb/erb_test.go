package erb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/testutil"
	"github.com/leapstack-labs/herb/pkg/lint/rules/erb"
)

func TestNoEmptyTags(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"empty statement", `<% %>`, 1},
		{"empty output", `<%= %>`, 1},
		{"blank multiline", "<%\n  %>", 1},
		{"empty comment is fine", `<%# %>`, 0},
		{"content", `<%= name %>`, 0},
		{"in attribute", `<div class="<% %>"></div>`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, testutil.Lint(t, tt.source, erb.NewNoEmptyTags()), tt.want)
		})
	}
}

func TestPreferImageTagHelper(t *testing.T) {
	rule := erb.NewPreferImageTagHelper()

	got := testutil.Lint(t, `<img src="<%= image_path("logo.png") %>" alt="Logo">`, rule)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "image_tag")

	assert.Len(t, testutil.Lint(t, `<img src="<%= asset_path 'a.png' %>">`, rule), 1)
	assert.Empty(t, testutil.Lint(t, `<img src="<%= user.avatar_url %>">`, rule))
	assert.Empty(t, testutil.Lint(t, `<img src="/logo.png">`, rule))
}

func TestRightTrim(t *testing.T) {
	rule := erb.NewRightTrim()

	assert.Empty(t, testutil.Lint(t, `<% if x -%>`+"\n"+`<% end %>`, rule))

	res := testutil.Fix(t, `<% items.each do |i| =%>`+"\n"+`<% end %>`, false, rule)
	assert.Equal(t, `<% items.each do |i| -%>`+"\n"+`<% end %>`, res.Source)
	assert.Equal(t, 1, res.FixedCount())
}

func TestRequireWhitespaceInsideTags(t *testing.T) {
	rule := erb.NewRequireWhitespaceInsideTags()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"both sides", `<%=name%>`, `<%= name %>`},
		{"left only", `<%=name %>`, `<%= name %>`},
		{"right only", `<% if x%>`, `<% if x %>`},
		{"trim closer", `<%-foo-%>`, `<%- foo -%>`},
		{"already spaced", `<%= name %>`, `<%= name %>`},
		{"blank left alone", `<% %>`, `<% %>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.Fix(t, tt.source, false, rule)
			assert.Equal(t, tt.want, res.Source)
			assert.Empty(t, res.Offenses)
		})
	}
}

func TestCommentSyntax(t *testing.T) {
	rule := erb.NewCommentSyntax()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"statement", `<% # note %>`, `<%# note %>`},
		{"output", `<%= # note %>`, `<%# note %>`},
		{"already a comment", `<%# note %>`, `<%# note %>`},
		{"code after comment line", "<% # a\nfoo %>", "<% # a\nfoo %>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.Fix(t, tt.source, false, rule)
			assert.Equal(t, tt.want, res.Source)
		})
	}
}

func TestFixesCompose(t *testing.T) {
	res := testutil.Fix(t, `<%#note%><%=x=%>`, false,
		erb.NewRequireWhitespaceInsideTags(), erb.NewRightTrim())

	assert.Equal(t, `<%# note %><%= x -%>`, res.Source)
	assert.Empty(t, res.Offenses)
}
