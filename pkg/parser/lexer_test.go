package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/pkg/token"
)

type tokenExpectation struct {
	typ token.TokenType
	lit string
}

func assertTokens(t *testing.T, input string, expected []tokenExpectation) {
	t.Helper()

	tokens, err := NewLexer(input).Tokenize()
	require.NoError(t, err, "unexpected error")
	require.Len(t, tokens, len(expected), "wrong number of tokens")

	for i, exp := range expected {
		assert.Equal(t, exp.typ, tokens[i].Type, "token[%d] type", i)
		assert.Equal(t, exp.lit, tokens[i].Literal, "token[%d] literal", i)
	}
}

func TestLexer_PlainText(t *testing.T) {
	assertTokens(t, "a < b <%% c", []tokenExpectation{
		{token.TEXT, "a < b <%% c"},
		{token.EOF, ""},
	})
}

func TestLexer_Element(t *testing.T) {
	assertTokens(t, `<div class="a" hidden>x</div>`, []tokenExpectation{
		{token.TAG_START, "<div"},
		{token.WHITESPACE, " "},
		{token.ATTR_NAME, "class"},
		{token.EQUALS, "="},
		{token.QUOTE, `"`},
		{token.VALUE, "a"},
		{token.QUOTE, `"`},
		{token.WHITESPACE, " "},
		{token.ATTR_NAME, "hidden"},
		{token.TAG_END, ">"},
		{token.TEXT, "x"},
		{token.END_TAG, "</div>"},
		{token.EOF, ""},
	})
}

func TestLexer_UnquotedValueAndSpacedEquals(t *testing.T) {
	assertTokens(t, `<a href = x id=y/>`, []tokenExpectation{
		{token.TAG_START, "<a"},
		{token.WHITESPACE, " "},
		{token.ATTR_NAME, "href"},
		{token.EQUALS, " = "},
		{token.VALUE, "x"},
		{token.WHITESPACE, " "},
		{token.ATTR_NAME, "id"},
		{token.EQUALS, "="},
		{token.VALUE, "y/"},
		{token.TAG_END, ">"},
		{token.EOF, ""},
	})
}

func TestLexer_ERB(t *testing.T) {
	assertTokens(t, "a<%= b %>c<%# d %>", []tokenExpectation{
		{token.TEXT, "a"},
		{token.ERB, "<%= b %>"},
		{token.TEXT, "c"},
		{token.ERB, "<%# d %>"},
		{token.EOF, ""},
	})
}

func TestLexer_RawText(t *testing.T) {
	assertTokens(t, "<script>a<b</script>", []tokenExpectation{
		{token.TAG_START, "<script"},
		{token.TAG_END, ">"},
		{token.TEXT, "a<b"},
		{token.END_TAG, "</script>"},
		{token.EOF, ""},
	})
}

func TestLexer_Positions(t *testing.T) {
	tokens, err := NewLexer("a\n  <br>").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	br := tokens[1]
	assert.Equal(t, token.TAG_START, br.Type)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 4}, br.Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 6, Offset: 7}, br.End)
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unclosed erb", "a <%= b", ErrUnclosedERB},
		{"unclosed comment", "<!-- a", ErrUnclosedComment},
		{"unterminated value", `<div class="a>`, ErrUnterminatedAttr},
		{"truncated tag", "<div class", "malformed tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Tokenize()
			require.Error(t, err)
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Contains(t, lexErr.Message, tt.msg)
		})
	}
}
