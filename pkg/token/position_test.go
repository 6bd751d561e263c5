package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func span(start, end int) Span {
	return Span{Start: Position{Offset: start}, End: Position{Offset: end}}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", span(0, 2), span(3, 5), false},
		{"adjacent", span(0, 3), span(3, 5), false},
		{"partial", span(0, 4), span(3, 5), true},
		{"nested", span(0, 10), span(3, 5), true},
		{"identical", span(2, 4), span(2, 4), true},
		{"insertion inside range", span(3, 3), span(1, 5), true},
		{"insertion at range start", span(1, 1), span(1, 5), false},
		{"two insertions", span(2, 2), span(2, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "symmetric")
		})
	}
}

func TestSpanAt(t *testing.T) {
	src := "ab\ncd"
	s := SpanAt(src, 1, 4)
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, s.Start)
	assert.Equal(t, Position{Line: 2, Column: 2, Offset: 4}, s.End)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(4))
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 5}, PositionAt(src, 99))
}
