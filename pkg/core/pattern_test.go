package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMatcher_Match(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		only    []string
		path    string
		want    bool
	}{
		{name: "include match", include: []string{"app/**/*.erb"}, path: "app/views/a.html.erb", want: true},
		{name: "include miss", include: []string{"app/**/*.erb"}, path: "lib/a.html.erb", want: false},
		{name: "exclude wins", include: []string{"**/*.erb"}, exclude: []string{"vendor/**"}, path: "vendor/x.erb", want: false},
		{name: "only overrides include", include: []string{"lib/**"}, only: []string{"app/**"}, path: "app/a.erb", want: true},
		{name: "only miss", only: []string{"app/**"}, path: "lib/a.erb", want: false},
		{name: "exclude only", exclude: []string{"**/_*.erb"}, path: "app/show.erb", want: true},
		{name: "base name pattern", include: []string{"*.html.erb"}, path: "app/views/show.html.erb", want: true},
		{name: "dot slash prefix", include: []string{"app/**"}, path: "./app/show.erb", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewPatternMatcher(tt.include, tt.exclude, tt.only)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestPatternMatcher_NilMatchesEverything(t *testing.T) {
	m, err := NewPatternMatcher(nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.True(t, m.Match("anything.erb"))
}

func TestNewPatternMatcher_InvalidPattern(t *testing.T) {
	_, err := NewPatternMatcher([]string{"[a-"}, nil, nil)
	assert.Error(t, err)
}
