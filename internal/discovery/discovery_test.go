package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/pkg/core"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		"app/views/home/index.html.erb",
		"app/views/home/_card.html.erb",
		"app/views/layouts/application.html.erb",
		"app/assets/app.css",
		"vendor/gem/views/x.html.erb",
		"README.md",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<p></p>\n"), 0o644))
	}
	return dir
}

func rel(t *testing.T, base string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(base, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func matcher(t *testing.T) *core.PatternMatcher {
	t.Helper()
	m, err := core.NewPatternMatcher([]string{"**/*.html.erb"}, []string{"vendor/**"}, nil)
	require.NoError(t, err)
	return m
}

func TestDiscover_Directory(t *testing.T) {
	dir := setupTree(t)

	files, err := Discover(Options{BaseDir: dir, Matcher: matcher(t)})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"app/views/home/_card.html.erb",
		"app/views/home/index.html.erb",
		"app/views/layouts/application.html.erb",
	}, rel(t, dir, files))
}

func TestDiscover_ExplicitFileBypassesInclude(t *testing.T) {
	dir := setupTree(t)
	readme := filepath.Join(dir, "README.md")
	vendored := filepath.Join(dir, "vendor", "gem", "views", "x.html.erb")

	files, err := Discover(Options{BaseDir: dir, Paths: []string{readme, vendored}, Matcher: matcher(t)})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, rel(t, dir, files))
}

func TestDiscover_Glob(t *testing.T) {
	dir := setupTree(t)

	files, err := Discover(Options{
		BaseDir: dir,
		Paths:   []string{filepath.Join(dir, "app", "views", "home", "*.erb")},
		Matcher: matcher(t),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app/views/home/_card.html.erb", "app/views/home/index.html.erb"}, rel(t, dir, files))
}

func TestDiscover_Deduplicates(t *testing.T) {
	dir := setupTree(t)
	views := filepath.Join(dir, "app", "views")

	files, err := Discover(Options{
		BaseDir: dir,
		Paths:   []string{views, filepath.Join(views, "home", "index.html.erb"), views + "/"},
	})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscover_NoMatch(t *testing.T) {
	dir := setupTree(t)

	_, err := Discover(Options{BaseDir: dir, Paths: []string{filepath.Join(dir, "nothing", "*.erb")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestMatchFunc(t *testing.T) {
	dir := setupTree(t)
	match := MatchFunc(dir, matcher(t))

	assert.True(t, match(filepath.Join(dir, "app", "views", "home", "index.html.erb")))
	assert.False(t, match(filepath.Join(dir, "vendor", "gem", "views", "x.html.erb")))
	assert.False(t, match(filepath.Join(dir, "README.md")))
}
