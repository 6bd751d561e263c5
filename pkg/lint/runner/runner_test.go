package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/testutil"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/rules"
)

func writeFiles(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
		paths = append(paths, path)
	}
	return dir, paths
}

func newRunner(t *testing.T, cfg *core.Config) *Runner {
	t.Helper()
	return New(rules.NewRegistry(), cfg, WithLogger(testutil.NewTestLogger(t)), WithConcurrency(2))
}

func TestRun_Aggregates(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"a.html.erb": "<img src=\"a.png\">\n",
		"b.html.erb": "<p>ok</p>\n",
		"c.html.erb": "<%# herb:disable html-img-require-alt %>\n<img>\n",
		"d.html.erb": "<div>  \n</div>\n",
	})

	agg, err := newRunner(t, &core.Config{}).Run(context.Background(), paths, Options{})
	require.NoError(t, err)

	assert.True(t, agg.Completed)
	require.Len(t, agg.Results, 4)
	assert.Equal(t, 2, agg.Errors)
	assert.Equal(t, 2, agg.FilesWithOffenses)
	assert.Equal(t, 1, agg.IgnoredCount)
	assert.Equal(t, 1, agg.AutofixableCount)
	assert.Equal(t, 22, agg.RuleCount, "html-no-unknown-tags is off by default")
	assert.Equal(t, 2, agg.TotalOffenses())

	for i := 1; i < len(agg.Results); i++ {
		assert.Less(t, agg.Results[i-1].FilePath, agg.Results[i].FilePath)
	}
}

func TestRun_LinterDisabled(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.html.erb": "<img  >"})
	cfg := &core.Config{Linter: core.LinterConfig{Enabled: core.Bool(false)}}

	agg, err := newRunner(t, cfg).Run(context.Background(), paths, Options{Fix: true})
	require.NoError(t, err)

	assert.False(t, agg.Completed)
	assert.Equal(t, DisabledMessage, agg.Message)
	assert.Empty(t, agg.Results)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "<img  >", string(data))
}

func TestRun_ConfigErrorBeforeIO(t *testing.T) {
	tests := []struct {
		name  string
		rules map[string]core.RuleConfig
		want  string
	}{
		{
			name:  "unknown rule",
			rules: map[string]core.RuleConfig{"no-such-rule": {Enabled: core.Bool(true)}},
			want:  "no-such-rule",
		},
		{
			name:  "invalid severity",
			rules: map[string]core.RuleConfig{"html-img-require-alt": {Severity: "fatal"}},
			want:  `rule html-img-require-alt: invalid severity "fatal"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &core.Config{Linter: core.LinterConfig{Rules: tt.rules}}

			agg, err := newRunner(t, cfg).Run(context.Background(), []string{"/does/not/exist.html.erb"}, Options{})
			require.Error(t, err)
			assert.Nil(t, agg)

			var cfgErr *lint.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Len(t, cfgErr.Problems, 1)
			assert.Contains(t, cfgErr.Problems[0], tt.want)
		})
	}
}

func TestRun_FixWritesBack(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.html.erb": "<div class=foo>  \n</div>"})

	agg, err := newRunner(t, &core.Config{}).Run(context.Background(), paths, Options{Fix: true})
	require.NoError(t, err)
	assert.Equal(t, 3, agg.FixedCount)
	assert.Zero(t, agg.TotalOffenses())

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "<div class=\"foo\">\n</div>\n", string(data))

	info, err := os.Stat(paths[0])
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestRun_DuplicatePathsLintedOnce(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.html.erb": "<img>\n"})
	dup := filepath.Join(filepath.Dir(paths[0]), ".", "a.html.erb")

	agg, err := newRunner(t, &core.Config{}).Run(context.Background(), []string{paths[0], dup, paths[0]}, Options{})
	require.NoError(t, err)
	assert.Len(t, agg.Results, 1)
}

func TestRun_ReadErrorsDoNotStopOthers(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.html.erb": "<img>\n"})
	missing := filepath.Join(t.TempDir(), "missing.html.erb")

	agg, err := newRunner(t, &core.Config{}).Run(context.Background(), []string{missing, paths[0]}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NotNil(t, agg)
	assert.Len(t, agg.Results, 1)
	assert.Equal(t, 1, agg.Errors)
}

func TestRun_PerRuleConfig(t *testing.T) {
	dir, _ := writeFiles(t, map[string]string{
		"app/a.html.erb":       "<img>\n",
		"app/admin/b.html.erb": "<img>\n",
	})
	t.Chdir(dir)
	paths := []string{"app/a.html.erb", "app/admin/b.html.erb"}
	cfg := &core.Config{Linter: core.LinterConfig{Rules: map[string]core.RuleConfig{
		"html-img-require-alt": {Severity: "warning", Exclude: []string{"**/admin/**"}},
	}}}

	agg, err := newRunner(t, cfg).Run(context.Background(), paths, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, agg.Errors)
	assert.Equal(t, 1, agg.Warnings)
}

func TestRun_Canceled(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.html.erb": "<img>\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg, err := newRunner(t, &core.Config{}).Run(ctx, paths, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, agg)
	assert.Empty(t, agg.Results)
}
