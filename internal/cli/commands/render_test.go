package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/cli/output"
	clitest "github.com/leapstack-labs/herb/internal/cli/testutil"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/linter"
	"github.com/leapstack-labs/herb/pkg/lint/runner"
	"github.com/leapstack-labs/herb/pkg/token"
)

func sampleResult() *runner.AggregatedResult {
	span := token.Span{
		Start: token.Position{Line: 3, Column: 5, Offset: 20},
		End:   token.Position{Line: 3, Column: 9, Offset: 24},
	}
	return &runner.AggregatedResult{
		Results: []*linter.Result{
			{FilePath: "views/a.html.erb", Offenses: []lint.Offense{
				{Rule: "html-img-require-alt", Message: "Missing alt attribute", Severity: core.SeverityError, Location: span},
			}},
			{FilePath: "views/b.html.erb"},
		},
		Errors:            1,
		FilesWithOffenses: 1,
		RuleCount:         23,
		Completed:         true,
	}
}

func TestRenderLintResult(t *testing.T) {
	tests := []struct {
		name     string
		renderer *clitest.CapturedRenderer
		want     []string
	}{
		{
			name:     "text",
			renderer: clitest.NewRenderer(output.ModeText, true),
			want:     []string{"views/a.html.erb", "3:5", "Missing alt attribute", "html-img-require-alt", "Checked 2 files with 23 rules"},
		},
		{
			name:     "markdown",
			renderer: clitest.NewRenderer(output.ModeMarkdown, false),
			want:     []string{"## views/a.html.erb", "- `3:5` **error** Missing alt attribute (`html-img-require-alt`)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, renderLintResult(tt.renderer.Renderer, sampleResult(), 2, runner.Options{}))

			out := tt.renderer.PlainStdout()
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "views/b.html.erb")
			assert.Contains(t, out, "Found 1 error, 0 warnings in 1 file")
		})
	}
}

func TestRenderLintResult_MarkdownIsPlain(t *testing.T) {
	tr := clitest.NewRenderer(output.ModeMarkdown, false)
	require.NoError(t, renderLintResult(tr.Renderer, sampleResult(), 2, runner.Options{}))

	clitest.AssertNoANSI(t, tr.Stdout())
	clitest.AssertValidMarkdown(t, tr.Stdout())
}

func TestRenderLintResult_JSON(t *testing.T) {
	tr := clitest.NewRenderer(output.ModeJSON, false)
	require.NoError(t, renderLintResult(tr.Renderer, sampleResult(), 2, runner.Options{}))
	clitest.AssertNoANSI(t, tr.Stdout())

	var got LintJSONOutput
	require.NoError(t, json.Unmarshal([]byte(tr.Stdout()), &got))
	require.Len(t, got.Offenses, 1)
	assert.Equal(t, 3, got.Offenses[0].Line)
	assert.Equal(t, 5, got.Offenses[0].Column)
	assert.Equal(t, 9, got.Offenses[0].EndColumn)
	assert.Equal(t, 23, got.Summary.Rules)
}

func TestRenderLintSummary_Disabled(t *testing.T) {
	tr := clitest.NewRenderer(output.ModeText, true)
	agg := &runner.AggregatedResult{Completed: false, Message: runner.DisabledMessage}

	require.NoError(t, renderLintResult(tr.Renderer, agg, 0, runner.Options{}))
	out := tr.PlainStdout()
	assert.Contains(t, out, "Linter is disabled")
	assert.NotContains(t, out, "Checked")
}
