package commands

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/config"
	"github.com/leapstack-labs/herb/internal/testutil"
	"github.com/leapstack-labs/herb/pkg/core"
)

// execute runs cmd with args against cfg and returns its combined output.
func execute(t *testing.T, cmd *cobra.Command, cfg *core.Config, args ...string) (string, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	wd, err := os.Getwd()
	require.NoError(t, err)

	ctx := config.WithConfig(context.Background(), &config.Loaded{Config: cfg, Root: wd})
	ctx = context.WithValue(ctx, config.LoggerKey(), testutil.NewTestLogger(t))

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SetContext(ctx)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err = cmd.Execute()
	return buf.String(), err
}

