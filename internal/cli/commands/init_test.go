package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	clitest "github.com/leapstack-labs/herb/internal/cli/testutil"
	"github.com/leapstack-labs/herb/pkg/core"
)

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		args     []string
		wantErr  bool
	}{
		{name: "empty directory"},
		{name: "existing config without force", existing: true, wantErr: true},
		{name: "existing config with force", existing: true, args: []string{"--force"}},
		{name: "into subdirectory", args: []string{"site"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := clitest.SetupProject(t, nil)
			if tt.existing {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".herb.yml"), []byte("existing"), 0o600))
			}

			out, err := execute(t, NewInitCommand(), nil, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Created")

			target := ".herb.yml"
			if len(tt.args) > 0 && tt.args[0] == "site" {
				target = filepath.Join("site", ".herb.yml")
			}
			data, err := os.ReadFile(target)
			require.NoError(t, err)

			var cfg core.Config
			require.NoError(t, yaml.Unmarshal(data, &cfg))
			require.NoError(t, cfg.Validate())
			assert.False(t, cfg.EnabledRule("html-no-unknown-tags", true))
			assert.True(t, cfg.EnabledRule("html-img-require-alt", false))
		})
	}
}
