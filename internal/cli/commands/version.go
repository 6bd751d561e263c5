package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/herb/pkg/lint/rules"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Print the herb version, the number of built-in rules and the Go toolchain it was built with.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "herb v%s\n", version)
			_, _ = fmt.Fprintf(out, "%d built-in rules, %s %s/%s\n",
				rules.NewRegistry().Len(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
