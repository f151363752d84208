package main

import (
	"github.com/spf13/cobra"
)

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "cleanup [-- <cleaner> [args...]]",
		Short:       "Remove build artifacts (supervised)",
		GroupID:     GroupBuild,
		Annotations: requiresVCS,
		Long: `Run the build artifact cleanup under the same supervision as build:
the output is logged, filtered and stall-guarded. The cleaner command
defaults to make clean; give an explicit one after --.`,
		Example: `  bt cleanup
  bt cleanup -- make distclean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := args
			if len(argv) == 0 {
				argv = []string{"make", "clean"}
			}
			return runSupervised(cmd.Context(), "cleanup", argv)
		},
	}
}
