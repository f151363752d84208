package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "build [-- <builder> [args...]]",
		Short:       "Run a supervised build of the current worktree",
		GroupID:     GroupBuild,
		Annotations: requiresVCS,
		Long: `Run the platform build under supervision: output is captured to a
log artifact under ~/.bt/logs, noise is suppressed through the filter
table, progress lines drive a live progress bar, and diagnostics are
echoed in structured form. The warnings setting controls whether warning
diagnostics are shown; the release setting selects the build type passed
to the builder.

The builder command defaults to make; give an explicit one after --.`,
		Example: `  bt build
  bt build -- make -j8
  bt b                     # abbreviations work`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wctx.Uninitialized {
				return fmt.Errorf("worktree is not initialized (run 'bt init <platform>')")
			}

			argv := args
			if len(argv) == 0 {
				name, err := store.GetExpanded(config.Local, "name")
				if err != nil {
					return err
				}
				argv = []string{"make", "BUILDTYPE=" + store.BuildType()}
				if name != "" {
					argv = append(argv, "PLATFORM="+name)
				}
			}
			return runSupervised(cmd.Context(), "build", argv)
		},
	}
}
