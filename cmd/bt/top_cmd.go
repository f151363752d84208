package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/log"
	"github.com/LowellDennis/bt/internal/output"
)

func newTopCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:         "top",
		Short:       "Print the repository root",
		GroupID:     GroupRepository,
		Args:        cobra.NoArgs,
		Annotations: requiresVCS,
		Long: `Print the primary repository root of the enclosing worktree.
The output is a single path, suitable for command substitution:

  cd $(bt top)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			out.Println(wctx.RepoRoot)

			if copyToClipboard {
				if err := clipboard.WriteAll(wctx.RepoRoot); err != nil {
					// Clipboard access fails on headless machines; the
					// path was printed, so just note it.
					log.FromContext(ctx).Debug("clipboard write failed", "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Also copy the path to the clipboard")
	return cmd
}
