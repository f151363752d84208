package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/log"
)

func newJumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "jump <[user@]host[:path]>",
		Short:       "Sync the worktree source to a jump station",
		GroupID:     GroupBuild,
		Args:        cobra.ExactArgs(1),
		Annotations: requiresVCS,
		Long: `Mirror the current worktree's source onto a remote build host with
rsync, excluding VCS metadata and local bt state. The remote path
defaults to the worktree's base name in the remote home directory.

The sync runs under the supervisor, so it is logged, stall-guarded and
cancelable like a build. When the worktree has a BMC configured, its
address is logged for reference.`,
		Example: `  bt jump dev@buildhost
  bt jump buildhost:/work/bios`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target := args[0]
			if !strings.Contains(target, ":") {
				target = fmt.Sprintf("%s:%s/", target, filepath.Base(wctx.Root))
			}

			if bmc, err := store.BMCInfo(); err != nil {
				return err
			} else if bmc != nil {
				log.FromContext(ctx).Debug("target platform BMC",
					"kind", bmc.Kind, "ip", bmc.IP, "user", bmc.User)
			}

			argv := []string{
				"rsync", "-az", "--delete",
				"--exclude", ".git",
				"--exclude", ".svn",
				"--exclude", config.LocalDirName,
				wctx.Root + "/",
				target,
			}
			return runSupervised(ctx, "jump", argv)
		},
	}
}
