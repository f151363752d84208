package main

import (
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/log"
	"github.com/LowellDennis/bt/internal/output"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "init <platform-name>",
		Short:       "Initialize the worktree's local configuration",
		GroupID:     GroupWorktree,
		Args:        cobra.ExactArgs(1),
		Annotations: requiresVCS,
		Long: `Create the worktree's local configuration (.bt/local.cfg) and record
the platform name plus the detected host facts: current branch, host OS,
CPU vendor and CPU type. Configurable settings (alert, bmc, release,
warnings) start empty.

Running init again re-detects the recorded facts and keeps the
configurable settings.`,
		Example: `  bt init U66`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if err := store.AttachLocal(wctx.Root); err != nil {
				return err
			}

			v, err := currentVCS()
			if err != nil {
				return err
			}
			branch, err := v.CurrentBranch(ctx)
			if err != nil {
				return err
			}

			vendor, cpu := cpuInfo()
			facts := map[string]string{
				"name":     args[0],
				"branch":   branch,
				"platform": platformLabel(),
				"vendor":   vendor,
				"cpu":      cpu,
			}
			for key, value := range facts {
				if err := store.SetSystem(config.Local, key, value); err != nil {
					return err
				}
			}

			if err := trackWorktree(wctx.Root); err != nil {
				return err
			}

			log.FromContext(ctx).Debug("initialized worktree",
				"root", wctx.Root, "platform", args[0], "branch", branch)
			out.Printf("Initialized %s for platform %s (branch %s, %s/%s)\n",
				wctx.Root, args[0], branch, vendor, cpu)
			return nil
		},
	}
}
