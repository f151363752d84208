package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/ui"
)

// purposeFileName stores a worktree's free-text purpose note inside its
// .bt directory.
const purposeFileName = "purpose"

func newWorktreesCmd() *cobra.Command {
	var purpose string

	cmd := &cobra.Command{
		Use:         "worktrees",
		Short:       "List worktrees with branch and platform",
		GroupID:     GroupWorktree,
		Args:        cobra.NoArgs,
		Annotations: requiresVCS,
		Long: `List the worktrees of the current repository with their branch,
platform name and purpose note. The current worktree is marked with *.

With --purpose, set the purpose note of the current worktree instead.`,
		Example: `  bt worktrees
  bt worktrees --purpose "PCIe bringup experiments"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if cmd.Flags().Changed("purpose") {
				return writePurpose(wctx.Root, purpose)
			}

			v, err := currentVCS()
			if err != nil {
				return err
			}
			worktrees, err := v.WorktreeList(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(worktrees))
			for _, wt := range worktrees {
				marker := " "
				if wt.IsCurrent {
					marker = "*"
				}
				rows = append(rows, []string{
					marker,
					wt.Path,
					wt.Branch,
					platformName(wt.Path),
					readPurpose(wt.Path),
				})
			}

			out.Print(ui.RenderTable([]string{"", "PATH", "BRANCH", "PLATFORM", "PURPOSE"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&purpose, "purpose", "", "Set the current worktree's purpose note")
	return cmd
}

// platformName reads the local `name` setting of another worktree.
func platformName(root string) string {
	other, err := config.Load(globalPath, root)
	if err != nil {
		return ""
	}
	name, _ := other.Get(config.Local, "name")
	return name
}

func purposePath(root string) string {
	return filepath.Join(root, config.LocalDirName, purposeFileName)
}

func readPurpose(root string) string {
	data, err := os.ReadFile(purposePath(root))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func writePurpose(root, purpose string) error {
	dir := filepath.Dir(purposePath(root))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(purposePath(root), []byte(purpose+"\n"), 0o644)
}
