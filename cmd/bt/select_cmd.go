package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/ui"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "select [repo]",
		Short:   "Choose the current repository",
		GroupID: GroupRepository,
		Args:    cobra.MaximumNArgs(1),
		Long: `Select the current repository from the global list. The repository
may be given as a full path or a unique partial path; with no argument on
a terminal an interactive picker is shown.`,
		Example: `  bt select            # pick interactively
  bt select bios       # unique partial path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			} else {
				paths := reg.Paths()
				if len(paths) == 0 {
					return fmt.Errorf("no repositories registered (see 'bt attach')")
				}
				if !isatty.IsTerminal(os.Stderr.Fd()) {
					return fmt.Errorf("no repository given and stderr is not a terminal")
				}
				result, err := ui.Select("Select repository", paths)
				if err != nil {
					return err
				}
				if result.Cancelled {
					return nil
				}
				ref = result.Value
			}

			path, err := reg.Select(ref)
			if err != nil {
				return err
			}
			out.Printf("Current repository is now %s\n", path)
			return nil
		},
	}
}
