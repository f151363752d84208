package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/log"
	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/resolve"
	"github.com/LowellDennis/bt/internal/ui"
)

func newConfigCmd() *cobra.Command {
	var (
		forceGlobal bool
		forceLocal  bool
		reset       bool
		raw         bool
	)

	cmd := &cobra.Command{
		Use:     "config [key] [value]",
		Short:   "Get, set, list or reset configuration",
		GroupID: GroupConfig,
		Args:    cobra.MaximumNArgs(2),
		Long: `Read and write bt settings. Keys are case-insensitive and may be
abbreviated to any unambiguous prefix; an exact name wins over longer
keys sharing it. Values may reference other settings as ${NAME},
expanded on read.

Without arguments, all settings of both scopes are listed. Keys are
looked up in the worktree's local scope first, then globally; --local
and --global force one scope. System-maintained settings are read-only.`,
		Example: `  bt config                   # list everything
  bt config alert on          # set (local scope)
  bt config al                # get by abbreviation
  bt config --reset warnings  # back to the default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			// Config works outside a worktree too; pick up the local
			// scope when one encloses the working directory.
			attachLocalScope(ctx)

			if len(args) == 0 {
				if reset {
					return fmt.Errorf("--reset needs a key")
				}
				listSettings(out)
				return nil
			}

			scope, key, err := settingScope(args[0], forceGlobal, forceLocal)
			if err != nil {
				return err
			}

			switch {
			case reset:
				if len(args) == 2 {
					return fmt.Errorf("--reset takes no value")
				}
				if err := store.ResetToDefault(scope, key); err != nil {
					return err
				}
				out.Printf("%s reset to default\n", key)
				return nil

			case len(args) == 1:
				value, err := store.Get(scope, key)
				if err != nil {
					return err
				}
				if !raw {
					if value, err = store.Expand(value); err != nil {
						return err
					}
				}
				out.Println(value)
				return nil

			default:
				if err := store.Set(scope, key, args[1]); err != nil {
					return err
				}
				out.Printf("%s %s = %q\n", scope, key, args[1])
				return nil
			}
		},
	}

	cmd.Flags().BoolVarP(&forceGlobal, "global", "g", false, "Operate on the global scope")
	cmd.Flags().BoolVarP(&forceLocal, "local", "l", false, "Operate on the worktree's local scope")
	cmd.Flags().BoolVar(&reset, "reset", false, "Reset the key to its default value")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the value without ${} expansion")
	cmd.MarkFlagsMutuallyExclusive("global", "local")
	return cmd
}

// attachLocalScope reloads the store with the enclosing worktree's local
// scope when there is one. Not being inside a worktree is fine.
func attachLocalScope(ctx context.Context) {
	fallback, _ := store.Get(config.Global, "repo")
	resolved, err := resolve.Resolve(workDir, fallback)
	if err != nil {
		return
	}
	wctx = resolved
	if reloaded, err := config.Load(globalPath, resolved.Root); err == nil {
		store = reloaded
	}
	log.FromContext(ctx).Trace("attached local scope", "root", resolved.Root)
}

// settingScope decides which scope a key belongs to: the forced one, or
// local first with global fallback.
func settingScope(key string, forceGlobal, forceLocal bool) (config.Scope, string, error) {
	if forceGlobal {
		name, err := config.ResolveKey(config.Global, key)
		return config.Global, name, err
	}
	if forceLocal {
		if !store.HasLocal() {
			return config.Local, "", fmt.Errorf("not inside a worktree")
		}
		name, err := config.ResolveKey(config.Local, key)
		return config.Local, name, err
	}

	if store.HasLocal() {
		if name, err := config.ResolveKey(config.Local, key); err == nil {
			return config.Local, name, nil
		}
	}
	name, err := config.ResolveKey(config.Global, key)
	return config.Global, name, err
}

// listSettings prints both scopes as one table.
func listSettings(out *output.Printer) {
	var rows [][]string
	appendScope := func(scope config.Scope) {
		for _, e := range store.ListAll(scope) {
			access := ""
			if e.ReadOnly {
				access = "read-only"
			}
			rows = append(rows, []string{scope.String(), e.Key, e.Value, access})
		}
	}
	appendScope(config.Global)
	if store.HasLocal() {
		appendScope(config.Local)
	}
	out.Print(ui.RenderTable([]string{"SCOPE", "KEY", "VALUE", ""}, rows))
}
