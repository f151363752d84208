package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/dispatch"
	"github.com/LowellDennis/bt/internal/log"
	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/registry"
	"github.com/LowellDennis/bt/internal/resolve"
)

var (
	// Global flags
	verbosity int

	// Shared state injected into commands
	workDir    string
	globalPath string
	store      *config.Store
	reg        *registry.Registry
	wctx       *resolve.Context
)

// Command group IDs for organizing help output
const (
	GroupRepository = "repository"
	GroupWorktree   = "worktree"
	GroupBuild      = "build"
	GroupConfig     = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bt",
	Short: "Build and worktree workflow tool for Git and SVN repositories",
	Long: `bt layers repository and worktree management, hierarchical
configuration, and supervised builds on top of Git or SVN.

Commands and configuration keys may be abbreviated to any unambiguous
prefix: 'bt stat' and 'bt st' both run 'bt status'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
			return nil
		}
		if cmd.Annotations[dispatch.AnnotationRequiresVCS] != "true" {
			return nil
		}
		return resolveWorktree(cmd.Context())
	},
	// Run is not set - shows help when no subcommand provided
}

// resolveWorktree establishes the repository context commands marked
// RequiresVCS need, reloads the store with the local scope, and records
// the worktree as last used.
func resolveWorktree(ctx context.Context) error {
	fallback, _ := store.Get(config.Global, "repo")
	resolved, err := resolve.Resolve(workDir, fallback)
	if err != nil {
		return err
	}
	wctx = resolved

	store, err = config.Load(globalPath, wctx.Root)
	if err != nil {
		return err
	}
	reg = registry.New(store)

	log.FromContext(ctx).Debug("resolved context",
		"root", wctx.Root, "vcs", wctx.Kind, "initialized", !wctx.Uninitialized)

	return recordLastUsed(wctx.Root)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	var err error
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bt: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	globalPath, err = config.GlobalPath("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "bt: %v\n", err)
		os.Exit(1)
	}
	store, err = config.Load(globalPath, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "bt: %v\n", err)
		os.Exit(1)
	}
	reg = registry.New(store)

	// Cobra only parses flags inside Execute, but the logger has to be
	// in the context before that; count -v occurrences up front. A local
	// keeps the flag-bound verbosity from being counted twice.
	level := countVerbosity(os.Args[1:])

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logger on stderr for diagnostics, printer on stdout for data
	ctx = log.WithLogger(ctx, log.New(os.Stderr, level))
	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	// Cobra registers help and completion lazily; force them in so the
	// abbreviation registry sees the full command set.
	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultCompletionCmd()

	// Rewrite the command word through the abbreviation registry before
	// cobra sees it.
	commands := dispatch.Build(rootCmd)
	args, _, err := commands.Rewrite(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(dispatch.ExitCode(err))
	}
}

// countVerbosity counts stacked -v flags (-v, -vv, -v -v) before parse.
func countVerbosity(args []string) int {
	n := 0
	for _, a := range args {
		switch {
		case a == "--":
			return n
		case a == "--verbose":
			n++
		case len(a) > 1 && a[0] == '-' && a[1] != '-':
			for _, c := range a[1:] {
				if c == 'v' {
					n++
				}
			}
		}
	}
	return n
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v commands, -vv debug, -vvv trace)")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRepository, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupWorktree, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupBuild, Title: "Build Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Repository commands
	rootCmd.AddCommand(newAttachCmd())
	rootCmd.AddCommand(newDetachCmd())
	rootCmd.AddCommand(newSelectCmd())
	rootCmd.AddCommand(newTopCmd())

	// Worktree commands
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newUseCmd())
	rootCmd.AddCommand(newWorktreesCmd())

	// Build and VCS commands
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newJumpCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newStatusCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
}
