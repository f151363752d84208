// Package resolve locates the repository context a command runs against.
//
// Resolution walks up from the working directory looking for a VCS
// marker:
//
//   - a .git directory marks a primary Git repository root
//   - a .git file marks a linked Git worktree; its gitdir reference
//     points into <repo>/.git/worktrees/<name>, so the owning
//     repository sits three levels above it
//   - a .svn directory marks an SVN checkout, which behaves as a
//     degenerate worktree of one
//
// When no marker is found the resolver falls back to the currently
// selected repository from global configuration. A context without a
// local config file is still returned, flagged Uninitialized, so that
// commands like init can act on it.
package resolve
