// Package git reads per-file commit history for the stats pipeline.
//
// Two engines implement History:
//   - CLIHistory shells out to the git binary and follows renames
//   - GoGitHistory reads the object database in-process with go-git and
//     does not follow renames
//
// OpenRepository locates the enclosing work tree.
package git
