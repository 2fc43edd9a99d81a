package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !CLIAvailable() {
		t.Skip("git binary not available")
	}
}

// runGit runs git in dir with a fixed author date so history is deterministic.
func runGit(t *testing.T, dir, date string, args ...string) string {
	t.Helper()
	// #nosec G204 -- test helper
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE="+date+"T12:00:00",
		"GIT_COMMITTER_DATE="+date+"T12:00:00",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

func initCLIRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	runGit(t, dir, "2024-01-01", "init", "-q")
	runGit(t, dir, "2024-01-01", "config", "user.email", "test@example.com")
	runGit(t, dir, "2024-01-01", "config", "user.name", "Test User")
	runGit(t, dir, "2024-01-01", "config", "commit.gpgsign", "false")
	return dir
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func cliCommit(t *testing.T, dir, date, author, msg string) {
	t.Helper()
	runGit(t, dir, date, "add", "-A")
	runGit(t, dir, date, "-c", "user.name="+author, "commit", "-q", "-m", msg)
}

// goGitCommit commits rel through go-git, so these tests need no git binary.
func goGitCommit(t *testing.T, repo *gogit.Repository, root, rel, content, author string, when time.Time) string {
	t.Helper()
	writeFile(t, root, rel, content)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(rel)
	require.NoError(t, err)
	h, err := wt.Commit("update "+rel, &gogit.CommitOptions{
		Author: &object.Signature{Name: author, Email: "a@example.com", When: when},
	})
	require.NoError(t, err)
	return h.String()
}

func date(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d.Add(12 * time.Hour)
}
