package gitremote_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmlarson/trytravis/pkg/gitremote"
)

func testGit(ctx context.Context, t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

// setupRepos creates a work repository with one commit and an empty bare
// repository to push to.
func setupRepos(ctx context.Context, t *testing.T) (workDir, bareDir string) {
	t.Helper()
	if _, err := dexec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	tmpdir := t.TempDir()
	workDir = filepath.Join(tmpdir, "work")
	bareDir = filepath.Join(tmpdir, "scratch.git")
	require.NoError(t, os.MkdirAll(workDir, 0755))

	testGit(ctx, t, tmpdir, "init", "--bare", bareDir)
	testGit(ctx, t, tmpdir, "init", workDir)
	testGit(ctx, t, workDir, "config", "user.email", "ci@example.com")
	testGit(ctx, t, workDir, "config", "user.name", "ci")

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "README"), []byte("hello\n"), 0644))
	testGit(ctx, t, workDir, "add", "--all")
	testGit(ctx, t, workDir, "commit", "-m", "init")

	return workDir, bareDir
}

func TestSubmitDirtyTree(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	workDir, bareDir := setupRepos(ctx, t)
	head := testGit(ctx, t, workDir, "rev-parse", "HEAD")

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "README"), []byte("changed\n"), 0644))

	sub, err := gitremote.Submit(ctx, workDir, bareDir)
	require.NoError(t, err)
	assert.NotEqual(t, head, sub.Commit)
	assert.False(t, sub.CommittedAt.IsZero())

	// The temporary commit reached the scratch repository...
	assert.Equal(t, sub.Commit, testGit(ctx, t, bareDir, "rev-parse", "HEAD"))

	// ...and the work repository is back to its old state: same HEAD,
	// changes still present but uncommitted, no leftover remote.
	assert.Equal(t, head, testGit(ctx, t, workDir, "rev-parse", "HEAD"))
	status := testGit(ctx, t, workDir, "status", "--porcelain")
	assert.Contains(t, status, "README")
	remotes := testGit(ctx, t, workDir, "remote")
	assert.NotContains(t, remotes, gitremote.RemoteName)
}

func TestSubmitCleanTree(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	workDir, bareDir := setupRepos(ctx, t)
	head := testGit(ctx, t, workDir, "rev-parse", "HEAD")

	// Nothing to commit: HEAD itself is what gets submitted, and no
	// reset happens afterward.
	sub, err := gitremote.Submit(ctx, workDir, bareDir)
	require.NoError(t, err)
	assert.Equal(t, head, sub.Commit)
	assert.Equal(t, head, testGit(ctx, t, workDir, "rev-parse", "HEAD"))
	assert.Equal(t, head, testGit(ctx, t, bareDir, "rev-parse", "HEAD"))
}

func TestSubmitNotARepo(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	if _, err := dexec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	dir := t.TempDir()
	_, err := gitremote.Submit(ctx, dir, "https://github.com/alice/trytravis-sandbox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't locate a git repository")
}

func TestSubmitPushFailureStillCleansUp(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	workDir, _ := setupRepos(ctx, t)
	head := testGit(ctx, t, workDir, "rev-parse", "HEAD")

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "README"), []byte("changed\n"), 0644))

	// A remote URL that can't be pushed to.
	_, err := gitremote.Submit(ctx, workDir, filepath.Join(t.TempDir(), "does-not-exist.git"))
	require.Error(t, err)

	// The temporary commit was rolled back and the remote removed.
	assert.Equal(t, head, testGit(ctx, t, workDir, "rev-parse", "HEAD"))
	assert.NotContains(t, testGit(ctx, t, workDir, "remote"), gitremote.RemoteName)
}
