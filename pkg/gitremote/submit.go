// Package gitremote sends the working tree's current state to the user's
// scratch repository: it makes a temporary commit of all local changes,
// force-pushes it to a short-lived `trytravis` remote, and then puts the
// repository back the way it was.
package gitremote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
)

// RemoteName is the name of the temporary remote.  A leftover remote with
// this name (from an interrupted run) is silently replaced.
const RemoteName = "trytravis"

// Submission identifies the commit that was pushed, so the matching Travis
// build can be found.
type Submission struct {
	Commit      string
	CommittedAt time.Time
}

// Submit pushes the repository at dir, local modifications included, to the
// given remote URL.  The temporary commit (if one was needed) and the
// temporary remote are removed before returning, even on error.
func Submit(ctx context.Context, dir, url string) (_ Submission, err error) {
	if _, gitErr := git(ctx, dir, "rev-parse", "--git-dir"); gitErr != nil {
		return Submission{}, fmt.Errorf("couldn't locate a git repository at %q: %w", dir, gitErr)
	}

	_, _ = git(ctx, dir, "remote", "remove", RemoteName)
	dlog.Infof(ctx, "adding a temporary remote to %q", url)
	if _, err := git(ctx, dir, "remote", "add", RemoteName, url); err != nil {
		return Submission{}, err
	}

	committed := false
	defer func() {
		var errs derror.MultiError
		if err != nil {
			errs = append(errs, err)
		}
		if committed {
			dlog.Info(ctx, "reverting to the old state")
			if _, resetErr := git(ctx, dir, "reset", "HEAD^"); resetErr != nil {
				errs = append(errs, resetErr)
			}
		}
		if _, rmErr := git(ctx, dir, "remote", "remove", RemoteName); rmErr != nil {
			errs = append(errs, rmErr)
		}
		switch len(errs) {
		case 0:
			// keep err as-is
		case 1:
			err = errs[0]
		default:
			err = errs
		}
	}()

	dlog.Info(ctx, "adding all local changes")
	if _, err := git(ctx, dir, "add", "--all"); err != nil {
		return Submission{}, err
	}

	dlog.Info(ctx, "committing local changes")
	message := RemoteName + "-" + time.Now().Format(time.RFC3339)
	if out, commitErr := git(ctx, dir, "commit", "-m", message); commitErr != nil {
		// A clean tree is fine; HEAD itself gets submitted then.
		if !strings.Contains(out, "nothing to commit") {
			return Submission{}, commitErr
		}
	} else {
		committed = true
	}

	commit, err := git(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return Submission{}, err
	}
	committedAtStr, err := git(ctx, dir, "show", "-s", "--format=%cI", "HEAD")
	if err != nil {
		return Submission{}, err
	}
	committedAt, err := time.Parse(time.RFC3339, committedAtStr)
	if err != nil {
		return Submission{}, fmt.Errorf("parsing commit timestamp: %w", err)
	}

	dlog.Infof(ctx, "pushing to the `%s` remote", RemoteName)
	if _, err := git(ctx, dir, "push", "--force", RemoteName, "HEAD"); err != nil {
		return Submission{}, err
	}

	return Submission{Commit: commit, CommittedAt: committedAt}, nil
}

// git runs one git command in dir, returning its trimmed combined output.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}
