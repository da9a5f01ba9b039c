// Package inspect turns a local folder path into an observed-state
// record: git sync facts plus file statistics. It wraps the git CLI as
// the version-control primitive; everything here is read-only.
package inspect

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/checkstate/pkg/config"
	"github.com/agentstation/checkstate/pkg/errors"
	"github.com/agentstation/checkstate/pkg/logging"
	"github.com/agentstation/checkstate/pkg/state"
)

// Inspector produces a FolderState for a local folder path.
type Inspector interface {
	Inspect(ctx context.Context, path string) (state.FolderState, error)
}

// Git inspects folders by shelling out to the git CLI.
type Git struct {
	// RemoteTimeout bounds the ls-remote call, which is the only
	// network operation. Zero means DefaultRemoteTimeout.
	RemoteTimeout time.Duration
}

// DefaultRemoteTimeout bounds upstream queries so an unreachable remote
// degrades to RemoteUnknown instead of hanging the run.
const DefaultRemoteTimeout = 30 * time.Second

// NewGit creates a git-backed Inspector.
func NewGit() *Git {
	return &Git{RemoteTimeout: DefaultRemoteTimeout}
}

// Inspect returns the observed facts for one version-controlled folder.
// A missing path fails with ErrPathNotFound and a folder without a .git
// directory fails with ErrNotAVcsFolder. An unreachable remote is not
// an error: the state is returned with Remote set to RemoteUnknown.
func (g *Git) Inspect(ctx context.Context, path string) (state.FolderState, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return state.FolderState{}, errors.NewInspectError(path, errors.ErrPathNotFound)
	}
	if !fi.IsDir() {
		return state.FolderState{}, errors.NewInspectError(path, errors.New("not a directory"))
	}
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return state.FolderState{}, errors.NewInspectError(path, errors.ErrNotAVcsFolder)
	}

	fs := state.FolderState{
		Name: config.BaseName(path),
		Path: path,
	}
	walkStats(ctx, path, &fs)

	commit, err := g.git(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return fs, errors.NewInspectError(path, errors.WrapIO("rev-parse", path, err))
	}
	fs.Commit = commit

	branch, err := g.git(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return fs, errors.NewInspectError(path, errors.WrapIO("rev-parse", path, err))
	}
	fs.Branch = branch

	if sec, err := g.git(ctx, path, "show", "-s", "--format=%ct", "HEAD"); err == nil {
		if n, err := strconv.ParseInt(sec, 10, 64); err == nil {
			fs.CommitTime = utc.Time{Time: time.Unix(n, 0).UTC()}
		}
	}

	// Any diff-index output means uncommitted modifications.
	mods, err := g.git(ctx, path, "diff-index", "HEAD", "--")
	if err != nil {
		return fs, errors.NewInspectError(path, errors.WrapIO("diff-index", path, err))
	}
	fs.HasMods = mods != ""

	fs.Remote = g.remoteStatus(ctx, path, fs.Branch, fs.Commit)

	return fs, nil
}

// remoteStatus compares the head commit against the upstream ref for
// the current branch. Connectivity failures are downgraded to
// RemoteUnknown so an offline machine still produces a usable report.
func (g *Git) remoteStatus(ctx context.Context, path, branch, commit string) state.RemoteStatus {
	timeout := g.RemoteTimeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := g.git(rctx, path, "ls-remote")
	if err != nil {
		logging.Ctx(ctx).Debug().
			Str("path", path).
			Err(err).
			Msg("Remote unreachable, recording sync state as unknown")
		return state.RemoteUnknown
	}

	for _, line := range strings.Split(out, "\n") {
		if !strings.HasSuffix(line, "refs/heads/"+branch) {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 && fields[0] != commit {
			return state.RemoteDiffers
		}
	}
	return state.RemoteOK
}

// git runs one git subcommand against a folder and returns its trimmed
// stdout.
func (g *Git) git(ctx context.Context, path string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", path}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
