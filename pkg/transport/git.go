package transport

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/agentstation/checkstate/pkg/errors"
	"github.com/agentstation/checkstate/pkg/logging"
)

// GitRepo is a Transport backed by a git repository. Fetch clones the
// repository into a temporary working directory; Store rewrites the
// document there and pushes a commit. Authentication is whatever the
// ambient git configuration provides (ssh agent, credential helper).
type GitRepo struct {
	repo string
	dir  string // working clone, created by Fetch
}

// NewGitRepo creates a git-backed transport for a repository locator
// such as "git@gitlab.com:user/checkstate-info.git".
func NewGitRepo(repo string) *GitRepo {
	return &GitRepo{repo: repo}
}

// Fetch clones the shared repository and returns the document bytes.
// A repository without a document yet yields nil bytes and no error.
func (t *GitRepo) Fetch(ctx context.Context) ([]byte, error) {
	dir, err := os.MkdirTemp("", "checkstate-*")
	if err != nil {
		return nil, errors.NewTransportError(t.repo, "fetch", "", err)
	}
	t.dir = dir

	logging.Ctx(ctx).Info().Str("repo", t.repo).Msg("Fetching settings from repository")
	if out, err := t.git(ctx, "", "clone", "--depth", "1", t.repo, dir); err != nil {
		return nil, errors.NewTransportError(t.repo, "fetch", lastLine(out), classify(out))
	}

	data, err := os.ReadFile(filepath.Join(dir, DocumentFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewTransportError(t.repo, "fetch", "", err)
	}
	return data, nil
}

// Store writes the document into the working clone and pushes it. An
// unchanged document is not an error; the push is simply skipped.
func (t *GitRepo) Store(ctx context.Context, data []byte) error {
	if t.dir == "" {
		return errors.NewTransportError(t.repo, "store", "", errors.New("store before fetch"))
	}

	path := filepath.Join(t.dir, DocumentFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewTransportError(t.repo, "store", "", err)
	}

	if out, err := t.git(ctx, t.dir, "add", DocumentFile); err != nil {
		return errors.NewTransportError(t.repo, "store", lastLine(out), classify(out))
	}

	out, err := t.git(ctx, t.dir, "commit", "-m", "updated")
	if err != nil {
		if strings.Contains(out, "nothing to commit") {
			logging.Ctx(ctx).Debug().Str("repo", t.repo).Msg("Document unchanged, nothing to store")
			return nil
		}
		return errors.NewTransportError(t.repo, "store", lastLine(out), classify(out))
	}

	logging.Ctx(ctx).Info().Str("repo", t.repo).Msg("Storing results in repository")
	if out, err := t.git(ctx, t.dir, "push"); err != nil {
		return errors.NewTransportError(t.repo, "store", lastLine(out), classify(out))
	}
	return nil
}

// Close removes the working clone.
func (t *GitRepo) Close() error {
	if t.dir == "" {
		return nil
	}
	dir := t.dir
	t.dir = ""
	return os.RemoveAll(dir)
}

// git runs one git command, optionally inside a directory, returning
// combined output for error classification.
func (t *GitRepo) git(ctx context.Context, dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// classify maps git output onto the transport error taxonomy.
func classify(out string) error {
	lower := strings.ToLower(out)
	switch {
	case strings.Contains(lower, "authentication failed"),
		strings.Contains(lower, "permission denied"),
		strings.Contains(lower, "access denied"),
		strings.Contains(lower, "403"):
		return errors.ErrAuthFailure
	case strings.Contains(lower, "repository not found"),
		strings.Contains(lower, "does not exist"),
		strings.Contains(lower, "not found"),
		strings.Contains(lower, "404"):
		return errors.ErrRepoNotFound
	default:
		return errors.ErrNetworkFailure
	}
}

// lastLine returns the last non-empty output line, which is where git
// puts the useful part of its error messages.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
