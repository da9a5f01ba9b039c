package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/checkstate/pkg/config"
	"github.com/agentstation/checkstate/pkg/errors"
	"github.com/agentstation/checkstate/pkg/logging"
)

// AmbiguousChoiceError reports that the working directory belongs to
// more than one set/instance and none of them is confirmed for this
// machine yet.
type AmbiguousChoiceError struct {
	Repo    string
	Choices [][2]string
}

// Error implements the error interface
func (e *AmbiguousChoiceError) Error() string {
	var b strings.Builder
	b.WriteString("path exists in multiple instances; run one of the following to confirm for this machine:\n")
	for _, choice := range e.Choices {
		fmt.Fprintf(&b, "  checkstate --repo %s %s %s\n", e.Repo, choice[0], choice[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

// ChooseSetInstance fills in the set and instance when not given on the
// command line, by matching the current working directory against every
// resolvable folder list. A pair previously confirmed for this machine
// wins outright; a single new match is confirmed and remembered; more
// than one candidate requires the user to pick.
func (a *App) ChooseSetInstance(ctx context.Context, resolver *config.Resolver, local *LocalState, set, instance string) (string, string, error) {
	if instance != "" {
		if local.MarkSeen(set, instance) {
			a.saveLocalState(ctx, local)
		}
		return set, instance, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	cwd = realPath(cwd)

	var choices [][2]string
	for _, setName := range resolver.Sets() {
		if set != "" && setName != set {
			continue
		}
		instances, err := resolver.Instances(setName)
		if err != nil {
			continue
		}
		for _, instanceName := range instances {
			folders, err := resolver.Folders(setName, instanceName)
			if err != nil {
				// A broken set must not prevent guessing in the others.
				logging.Ctx(ctx).Debug().Err(err).Msg("Skipping unresolvable instance while guessing")
				continue
			}
			for _, folder := range folders {
				if realPath(folder.Path) != cwd {
					continue
				}
				if local.HasSeen(setName, instanceName) {
					return setName, instanceName, nil
				}
				choices = append(choices, [2]string{setName, instanceName})
				break
			}
		}
	}

	switch len(choices) {
	case 1:
		set, instance = choices[0][0], choices[0][1]
		logging.Ctx(ctx).Info().
			Str("set", set).
			Str("instance", instance).
			Msg("Guessing set/instance from current folder")
		local.MarkSeen(set, instance)
		a.saveLocalState(ctx, local)
		return set, instance, nil
	case 0:
		return "", "", errors.New("can't guess set/instance from current folder; pass them explicitly")
	default:
		return "", "", &AmbiguousChoiceError{Repo: a.config.Repo, Choices: choices}
	}
}

func (a *App) saveLocalState(ctx context.Context, local *LocalState) {
	local.Repo = a.config.Repo
	if err := SaveLocalState(local); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to update local state")
	}
}

// realPath resolves symlinks where possible so recorded folder paths
// and the working directory compare equal. Paths recorded on another OS
// won't resolve here and are compared as cleaned strings.
func realPath(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}
