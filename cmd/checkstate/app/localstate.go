package app

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/checkstate/pkg/errors"
)

// LocalState is the small per-machine memory kept outside the shared
// repository: the repository locator last used and the set/instance
// pairs this machine has been confirmed to be. Not to be confused with
// the main settings document, which lives in the shared repository.
type LocalState struct {
	Repo string      `json:"repo,omitempty"`
	Seen [][2]string `json:"seen,omitempty"` // confirmed [set, instance] pairs
}

// HasSeen reports whether a set/instance pair is already confirmed for
// this machine.
func (s *LocalState) HasSeen(set, instance string) bool {
	for _, pair := range s.Seen {
		if pair[0] == set && pair[1] == instance {
			return true
		}
	}
	return false
}

// MarkSeen records a confirmed set/instance pair. Returns true when the
// pair was not already present.
func (s *LocalState) MarkSeen(set, instance string) bool {
	if s.HasSeen(set, instance) {
		return false
	}
	s.Seen = append(s.Seen, [2]string{set, instance})
	return true
}

// localStatePath returns ~/.checkstate/state.json, creating the
// directory if needed.
func localStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".checkstate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// LoadLocalState reads the per-machine state, returning an empty state
// when none exists yet.
func LoadLocalState() (*LocalState, error) {
	path, err := localStatePath()
	if err != nil {
		return nil, err
	}

	state := &LocalState{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, errors.WrapIO("reading", path, err)
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, errors.WrapParse("local state", path, err)
	}
	return state, nil
}

// SaveLocalState writes the per-machine state.
func SaveLocalState(state *LocalState) error {
	path, err := localStatePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return errors.WrapIO("writing", path, os.WriteFile(path, data, 0o644))
}
