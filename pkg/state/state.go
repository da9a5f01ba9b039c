// Package state defines the observed-state records exchanged between
// instances and the persisted document that carries them. A record is a
// snapshot of facts about one folder at one point in time; no history
// is kept beyond the latest record per instance.
package state

import "github.com/agentstation/utc"

// RemoteStatus is an instance's own belief, at record time, about
// whether its local branch matches its upstream tracking ref.
type RemoteStatus string

const (
	// RemoteOK means the local branch matched upstream at record time.
	RemoteOK RemoteStatus = "ok"
	// RemoteDiffers means upstream was reachable and disagreed.
	RemoteDiffers RemoteStatus = "differs"
	// RemoteUnknown means upstream could not be queried (offline). This
	// is distinct from RemoteDiffers: the folder may well be in sync.
	RemoteUnknown RemoteStatus = "unknown"
)

// OK reports whether the status is a positive in-sync claim. Only
// positive claims participate in cross-instance commit agreement.
func (s RemoteStatus) OK() bool {
	return s == RemoteOK
}

// FolderState is one version-controlled folder's observed facts at
// inspection time.
type FolderState struct {
	Name       string       `json:"name"`        // display name, final path component
	Path       string       `json:"path"`        // absolute path on the recording instance
	Remote     RemoteStatus `json:"remote"`      // upstream agreement at record time
	HasMods    bool         `json:"has_mods"`    // uncommitted modifications present
	Latest     utc.Time     `json:"latest"`      // most recent file modification
	LatestFile string       `json:"latest_file"` // path of the most recently modified file
	FileCount  int          `json:"file_count"`
	Bytes      int64        `json:"bytes"`
	Commit     string       `json:"commit"`      // full head commit hash
	CommitTime utc.Time     `json:"commit_time"` // author time of the head commit
	Branch     string       `json:"branch"`
}

// InstanceState is the latest record produced by one instance of a set.
// For the local instance it is computed fresh each run; for remote
// instances it is read verbatim from the persisted document.
type InstanceState struct {
	Updated utc.Time      `json:"updated"`
	Folders []FolderState `json:"folders"`
}

// Folder returns the first folder record with the given display name,
// or nil if the instance has no such folder.
func (s *InstanceState) Folder(name string) *FolderState {
	for i := range s.Folders {
		if s.Folders[i].Name == name {
			return &s.Folders[i]
		}
	}
	return nil
}

// SetState maps instance name to that instance's latest record, for one
// set. Exactly one entry per run is freshly computed (the local
// instance); the rest are historical snapshots of unbounded staleness.
type SetState map[string]*InstanceState
