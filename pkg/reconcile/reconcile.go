// Package reconcile performs the cross-instance analysis for one set:
// it orders the per-instance records for display, detects folders whose
// commits cannot all be current, and suggests remedial commands for the
// local instance. Detection and suggestion only; nothing is executed.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/agentstation/utc"

	"github.com/agentstation/checkstate/pkg/errors"
	"github.com/agentstation/checkstate/pkg/state"
)

// Row is one folder record annotated with cross-instance findings.
type Row struct {
	state.FolderState

	// LatestAcross marks the row holding the newest file modification
	// among all instances that contain this folder name.
	LatestAcross bool `json:"latest_across"`

	// MixedCommit marks rows of a folder name whose in-sync instances
	// disagree on commit.
	MixedCommit bool `json:"mixed_commit"`
}

// InstanceReport is the ordered render model for one instance.
type InstanceReport struct {
	Instance string   `json:"instance"`
	Updated  utc.Time `json:"updated"`
	Rows     []Row    `json:"rows"`
}

// Report is the render model for one set: the instance/folder matrix
// plus warnings and suggested remedies.
type Report struct {
	Set   string `json:"set"`
	Local string `json:"local"`

	// Instances in display order: remote instances sorted by name, the
	// local instance last so the freshest run reads at the bottom.
	Instances []InstanceReport `json:"instances"`

	// MixedCommits lists folder names where instances claiming to be in
	// sync with upstream disagree on commit, sorted.
	MixedCommits []string `json:"mixed_commits"`

	// Remedies are command-like hints against the local instance's
	// folder paths.
	Remedies []string `json:"remedies"`
}

// Set builds the report for one set. The set state must already carry
// the freshly recorded local instance.
func Set(set string, ss state.SetState, local string) (*Report, error) {
	if _, ok := ss[local]; !ok {
		return nil, errors.NewConfigError(set, local, local, errors.ErrUnknownInstance)
	}

	order := instanceOrder(ss, local)

	// Latest modification and commit agreement per folder name.
	// Commit agreement only counts instances whose record claims to be
	// in sync with upstream: two such instances at different commits
	// cannot both be current, no matter how stale the records are.
	// Known-stale records (remote differs or unknown) are still
	// displayed but carry no agreement weight.
	latest := map[string]utc.Time{}
	commits := map[string]map[string]bool{}
	for _, instance := range order {
		for _, folder := range ss[instance].Folders {
			if folder.Latest.After(latest[folder.Name]) {
				latest[folder.Name] = folder.Latest
			}
			if folder.Remote.OK() {
				if commits[folder.Name] == nil {
					commits[folder.Name] = map[string]bool{}
				}
				commits[folder.Name][folder.Commit] = true
			}
		}
	}

	mixed := make([]string, 0)
	for name, hashes := range commits {
		if len(hashes) > 1 {
			mixed = append(mixed, name)
		}
	}
	sort.Strings(mixed)

	report := &Report{
		Set:          set,
		Local:        local,
		MixedCommits: mixed,
	}

	mixedSet := map[string]bool{}
	for _, name := range mixed {
		mixedSet[name] = true
	}

	for _, instance := range order {
		ir := InstanceReport{
			Instance: instance,
			Updated:  ss[instance].Updated,
		}
		for _, folder := range ss[instance].Folders {
			ir.Rows = append(ir.Rows, Row{
				FolderState:  folder,
				LatestAcross: !folder.Latest.IsZero() && folder.Latest.Equal(latest[folder.Name]),
				MixedCommit:  mixedSet[folder.Name],
			})
		}
		report.Instances = append(report.Instances, ir)
	}

	report.Remedies = remedies(ss[local].Folders)
	return report, nil
}

// instanceOrder returns instance names sorted, with the local instance
// moved last.
func instanceOrder(ss state.SetState, local string) []string {
	names := make([]string, 0, len(ss))
	for name := range ss {
		if name != local {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append(names, local)
}

// remedies suggests commands for the local instance's folders that
// report divergence. Suggestion only.
func remedies(folders []state.FolderState) []string {
	var hints []string
	for _, folder := range folders {
		if folder.Remote == state.RemoteDiffers {
			hints = append(hints, fmt.Sprintf("git -C '%s' pull  # or maybe push", folder.Path))
		}
		if folder.HasMods {
			hints = append(hints, fmt.Sprintf("git -C '%s' commit -a && git -C '%s' push", folder.Path, folder.Path))
		}
	}
	return hints
}
