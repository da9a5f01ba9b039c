package state

import (
	"encoding/json"
	"sort"

	"github.com/agentstation/utc"

	"github.com/agentstation/checkstate/pkg/config"
	"github.com/agentstation/checkstate/pkg/errors"
)

// Document section keys in the persisted JSON.
const (
	subKey = "sub"
	setKey = "set"
	obsKey = "obs"
)

// Document is the working copy of the shared settings+results store for
// one run. The settings sections (sub, set) are effectively read-only;
// RecordLocal is the only mutation and touches just one instance entry
// in one set's observations.
type Document struct {
	Sub  config.SubstitutionTable
	Sets config.Sets
	Obs  map[string]SetState

	// Unknown top-level sections are kept verbatim so older builds can
	// round-trip documents written by newer ones.
	extra map[string]json.RawMessage
}

// NewDocument returns an empty document, used when the shared
// repository holds no settings yet.
func NewDocument() *Document {
	return &Document{
		Sub:  config.SubstitutionTable{},
		Sets: config.Sets{},
		Obs:  map[string]SetState{},
	}
}

// Load parses a persisted document. The "set" section is required;
// "sub" and "obs" default to empty; anything else is preserved as-is.
func Load(data []byte) (*Document, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, errors.NewStoreError("", errors.ErrMalformedDocument)
	}

	doc := NewDocument()

	raw, ok := sections[setKey]
	if !ok {
		return nil, errors.NewStoreError(setKey, errors.ErrMalformedDocument)
	}
	if err := json.Unmarshal(raw, &doc.Sets); err != nil {
		return nil, errors.NewStoreError(setKey, errors.ErrMalformedDocument)
	}

	if raw, ok := sections[subKey]; ok {
		if err := json.Unmarshal(raw, &doc.Sub); err != nil {
			return nil, errors.NewStoreError(subKey, errors.ErrMalformedDocument)
		}
	}
	if raw, ok := sections[obsKey]; ok {
		if err := json.Unmarshal(raw, &doc.Obs); err != nil {
			return nil, errors.NewStoreError(obsKey, errors.ErrMalformedDocument)
		}
	}

	for key, raw := range sections {
		switch key {
		case subKey, setKey, obsKey:
		default:
			if doc.extra == nil {
				doc.extra = map[string]json.RawMessage{}
			}
			doc.extra[key] = raw
		}
	}

	return doc, nil
}

// Serialize produces the document for persistence. Keys are emitted in
// sorted order to keep diffs in the shared repository minimal.
func (d *Document) Serialize() ([]byte, error) {
	sections := map[string]json.RawMessage{}
	for key, raw := range d.extra {
		sections[key] = raw
	}

	for key, value := range map[string]any{
		subKey: d.Sub,
		setKey: d.Sets,
		obsKey: d.Obs,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.NewStoreError(key, err)
		}
		sections[key] = raw
	}

	// json.Marshal writes map keys in sorted order.
	return json.MarshalIndent(sections, "", " ")
}

// Resolver returns a folder resolver over the document's settings.
func (d *Document) Resolver() *config.Resolver {
	return config.NewResolver(d.Sets, d.Sub)
}

// SetState returns the observations for a set, never nil.
func (d *Document) SetState(set string) SetState {
	if ss, ok := d.Obs[set]; ok {
		return ss
	}
	return SetState{}
}

// ObservedSets returns the set names with stored observations, sorted,
// excluding the template sentinel.
func (d *Document) ObservedSets() []string {
	names := make([]string, 0, len(d.Obs))
	for name := range d.Obs {
		if name == config.TemplateSet {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordLocal inserts or overwrites the entry for the local instance
// within a set's observations, timestamped now. This is the only way a
// document is mutated: records belonging to other instances are never
// touched.
func (d *Document) RecordLocal(set, instance string, folders []FolderState) *InstanceState {
	record := &InstanceState{
		Updated: utc.Now(),
		Folders: folders,
	}
	if d.Obs[set] == nil {
		d.Obs[set] = SetState{}
	}
	d.Obs[set][instance] = record
	return record
}
