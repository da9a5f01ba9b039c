package config

import (
	"sort"
	"strings"

	"github.com/agentstation/checkstate/pkg/errors"
)

// Folder is one resolved entry of an instance's folder list: an
// absolute path plus the short display name used as its row label.
type Folder struct {
	Name string // final path component
	Path string // absolute path
}

// InstanceFolders pairs an instance name with its resolved folder list.
type InstanceFolders struct {
	Instance string
	Folders  []Folder
}

// Resolver expands declared folder lists into concrete ordered paths.
// Resolution is deterministic: the same configuration always yields the
// same ordered list.
type Resolver struct {
	sets Sets
	subs SubstitutionTable
}

// NewResolver creates a Resolver over a loaded configuration.
func NewResolver(sets Sets, subs SubstitutionTable) *Resolver {
	return &Resolver{sets: sets, subs: subs}
}

// Sets returns the known set names in sorted order, excluding the
// template sentinel.
func (r *Resolver) Sets() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		if name == TemplateSet {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instances returns the instance names of a set in sorted order.
func (r *Resolver) Instances(set string) ([]string, error) {
	s, ok := r.sets[set]
	if !ok || set == TemplateSet {
		return nil, errors.NewConfigError(set, "", "", errors.ErrUnknownSet)
	}
	names := make([]string, 0, len(s.Instances))
	for name := range s.Instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Folders resolves one instance's declared folders value into an
// ordered list of absolute paths. A failure aborts resolution for this
// set/instance only.
func (r *Resolver) Folders(set, instance string) ([]Folder, error) {
	if _, ok := r.sets[set]; !ok || set == TemplateSet {
		return nil, errors.NewConfigError(set, instance, "", errors.ErrUnknownSet)
	}
	// Alias chains are walked with an explicit visited set so a cycle
	// fails deterministically instead of recursing without bound.
	return r.resolve(set, instance, map[string]bool{})
}

// ResolveAll resolves every instance of a set, in sorted instance
// order. The first failing instance aborts the whole set.
func (r *Resolver) ResolveAll(set string) ([]InstanceFolders, error) {
	instances, err := r.Instances(set)
	if err != nil {
		return nil, err
	}
	all := make([]InstanceFolders, 0, len(instances))
	for _, instance := range instances {
		folders, err := r.Folders(set, instance)
		if err != nil {
			return nil, err
		}
		all = append(all, InstanceFolders{Instance: instance, Folders: folders})
	}
	return all, nil
}

func (r *Resolver) resolve(set, instance string, visiting map[string]bool) ([]Folder, error) {
	inst, ok := r.sets[set].Instances[instance]
	if !ok {
		return nil, errors.NewConfigError(set, instance, instance, errors.ErrUnknownInstance)
	}

	if visiting[instance] {
		return nil, errors.NewConfigError(set, instance, instance, errors.ErrAliasCycle)
	}
	visiting[instance] = true

	if inst.Folders.IsAlias() {
		return r.resolve(set, inst.Folders.Alias, visiting)
	}
	if len(inst.Folders.Tokens) == 0 {
		return nil, errors.NewConfigError(set, instance, "", errors.ErrMissingFolders)
	}

	var folders []Folder
	base := "" // current base path, set by "+"-terminated tokens

	for _, token := range inst.Folders.Tokens {
		switch {
		case BaseName(token) == "+":
			// New base path for subsequent relative tokens. Not itself
			// emitted as a folder.
			base = strings.TrimRight(token, `+/\`)

		case strings.HasPrefix(token, ":"):
			fragments, ok := r.subs[token[1:]]
			if !ok {
				return nil, errors.NewConfigError(set, instance, token, errors.ErrUnknownSubstitution)
			}
			for _, fragment := range fragments {
				folder, err := r.emit(set, instance, base, fragment)
				if err != nil {
					return nil, err
				}
				folders = append(folders, folder)
			}

		default:
			folder, err := r.emit(set, instance, base, token)
			if err != nil {
				return nil, err
			}
			folders = append(folders, folder)
		}
	}

	if len(folders) == 0 {
		return nil, errors.NewConfigError(set, instance, "", errors.ErrMissingFolders)
	}
	return folders, nil
}

func (r *Resolver) emit(set, instance, base, token string) (Folder, error) {
	path := token
	if !IsAbs(token) {
		if base == "" {
			return Folder{}, errors.NewConfigError(set, instance, token, errors.ErrMissingBasePath)
		}
		path = Join(base, token)
	}
	return Folder{Name: BaseName(path), Path: path}, nil
}
