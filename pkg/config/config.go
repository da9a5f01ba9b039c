// Package config holds the declarative project configuration shared
// through the settings repository: which sets exist, which instances
// (machines/checkouts) belong to each set, and how each instance's
// folder list is declared. The resolver in this package expands those
// declarations into concrete ordered folder paths.
//
// Paths in the configuration may originate on a different operating
// system than the one running the check, so all path handling here is
// deliberately OS-agnostic and never relies on path/filepath.
package config

import (
	"encoding/json"

	"github.com/agentstation/checkstate/pkg/errors"
)

// TemplateSet is the sentinel set name used as a copy-paste template in
// the settings document. It is never listed or resolved.
const TemplateSet = "_TEMPLATE_"

// SubstitutionTable maps a substitution-list name to an ordered
// sequence of relative folder fragments. Referenced from folder token
// lists as ":name". Immutable after load.
type SubstitutionTable map[string][]string

// Sets is the project configuration: set name -> set declaration.
type Sets map[string]*Set

// Set declares the instances of one project.
type Set struct {
	Instances map[string]*Instance `json:"instance"`
}

// Instance declares one machine/checkout of a set.
type Instance struct {
	Folders Folders `json:"folders"`
}

// Folders is the declared folders value of an instance: either an
// ordered list of path tokens, or a single ":otherInstance" string
// aliasing another instance's list in the same set.
type Folders struct {
	Tokens []string
	Alias  string // other instance name, without the leading ":"
}

// IsAlias reports whether the value aliases another instance.
func (f Folders) IsAlias() bool {
	return f.Alias != ""
}

// UnmarshalJSON accepts either a JSON array of tokens or a single
// ":instance" string.
func (f *Folders) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err == nil {
		f.Tokens = tokens
		f.Alias = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WrapParse("folders", "settings document", err)
	}
	if len(s) < 2 || s[0] != ':' {
		return errors.WrapParse("folders", "settings document",
			errors.New("string form must be a \":instance\" alias"))
	}
	f.Alias = s[1:]
	f.Tokens = nil
	return nil
}

// MarshalJSON writes the value back in the form it was declared, so
// that load/serialize round-trips are lossless.
func (f Folders) MarshalJSON() ([]byte, error) {
	if f.IsAlias() {
		return json.Marshal(":" + f.Alias)
	}
	return json.Marshal(f.Tokens)
}
