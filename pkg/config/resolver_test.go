package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/checkstate/pkg/errors"
)

// testSets builds the configuration used across resolver tests: one
// Windows-flavored set with a substitution list and one set exercising
// alias indirection.
func testSets() (Sets, SubstitutionTable) {
	sets := Sets{
		"project1": {
			Instances: map[string]*Instance{
				"work": {Folders: Folders{Tokens: []string{
					`d:\somepath\+`,
					":n3m",
					"extra_folder",
					`C:\absolute\extrafolder`,
				}}},
			},
		},
		"project2": {
			Instances: map[string]*Instance{
				"home": {Folders: Folders{Tokens: []string{
					"/home/terry/+",
					"proj",
					"notes",
				}}},
				"laptop": {Folders: Folders{Alias: "home"}},
			},
		},
		TemplateSet: {
			Instances: map[string]*Instance{
				"machine_name": {Folders: Folders{Tokens: []string{"/path/+", "folder"}}},
			},
		},
	}
	subs := SubstitutionTable{
		"n3m": {"folder1", "folder2", "folder3"},
	}
	return sets, subs
}

func TestFoldersScenario(t *testing.T) {
	r := NewResolver(testSets())

	folders, err := r.Folders("project1", "work")
	require.NoError(t, err)

	want := []Folder{
		{Name: "folder1", Path: `d:\somepath\folder1`},
		{Name: "folder2", Path: `d:\somepath\folder2`},
		{Name: "folder3", Path: `d:\somepath\folder3`},
		{Name: "extra_folder", Path: `d:\somepath\extra_folder`},
		{Name: "extrafolder", Path: `C:\absolute\extrafolder`},
	}
	if diff := cmp.Diff(want, folders); diff != "" {
		t.Errorf("resolved folders mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldersDeterministic(t *testing.T) {
	r := NewResolver(testSets())

	first, err := r.Folders("project1", "work")
	require.NoError(t, err)
	second, err := r.Folders("project1", "work")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two resolutions differ (-first +second):\n%s", diff)
	}
}

func TestFoldersAlias(t *testing.T) {
	r := NewResolver(testSets())

	home, err := r.Folders("project2", "home")
	require.NoError(t, err)
	laptop, err := r.Folders("project2", "laptop")
	require.NoError(t, err)

	if diff := cmp.Diff(home, laptop); diff != "" {
		t.Errorf("alias did not resolve to the aliased list (-home +laptop):\n%s", diff)
	}
}

func TestFoldersAliasChain(t *testing.T) {
	sets := Sets{
		"p": {
			Instances: map[string]*Instance{
				"a": {Folders: Folders{Alias: "b"}},
				"b": {Folders: Folders{Alias: "c"}},
				"c": {Folders: Folders{Tokens: []string{"/base/+", "x"}}},
			},
		},
	}
	r := NewResolver(sets, SubstitutionTable{})

	folders, err := r.Folders("p", "a")
	require.NoError(t, err)
	assert.Equal(t, []Folder{{Name: "x", Path: "/base/x"}}, folders)
}

func TestFoldersErrors(t *testing.T) {
	sets := Sets{
		"p": {
			Instances: map[string]*Instance{
				"cycle1":    {Folders: Folders{Alias: "cycle2"}},
				"cycle2":    {Folders: Folders{Alias: "cycle1"}},
				"self":      {Folders: Folders{Alias: "self"}},
				"dangling":  {Folders: Folders{Alias: "nobody"}},
				"nosub":     {Folders: Folders{Tokens: []string{"/base/+", ":missing"}}},
				"nobase":    {Folders: Folders{Tokens: []string{"relative"}}},
				"subnobase": {Folders: Folders{Tokens: []string{":list"}}},
				"empty":     {Folders: Folders{}},
				"baseonly":  {Folders: Folders{Tokens: []string{"/base/+"}}},
			},
		},
	}
	subs := SubstitutionTable{"list": {"a"}}
	r := NewResolver(sets, subs)

	tests := []struct {
		name     string
		set      string
		instance string
		want     error
	}{
		{"unknown set", "nope", "work", errors.ErrUnknownSet},
		{"template is not resolvable", TemplateSet, "machine_name", errors.ErrUnknownSet},
		{"unknown instance", "p", "nobody", errors.ErrUnknownInstance},
		{"alias to unknown instance", "p", "dangling", errors.ErrUnknownInstance},
		{"alias cycle", "p", "cycle1", errors.ErrAliasCycle},
		{"alias self cycle", "p", "self", errors.ErrAliasCycle},
		{"unknown substitution", "p", "nosub", errors.ErrUnknownSubstitution},
		{"relative token before base", "p", "nobase", errors.ErrMissingBasePath},
		{"substitution before base", "p", "subnobase", errors.ErrMissingBasePath},
		{"no folders value", "p", "empty", errors.ErrMissingFolders},
		{"only a base token", "p", "baseonly", errors.ErrMissingFolders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Folders(tt.set, tt.instance)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFoldersBaseSwitch(t *testing.T) {
	sets := Sets{
		"p": {
			Instances: map[string]*Instance{
				"i": {Folders: Folders{Tokens: []string{
					"/first/+",
					"a",
					"/second/+",
					"b",
					"/abs/c",
				}}},
			},
		},
	}
	r := NewResolver(sets, SubstitutionTable{})

	folders, err := r.Folders("p", "i")
	require.NoError(t, err)
	want := []Folder{
		{Name: "a", Path: "/first/a"},
		{Name: "b", Path: "/second/b"},
		{Name: "c", Path: "/abs/c"},
	}
	assert.Equal(t, want, folders)
}

func TestSetsExcludesTemplate(t *testing.T) {
	r := NewResolver(testSets())
	assert.Equal(t, []string{"project1", "project2"}, r.Sets())
}

func TestInstances(t *testing.T) {
	r := NewResolver(testSets())

	instances, err := r.Instances("project2")
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "laptop"}, instances)

	_, err = r.Instances(TemplateSet)
	assert.ErrorIs(t, err, errors.ErrUnknownSet)
}

func TestResolveAll(t *testing.T) {
	r := NewResolver(testSets())

	all, err := r.ResolveAll("project2")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "home", all[0].Instance)
	assert.Equal(t, "laptop", all[1].Instance)
	assert.Equal(t, all[0].Folders, all[1].Folders)
}
