package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldersJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Folders
	}{
		{"token list", `["/base/+", "a", ":subs"]`, Folders{Tokens: []string{"/base/+", "a", ":subs"}}},
		{"alias", `":home"`, Folders{Alias: "home"}},
		{"empty list", `[]`, Folders{Tokens: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Folders
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)

			// Round-trips back to an equivalent declaration.
			data, err := json.Marshal(got)
			require.NoError(t, err)
			var again Folders
			require.NoError(t, json.Unmarshal(data, &again))
			assert.Equal(t, got, again)
		})
	}
}

func TestFoldersJSONRejectsBareString(t *testing.T) {
	var f Folders
	assert.Error(t, json.Unmarshal([]byte(`"not-an-alias"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`":"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`d:\somepath\folder1`, "folder1"},
		{`d:\somepath\`, "somepath"},
		{"/home/terry/proj", "proj"},
		{"/home/terry/proj/", "proj"},
		{"plain", "plain"},
		{`mixed\style/path`, "path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseName(tt.path), "BaseName(%q)", tt.path)
	}
}

func TestIsAbs(t *testing.T) {
	assert.True(t, IsAbs("/unix/path"))
	assert.True(t, IsAbs(`C:\windows\path`))
	assert.True(t, IsAbs(`d:\lower`))
	assert.True(t, IsAbs(`\\server\share`))
	assert.False(t, IsAbs("relative/path"))
	assert.False(t, IsAbs("relative"))
	assert.False(t, IsAbs(""))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, `d:\somepath\folder1`, Join(`d:\somepath`, "folder1"))
	assert.Equal(t, `d:\somepath\folder1`, Join(`d:\somepath\`, "folder1"))
	assert.Equal(t, "/base/frag", Join("/base", "frag"))
	assert.Equal(t, "/base/frag", Join("/base/", "frag"))
}
