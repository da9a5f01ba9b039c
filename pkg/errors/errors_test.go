package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("project1", "work", ":n3m", ErrUnknownSubstitution)

	assert.ErrorIs(t, err, ErrUnknownSubstitution)
	assert.NotErrorIs(t, err, ErrAliasCycle)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "project1", configErr.Set)
	assert.Contains(t, err.Error(), ":n3m")
	assert.Contains(t, err.Error(), "project1/work")
}

func TestConfigErrorWithoutToken(t *testing.T) {
	err := NewConfigError("p", "i", "", ErrMissingFolders)
	assert.NotContains(t, err.Error(), `""`)
	assert.ErrorIs(t, err, ErrMissingFolders)
}

func TestStoreError(t *testing.T) {
	err := NewStoreError("set", ErrMalformedDocument)
	assert.ErrorIs(t, err, ErrMalformedDocument)
	assert.Contains(t, err.Error(), `"set"`)
}

func TestInspectError(t *testing.T) {
	err := NewInspectError("/some/path", ErrPathNotFound)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Contains(t, err.Error(), "/some/path")
}

func TestTransportError(t *testing.T) {
	err := NewTransportError("git@example.com:u/r.git", "fetch", "fatal: could not read", ErrAuthFailure)
	assert.ErrorIs(t, err, ErrAuthFailure)
	assert.Contains(t, err.Error(), "fetch")
	assert.Contains(t, err.Error(), "fatal: could not read")

	bare := NewTransportError("repo", "store", "", ErrNetworkFailure)
	assert.ErrorIs(t, bare, ErrNetworkFailure)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, WrapIO("reading", "/x", nil))
	assert.NoError(t, WrapParse("json", "/x", nil))

	cause := New("boom")
	assert.ErrorIs(t, WrapIO("reading", "/x", cause), cause)
	assert.ErrorIs(t, WrapParse("json", "/x", cause), cause)
}
