package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/checkstate/pkg/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want error
	}{
		{"auth", "fatal: Authentication failed for 'https://example.com/r.git'", errors.ErrAuthFailure},
		{"ssh denied", "git@gitlab.com: Permission denied (publickey).", errors.ErrAuthFailure},
		{"missing repo", "ERROR: The project you were looking for could not be found. remote: repository not found", errors.ErrRepoNotFound},
		{"dns", "fatal: unable to access 'x': Could not resolve host: gitlab.com", errors.ErrNetworkFailure},
		{"anything else", "fatal: the remote end hung up unexpectedly", errors.ErrNetworkFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.out), tt.want)
		})
	}
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "fatal: repository gone", lastLine("Cloning into '/tmp/x'...\nfatal: repository gone\n\n"))
	assert.Equal(t, "", lastLine("\n  \n"))
	assert.Equal(t, "one", lastLine("one"))
}

func TestStoreBeforeFetch(t *testing.T) {
	tr := NewGitRepo("git@example.com:u/r.git")
	err := tr.Store(context.Background(), []byte("{}"))
	require.Error(t, err)

	var transportErr *errors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "store", transportErr.Op)
}

func TestCloseWithoutFetch(t *testing.T) {
	tr := NewGitRepo("git@example.com:u/r.git")
	assert.NoError(t, tr.Close())
}
