// Package transport moves the shared settings+results document between
// the running process and the repository that machines use to exchange
// state. The transport is a dumb byte carrier: it neither parses the
// document nor retries; failures surface as classified TransportErrors.
package transport

import "context"

// DocumentFile is the name of the document inside the shared repository.
const DocumentFile = "checkstate.json"

// Transport fetches and stores the persisted document. Fetch is called
// once at the start of a run and Store at most once at the end, so
// implementations may hold per-run state (such as a working clone)
// between the two calls.
type Transport interface {
	// Fetch returns the current document bytes, or nil bytes with a nil
	// error when the repository exists but holds no document yet.
	Fetch(ctx context.Context) ([]byte, error)

	// Store persists the document bytes. Safe to retry by the caller.
	Store(ctx context.Context, data []byte) error

	// Close releases any per-run resources.
	Close() error
}
