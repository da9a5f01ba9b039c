// Package errors provides custom error types for the checkstate system.
// These errors enable programmatic error checking across the resolver,
// store, inspector, and transport layers, where callers decide whether a
// failure aborts a run or is recovered locally.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the checkstate system
var (
	// ErrUnknownSet indicates a set name not present in the configuration
	ErrUnknownSet = errors.New("unknown set")

	// ErrUnknownInstance indicates an instance name not present in a set
	ErrUnknownInstance = errors.New("unknown instance")

	// ErrUnknownSubstitution indicates a substitution list that is not defined
	ErrUnknownSubstitution = errors.New("unknown substitution list")

	// ErrAliasCycle indicates a folders alias chain that revisits an instance
	ErrAliasCycle = errors.New("alias cycle")

	// ErrMissingFolders indicates an instance with no folders value
	ErrMissingFolders = errors.New("missing folders")

	// ErrMissingBasePath indicates a relative folder token before any base path
	ErrMissingBasePath = errors.New("relative path before any base path")

	// ErrMalformedDocument indicates a persisted document that cannot be parsed
	ErrMalformedDocument = errors.New("malformed document")

	// ErrPathNotFound indicates a resolved folder path that does not exist
	ErrPathNotFound = errors.New("path not found")

	// ErrNotAVcsFolder indicates a folder that is not a version-controlled working copy
	ErrNotAVcsFolder = errors.New("not a version-controlled folder")

	// ErrRemoteUnreachable indicates the upstream remote could not be queried
	ErrRemoteUnreachable = errors.New("remote unreachable")

	// ErrAuthFailure indicates the shared repository rejected our credentials
	ErrAuthFailure = errors.New("authentication failed")

	// ErrNetworkFailure indicates the shared repository could not be reached
	ErrNetworkFailure = errors.New("network failure")

	// ErrRepoNotFound indicates the shared repository does not exist
	ErrRepoNotFound = errors.New("repository not found")
)

// ConfigError represents a failure to resolve the declarative
// set/instance/folders configuration. It aborts resolution for the
// named set and instance only.
type ConfigError struct {
	Set      string
	Instance string
	Token    string // offending token or instance name, if any
	Err      error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("config error in %s/%s: %v: %q", e.Set, e.Instance, e.Err, e.Token)
	}
	return fmt.Sprintf("config error in %s/%s: %v", e.Set, e.Instance, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError wrapping one of the
// configuration sentinels.
func NewConfigError(set, instance, token string, err error) *ConfigError {
	return &ConfigError{Set: set, Instance: instance, Token: token, Err: err}
}

// StoreError represents a failure to load or serialize the persisted
// document.
type StoreError struct {
	Section string // top-level document section, if known
	Err     error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("store error in %q: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("store error: %v", e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(section string, err error) *StoreError {
	return &StoreError{Section: section, Err: err}
}

// InspectError represents a failure to inspect one folder. A run never
// aborts on an InspectError; the caller decides whether to skip the
// folder or record a degraded state.
type InspectError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *InspectError) Error() string {
	return fmt.Sprintf("inspect %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *InspectError) Unwrap() error {
	return e.Err
}

// NewInspectError creates a new InspectError
func NewInspectError(path string, err error) *InspectError {
	return &InspectError{Path: path, Err: err}
}

// TransportError represents a failure to fetch or store the shared
// document. The transport does not retry; callers see the classified
// cause via errors.Is.
type TransportError struct {
	Repo   string
	Op     string // "fetch" or "store"
	Detail string // trailing stderr from the underlying command, if any
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("transport %s %s: %v: %s", e.Op, e.Repo, e.Err, e.Detail)
	}
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.Repo, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError
func NewTransportError(repo, op, detail string, err error) *TransportError {
	return &TransportError{Repo: repo, Op: op, Detail: detail, Err: err}
}

// WrapIO wraps an I/O error with operation context
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", operation, path, err)
}

// WrapParse wraps a parsing error with format context
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("parsing %s from %s: %w", format, source, err)
}
