// Package checkstate detects divergence between copies of the same
// projects checked out on multiple machines. Each machine inspects its
// local folders, merges the fresh records with the last-known records
// of the other machines from a shared repository, and reports folders
// whose copies cannot all be current.
package checkstate

import (
	"context"

	"github.com/agentstation/checkstate/pkg/errors"
	"github.com/agentstation/checkstate/pkg/inspect"
	"github.com/agentstation/checkstate/pkg/logging"
	"github.com/agentstation/checkstate/pkg/reconcile"
	"github.com/agentstation/checkstate/pkg/state"
	"github.com/agentstation/checkstate/pkg/transport"
)

// Checker runs one reconciliation pass: fetch the shared document,
// inspect the local folders of one set/instance, merge, reconcile, and
// optionally store the updated document back.
type Checker struct {
	config    *config
	transport transport.Transport
	inspector inspect.Inspector
	doc       *state.Document
}

// New creates a Checker with the given options. A transport must be
// configured, either directly or via WithRepo.
func New(opts ...Option) (*Checker, error) {
	c := &Checker{config: defaultConfig()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.transport == nil {
		return nil, errors.New("a transport is required: use WithRepo or WithTransport")
	}
	if c.inspector == nil {
		c.inspector = inspect.NewGit()
	}
	return c, nil
}

// Load fetches and parses the shared document. It must be called before
// Check, Report, or Store. A repository without a document yet yields
// an empty document.
func (c *Checker) Load(ctx context.Context) error {
	data, err := c.transport.Fetch(ctx)
	if err != nil {
		return err
	}
	if data == nil {
		logging.Ctx(ctx).Warn().Msg("Repository holds no document yet, starting empty")
		c.doc = state.NewDocument()
		return nil
	}

	doc, err := state.Load(data)
	if err != nil {
		return err
	}
	c.doc = doc
	return nil
}

// Document returns the loaded working copy of the shared document.
func (c *Checker) Document() *state.Document {
	return c.doc
}

// Check inspects the local folders of one set/instance, records the
// fresh local state into the document, and returns the reconciliation
// report across all known instances of the set.
func (c *Checker) Check(ctx context.Context, set, instance string) (*reconcile.Report, error) {
	ctx = logging.WithInstance(ctx, set, instance)

	folders, err := c.doc.Resolver().Folders(set, instance)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int("folder_count", len(folders)).Msg("Inspecting folders")
	states, err := inspect.All(ctx, c.inspector, folders)
	if err != nil {
		return nil, err
	}

	c.doc.RecordLocal(set, instance, states)
	return reconcile.Set(set, c.doc.SetState(set), instance)
}

// Report reconciles a set from stored observations only, without
// inspecting anything. The most recently updated instance is treated as
// local for display ordering.
func (c *Checker) Report(set string) (*reconcile.Report, error) {
	ss := c.doc.SetState(set)
	if len(ss) == 0 {
		return nil, errors.NewConfigError(set, "", "", errors.ErrUnknownSet)
	}

	last := ""
	for instance, record := range ss {
		if last == "" || record.Updated.After(ss[last].Updated) ||
			(record.Updated.Equal(ss[last].Updated) && instance < last) {
			last = instance
		}
	}
	return reconcile.Set(set, ss, last)
}

// Store serializes the document and hands it back to the transport,
// unless storing was suppressed.
func (c *Checker) Store(ctx context.Context) error {
	if c.config.noStore {
		logging.Ctx(ctx).Info().Msg("Not storing results to repository")
		return nil
	}
	data, err := c.doc.Serialize()
	if err != nil {
		return err
	}
	return c.transport.Store(ctx, data)
}

// Close releases transport resources.
func (c *Checker) Close() error {
	return c.transport.Close()
}
