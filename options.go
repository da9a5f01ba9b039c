package checkstate

import (
	"github.com/agentstation/checkstate/pkg/inspect"
	"github.com/agentstation/checkstate/pkg/transport"
)

// config holds Checker settings collected from options.
type config struct {
	noStore bool
}

func defaultConfig() *config {
	return &config{}
}

// Option is a function that configures a Checker instance.
type Option func(*Checker) error

// WithRepo configures a git-backed transport for the given repository
// locator.
func WithRepo(repo string) Option {
	return func(c *Checker) error {
		c.transport = transport.NewGitRepo(repo)
		return nil
	}
}

// WithTransport configures a custom transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Checker) error {
		c.transport = t
		return nil
	}
}

// WithInspector configures a custom folder inspector. The default
// shells out to git.
func WithInspector(i inspect.Inspector) Option {
	return func(c *Checker) error {
		c.inspector = i
		return nil
	}
}

// WithNoStore suppresses the final store of the updated document.
func WithNoStore(enabled bool) Option {
	return func(c *Checker) error {
		c.config.noStore = enabled
		return nil
	}
}
