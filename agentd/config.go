package agentd

import (
	"time"

	"github.com/imdario/mergo"
)

// Option configures a Server at construction time.
type Option func(*config)

// Network selects the transport network; default "udp".
func Network(value string) Option {
	return func(c *config) { c.network = value }
}

// Address selects the local address to bind; default "" (all interfaces).
func Address(value string) Option {
	return func(c *config) { c.address = value }
}

// Port selects the local UDP port to bind; default 161, the IANA-assigned
// SNMP agent port.
func Port(value int) Option {
	return func(c *config) { c.port = value }
}

// Community sets the shared secret a request's community string must match
// exactly (compared in constant time) to be resolved.
func Community(value string) Option {
	return func(c *config) { c.community = value }
}

// PerSourceRateLimit caps how many requests a single source address may
// issue within RateLimitWindow before further requests are dropped.
func PerSourceRateLimit(maxRequests int) Option {
	return func(c *config) { c.perSourceLimit = maxRequests }
}

// RateLimitWindow sets the sliding window duration for PerSourceRateLimit;
// default 1 second.
func RateLimitWindow(d time.Duration) Option {
	return func(c *config) { c.rateLimitWindow = d }
}

// WithHooks installs the observability hooks the server invokes; default
// DefaultHooks. Unset fields are filled from NoOpHooks.
func WithHooks(h *Hooks) Option {
	return func(c *config) { c.hooks = h }
}

type config struct {
	network         string
	address         string
	port            int
	community       string
	perSourceLimit  int
	rateLimitWindow time.Duration
	hooks           *Hooks
}

var defaultConfig = config{
	network:         "udp",
	address:         "",
	port:            161,
	community:       "public",
	perSourceLimit:  50,
	rateLimitWindow: time.Second,
	hooks:           DefaultHooks,
}

// resolveHooks fills any nil hook field from NoOpHooks, so Server can call
// every hook unconditionally.
func (c *config) resolveHooks() {
	if c.hooks == nil {
		c.hooks = NoOpHooks
		return
	}
	mergo.Merge(c.hooks, NoOpHooks) // nolint: errcheck
}
