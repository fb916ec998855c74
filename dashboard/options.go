package dashboard

// ============================================================================
// BUILD OPTIONS — Functional options for Build()
// ============================================================================

// Option configures Build via the functional options pattern.
type Option func(*config)

type config struct {
	Concurrency int             // max panels resolved at once
	Only        map[string]bool // chart ids to build; empty = all
	Quiet       bool            // suppress progress logging
}

// WithConcurrency bounds how many panels resolve in parallel.
// Values below 1 mean one at a time.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.Concurrency = n
	}
}

// WithCharts restricts Build to the given chart ids, in document order.
func WithCharts(ids ...string) Option {
	return func(c *config) {
		if len(ids) == 0 {
			return
		}
		if c.Only == nil {
			c.Only = make(map[string]bool, len(ids))
		}
		for _, id := range ids {
			c.Only[id] = true
		}
	}
}

// WithQuiet turns off the per-build log lines.
func WithQuiet() Option {
	return func(c *config) {
		c.Quiet = true
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Concurrency: 4,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return cfg
}
