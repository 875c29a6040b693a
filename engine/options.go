package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for BuildDashboard()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopN         int      // ranked-bar truncation
	TrendMetrics []Metric // series plotted on the trend panels
}

// WithTopN overrides how many counties the ranked comparison keeps.
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithTrendMetrics overrides which metrics the yearly trend plots.
func WithTrendMetrics(metrics ...Metric) Option {
	return func(c *config) {
		if len(metrics) > 0 {
			c.TrendMetrics = metrics
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:         10,
		TrendMetrics: []Metric{MetricLitter, MetricRecycled},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
