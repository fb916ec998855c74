package render

// ============================================================================
// RENDER OPTIONS — Functional options shared by every renderer
// ============================================================================

// Option configures a renderer.
type Option func(*config)

type config struct {
	Width  int    // pixels for HTML/images, columns for the terminal
	Height int    // pixels for HTML/images, rows for the terminal
	Theme  string // go-echarts theme name
}

// WithSize sets the chart size. Units depend on the renderer.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

// WithTheme selects a go-echarts theme ("light", "dark", "westeros", ...).
func WithTheme(theme string) Option {
	return func(c *config) {
		c.Theme = theme
	}
}

func applyOptions(defaults config, opts []Option) *config {
	cfg := defaults
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}
