package testsupport

import (
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config with deterministic display settings and an
// ephemeral web bind. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Web.Bind = "127.0.0.1:0"
	cfgVal.Display.TimeZone = "UTC"
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithAPIURL points the test config at a backend, usually Backend.URL().
func WithAPIURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = url
	}
}

// WithMaxUploadMiB overrides the web upload limit.
func WithMaxUploadMiB(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Web.MaxUploadMiB = limit
	}
}

// WithAllowedOrigins replaces the CORS origin list.
func WithAllowedOrigins(origins ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Web.AllowedOrigins = origins
	}
}

// WithDisplay overrides locale, timestamp layout and zone.
func WithDisplay(locale, layout, zone string) ConfigOption {
	return func(b *configBuilder) {
		if locale != "" {
			b.cfg.Display.Locale = locale
		}
		if layout != "" {
			b.cfg.Display.TimeLayout = layout
		}
		if zone != "" {
			b.cfg.Display.TimeZone = zone
		}
	}
}
