package config

const (
	defaultConfigPath   = "~/.config/scribe/config.toml"
	projectConfigName   = "scribe.toml"
	defaultAPIBaseURL   = "http://localhost:8080"
	defaultUserAgent    = "scribe/dev"
	defaultWebBind      = "127.0.0.1:5173"
	defaultWebOrigin    = "http://localhost:5173"
	defaultMaxUploadMiB = 500
	defaultLocale       = "en-US"
	defaultTimeLayout   = "1/2/2006, 3:04:05 PM"
	defaultTimeZone     = "Local"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultLogOutput    = "stderr"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:   defaultAPIBaseURL,
			UserAgent: defaultUserAgent,
		},
		Web: Web{
			Bind:           defaultWebBind,
			AllowedOrigins: []string{defaultWebOrigin},
			MaxUploadMiB:   defaultMaxUploadMiB,
		},
		Display: Display{
			Locale:     defaultLocale,
			TimeLayout: defaultTimeLayout,
			TimeZone:   defaultTimeZone,
		},
		Logging: Logging{
			Format:      defaultLogFormat,
			Level:       defaultLogLevel,
			OutputPaths: []string{defaultLogOutput},
		},
	}
}
