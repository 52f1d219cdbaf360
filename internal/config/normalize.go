package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeAPI()
	c.normalizeWeb()
	c.normalizeDisplay()
	c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	if value, ok := os.LookupEnv("SCRIBE_API_URL"); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = value
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	if !strings.Contains(c.API.BaseURL, "://") {
		c.API.BaseURL = "http://" + c.API.BaseURL
	}
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
}

func (c *Config) normalizeWeb() {
	if value, ok := os.LookupEnv("SCRIBE_WEB_BIND"); ok && strings.TrimSpace(value) != "" {
		c.Web.Bind = value
	}
	c.Web.Bind = strings.TrimSpace(c.Web.Bind)
	if c.Web.Bind == "" {
		c.Web.Bind = defaultWebBind
	}
	origins := make([]string, 0, len(c.Web.AllowedOrigins))
	for _, origin := range c.Web.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	c.Web.AllowedOrigins = origins
}

func (c *Config) normalizeDisplay() {
	c.Display.Locale = strings.TrimSpace(c.Display.Locale)
	if c.Display.Locale == "" {
		c.Display.Locale = defaultLocale
	}
	if strings.TrimSpace(c.Display.TimeLayout) == "" {
		c.Display.TimeLayout = defaultTimeLayout
	}
	c.Display.TimeZone = strings.TrimSpace(c.Display.TimeZone)
	if c.Display.TimeZone == "" {
		c.Display.TimeZone = defaultTimeZone
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("SCRIBE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	paths := make([]string, 0, len(c.Logging.OutputPaths))
	for _, path := range c.Logging.OutputPaths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if path != "stderr" && path != "stdout" {
			if expanded, err := expandPath(path); err == nil {
				path = expanded
			}
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		paths = []string{defaultLogOutput}
	}
	c.Logging.OutputPaths = paths
}
