package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateWeb(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url must include a host, got %q", c.API.BaseURL)
	}
	return nil
}

func (c *Config) validateWeb() error {
	if c.Web.MaxUploadMiB <= 0 {
		return errors.New("web.max_upload_mib must be positive")
	}
	for _, origin := range c.Web.AllowedOrigins {
		if origin == "*" {
			continue
		}
		parsed, err := url.Parse(origin)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("web.allowed_origins: invalid origin %q", origin)
		}
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	for _, path := range c.Logging.OutputPaths {
		if path == "stdout" {
			return errors.New("logging.output_paths: stdout is reserved for command output")
		}
	}
	return nil
}

// Location resolves display.time_zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Display.TimeZone {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Display.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("display.time_zone: %w", err)
	}
	return loc, nil
}

// LanguageTag resolves display.locale, falling back to American English.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// MaxUploadBytes returns web.max_upload_mib in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Web.MaxUploadMiB) << 20
}
