package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/services/classification"
	"scribe/internal/views"
)

type commandContext struct {
	configFlag *string
	apiURLFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, apiURLFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiURLFlag: apiURLFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.apiURLFlag != nil && strings.TrimSpace(*c.apiURLFlag) != "" {
			base, err := classification.ParseBaseURL(*c.apiURLFlag)
			if err != nil {
				c.configErr = fmt.Errorf("--api-url: %w", err)
				return
			}
			cfg.API.BaseURL = base.String()
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) outputFormat() outputFormat {
	if c.outputFlag == nil {
		return outputTable
	}
	format, err := parseOutputFormat(*c.outputFlag)
	if err != nil {
		return outputTable
	}
	return format
}

// logger writes to the command's stderr so stdout stays machine-readable.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

func (c *commandContext) client(cmd *cobra.Command) (*classification.Client, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, nil, err
	}
	client, err := classification.NewClient(cfg.API.BaseURL,
		classification.WithLogger(logger),
		classification.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func (c *commandContext) formatter() (*views.Formatter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return views.NewFormatterFromConfig(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// userError carries the message a view produced for the user while keeping
// the underlying error reachable through errors.Is.
type userError struct {
	message string
	err     error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.err }

func newUserError(message string, err error) error {
	if strings.TrimSpace(message) == "" {
		return err
	}
	return &userError{message: message, err: err}
}
