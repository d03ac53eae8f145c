package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vk/geounits/internal/report"
)

// DefaultConcurrency bounds how many worksheets are evaluated at once when
// the caller does not choose.
const DefaultConcurrency = 4

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // worksheet files or directories

	LogFormat   string
	LogLevel    string
	LogOutput   io.Writer // nil means the App's output writer
	Output      report.Format
	Concurrency int
}

// NewConfig validates cfg, fills defaults and returns it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat))
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if cfg.Output == "" {
		cfg.Output = report.FormatText
	}
	if format, err := report.ParseFormat(string(cfg.Output)); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Output = format
	}

	switch {
	case cfg.Concurrency == 0:
		cfg.Concurrency = DefaultConcurrency
	case cfg.Concurrency < 0:
		errs = append(errs, fmt.Errorf("invalid concurrency %d: must be positive", cfg.Concurrency))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
