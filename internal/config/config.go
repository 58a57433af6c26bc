// Package config defines deckgen configuration and its loading.
//
// Values are layered: defaults from New, an optional YAML file, then
// DECKGEN_* environment variables. Command-line flags are applied by the
// caller on top of the loaded Config.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Chart resolution bounds.
const (
	MinChartDPI = 72
	MaxChartDPI = 600
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is console or json.
	LogFormat string `koanf:"log_format"`

	// Deck is the deck description to build; empty selects the embedded deck.
	Deck string `koanf:"deck"`

	// Output overrides the file name declared by the deck.
	Output string `koanf:"output"`

	// OutputDir is where presentations are written.
	OutputDir string `koanf:"output_dir"`

	// ChartImages embeds charts as PNG pictures instead of native chart
	// parts.
	ChartImages bool `koanf:"chart_images"`

	// ChartDPI is the raster resolution of chart images.
	ChartDPI float64 `koanf:"chart_dpi"`

	// ChartFont is a TrueType font for chart image text; empty looks up
	// an installed CJK face.
	ChartFont string `koanf:"chart_font"`

	// DataWorkbook also writes the chart data as .xlsx next to the deck.
	DataWorkbook bool `koanf:"data_workbook"`

	// Workers bounds concurrent builds in batch mode.
	Workers int `koanf:"workers"`

	// LedgerPath is the SQLite build ledger; empty disables it.
	LedgerPath string `koanf:"ledger_path"`

	// MetricsTextfile receives Prometheus metrics after each build.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Addr configures the HTTP listen address of the serve command.
	Addr string `koanf:"addr"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  LogFormatConsole,
		OutputDir:  ".",
		ChartDPI:   192,
		Workers:    runtime.NumCPU(),
		LedgerPath: "",
		Addr:       ":9080",
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ChartDPI < MinChartDPI || c.ChartDPI > MaxChartDPI {
		return fmt.Errorf("%w: chart_dpi %g outside %d..%d", ErrInvalidConfig, c.ChartDPI, MinChartDPI, MaxChartDPI)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if c.Output != "" && !strings.HasSuffix(strings.ToLower(c.Output), ".pptx") {
		return fmt.Errorf("%w: output %q must end in .pptx", ErrInvalidConfig, c.Output)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	return nil
}
