// Package config provides configuration types and defaults for vitrine.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/vitrine/internal/color"
	"github.com/zjrosen/vitrine/internal/layout"
	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/palette"
	"github.com/zjrosen/vitrine/internal/theme"
	"github.com/zjrosen/vitrine/internal/tracing"
)

// Config holds all configuration options for vitrine.
type Config struct {
	Theme      ThemeConfig      `mapstructure:"theme"`
	Palette    PaletteConfig    `mapstructure:"palette"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Scheme     SchemeConfig     `mapstructure:"scheme"`
	Transition TransitionConfig `mapstructure:"transition"`
	Profile    ProfileConfig    `mapstructure:"profile"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// ThemeConfig holds the cosmetic theme fields. The mode is never configured
// here; it comes from the persisted preference or the OS.
type ThemeConfig struct {
	Preset   string `mapstructure:"preset"`
	Primary  string `mapstructure:"primary"`
	Surface  string `mapstructure:"surface"`
	MenuMode string `mapstructure:"menu_mode"` // "static" (default) or "overlay"
}

// PaletteConfig holds the fallback brand color used until a profile
// delivers one.
type PaletteConfig struct {
	BaseColor string `mapstructure:"base_color"`
}

// StorageConfig controls where the mode preference is persisted.
type StorageConfig struct {
	// Path is the SQLite database file.
	// Default: ~/.config/vitrine/vitrine.db
	Path string `mapstructure:"path"`

	// Disabled keeps preferences in memory for the session only.
	Disabled bool `mapstructure:"disabled"`
}

// SchemeConfig selects the OS color-scheme signal.
type SchemeConfig struct {
	// File is watched for "dark" / "light" content. When empty the terminal
	// background is used.
	File string `mapstructure:"file"`
}

// TransitionConfig controls animated mode changes.
type TransitionConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Duration time.Duration `mapstructure:"duration"`
}

// ProfileConfig configures the business-profile source. URL takes
// precedence over File; with neither, the palette keeps its base color.
type ProfileConfig struct {
	URL           string        `mapstructure:"url"`
	File          string        `mapstructure:"file"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
}

// TracingConfig holds tracing configuration for profile fetches.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/vitrine/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Provider converts the config into tracing settings.
func (t TracingConfig) Provider() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	if t.Exporter != "" {
		cfg.Exporter = t.Exporter
	}
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	if t.SampleRate > 0 {
		cfg.SampleRate = t.SampleRate
	}
	return cfg
}

// Cosmetics returns the theme fields in the theme store's shape.
func (t ThemeConfig) Cosmetics() theme.Config {
	return theme.Config{
		Preset:   t.Preset,
		Primary:  t.Primary,
		Surface:  t.Surface,
		MenuMode: t.MenuMode,
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vitrine")
}

// DefaultStoragePath returns ~/.config/vitrine/vitrine.db, or an empty string
// if the home directory is unavailable.
func DefaultStoragePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "vitrine.db")
}

// DefaultTracesFilePath returns ~/.config/vitrine/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ValidateTheme checks the cosmetic theme fields.
func ValidateTheme(t ThemeConfig) error {
	switch t.MenuMode {
	case "", layout.MenuStatic, layout.MenuOverlay:
		return nil
	default:
		return fmt.Errorf("theme.menu_mode must be %q or %q, got %q", layout.MenuStatic, layout.MenuOverlay, t.MenuMode)
	}
}

// ValidatePalette checks the base color.
func ValidatePalette(p PaletteConfig) error {
	if p.BaseColor != "" && !color.IsValidHex(p.BaseColor) {
		return fmt.Errorf("palette.base_color must be a 6-digit hex color, got %q", p.BaseColor)
	}
	return nil
}

// ValidateTransition checks the transition duration.
func ValidateTransition(t TransitionConfig) error {
	if t.Duration < 0 {
		return fmt.Errorf("transition.duration must not be negative, got %v", t.Duration)
	}
	if t.Duration > 5*time.Second {
		return fmt.Errorf("transition.duration must be at most 5s, got %v", t.Duration)
	}
	return nil
}

// ValidateProfile checks the profile source settings.
func ValidateProfile(p ProfileConfig) error {
	if p.Timeout < 0 {
		return fmt.Errorf("profile.timeout must not be negative, got %v", p.Timeout)
	}
	if p.RetryAttempts < 0 || p.RetryAttempts > 10 {
		return fmt.Errorf("profile.retry_attempts must be between 0 and 10, got %d", p.RetryAttempts)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// Validate runs every section validator and joins their errors.
func (c Config) Validate() error {
	return errors.Join(
		ValidateTheme(c.Theme),
		ValidatePalette(c.Palette),
		ValidateTransition(c.Transition),
		ValidateProfile(c.Profile),
		ValidateTracing(c.Tracing),
	)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme: ThemeConfig{
			Preset:   theme.DefaultPreset,
			Primary:  theme.DefaultPrimary,
			MenuMode: layout.MenuStatic,
		},
		Palette: PaletteConfig{
			BaseColor: palette.DefaultBaseColor,
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath(),
		},
		Transition: TransitionConfig{
			Enabled:  true,
			Duration: 150 * time.Millisecond,
		},
		Profile: ProfileConfig{
			Timeout:       5 * time.Second,
			RetryAttempts: 3,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Vitrine Configuration

# Cosmetic theme fields published with the light/dark mode.
# The mode itself is not configured here: an explicit choice (press 't' in
# the playground or run 'vitrine mode dark') is persisted, otherwise the OS
# preference is followed.
theme:
  preset: Aura
  primary: emerald
  # surface: slate
  menu_mode: static   # "static" (default) or "overlay"

# Brand color used until the business profile delivers one
palette:
  base_color: "#976735"

# Mode preference storage
storage:
  # path: ~/.config/vitrine/vitrine.db
  disabled: false     # true keeps the preference in memory for the session

# OS color-scheme signal
# By default the terminal background is used. Point 'file' at a file holding
# "dark" or "light" to follow it live.
# scheme:
#   file: ~/.config/vitrine/color-scheme

# Animated mode transitions
transition:
  enabled: true
  duration: 150ms

# Business profile source (url takes precedence over file)
profile:
  # url: https://shop.example.com/api/profile
  # file: ./profile.yaml
  timeout: 5s
  retry_attempts: 3

# Tracing for profile fetches
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/vitrine/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
