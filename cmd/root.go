package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vitrine/internal/config"
	"github.com/zjrosen/vitrine/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".vitrine/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Storefront theming and layout state in the terminal",
	Long: `Vitrine derives a color ramp from a brand color, keeps light/dark mode
consistent with the stored preference and the OS, and tracks storefront
layout chrome. Run without a subcommand to open the interactive playground.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runPlayground,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vitrine/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also VITRINE_DEBUG; path from VITRINE_LOG)")
}

// setDefaults registers every config key so environment and flag lookups
// see the full key set.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("theme.preset", defaults.Theme.Preset)
	v.SetDefault("theme.primary", defaults.Theme.Primary)
	v.SetDefault("theme.surface", defaults.Theme.Surface)
	v.SetDefault("theme.menu_mode", defaults.Theme.MenuMode)
	v.SetDefault("palette.base_color", defaults.Palette.BaseColor)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("storage.disabled", defaults.Storage.Disabled)
	v.SetDefault("scheme.file", defaults.Scheme.File)
	v.SetDefault("transition.enabled", defaults.Transition.Enabled)
	v.SetDefault("transition.duration", defaults.Transition.Duration)
	v.SetDefault("profile.url", defaults.Profile.URL)
	v.SetDefault("profile.file", defaults.Profile.File)
	v.SetDefault("profile.timeout", defaults.Profile.Timeout)
	v.SetDefault("profile.retry_attempts", defaults.Profile.RetryAttempts)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vitrine")
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .vitrine/config.yaml (current directory)
		// 2. ~/.config/vitrine/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user default
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && userConfigDir() != "" {
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configPath is the file settings are saved to.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(userConfigDir(), "config.yaml")
}

func setup(cmd *cobra.Command, args []string) error {
	// Initialize logging if debug mode enabled (via flag or env var)
	if debugFlag || os.Getenv("VITRINE_DEBUG") != "" {
		logPath := os.Getenv("VITRINE_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "vitrine")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		logCleanup = cleanup
		debugFlag = true
		log.Info(log.CatConfig, "Vitrine starting", "version", version, "config", viper.ConfigFileUsed())
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
