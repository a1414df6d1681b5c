package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "Aura", cfg.Theme.Preset)
	require.Equal(t, "static", cfg.Theme.MenuMode)
	require.Equal(t, "#976735", cfg.Palette.BaseColor)
	require.True(t, cfg.Transition.Enabled)
	require.Equal(t, 150*time.Millisecond, cfg.Transition.Duration)
	require.Equal(t, 3, cfg.Profile.RetryAttempts)
	require.False(t, cfg.Tracing.Enabled, "tracing should be disabled by default")
	require.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestDefaultStoragePath(t *testing.T) {
	path := DefaultStoragePath()
	if path == "" {
		t.Skip("no home directory")
	}
	require.Equal(t, "vitrine.db", filepath.Base(path))
	require.Equal(t, "vitrine", filepath.Base(filepath.Dir(path)))
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{MenuMode: "overlay"}))

	err := ValidateTheme(ThemeConfig{MenuMode: "slim"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "theme.menu_mode")
}

func TestValidatePalette(t *testing.T) {
	require.NoError(t, ValidatePalette(PaletteConfig{}))
	require.NoError(t, ValidatePalette(PaletteConfig{BaseColor: "3366CC"}))

	err := ValidatePalette(PaletteConfig{BaseColor: "#fff"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "palette.base_color")
}

func TestValidateTransition(t *testing.T) {
	require.NoError(t, ValidateTransition(TransitionConfig{Duration: 0}))
	require.Error(t, ValidateTransition(TransitionConfig{Duration: -time.Millisecond}))
	require.Error(t, ValidateTransition(TransitionConfig{Duration: time.Minute}))
}

func TestValidateProfile(t *testing.T) {
	require.NoError(t, ValidateProfile(ProfileConfig{RetryAttempts: 0}))
	require.Error(t, ValidateProfile(ProfileConfig{Timeout: -time.Second}))
	require.Error(t, ValidateProfile(ProfileConfig{RetryAttempts: 11}))
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr string
	}{
		{"empty", TracingConfig{}, ""},
		{"file", TracingConfig{Enabled: true, Exporter: "file"}, ""},
		{"sample rate high", TracingConfig{SampleRate: 1.5}, "sample_rate"},
		{"sample rate negative", TracingConfig{SampleRate: -0.1}, "sample_rate"},
		{"bad exporter", TracingConfig{Exporter: "zipkin"}, "tracing.exporter"},
		{"otlp without endpoint", TracingConfig{Enabled: true, Exporter: "otlp"}, "otlp_endpoint"},
		{"otlp disabled", TracingConfig{Exporter: "otlp"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateJoinsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.MenuMode = "slim"
	cfg.Palette.BaseColor = "nope"

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "theme.menu_mode")
	require.Contains(t, err.Error(), "palette.base_color")
}

func TestTracingConfig_Provider(t *testing.T) {
	p := TracingConfig{Enabled: true, Exporter: "stdout"}.Provider()
	require.True(t, p.Enabled)
	require.Equal(t, "stdout", p.Exporter)
	require.Equal(t, "localhost:4317", p.OTLPEndpoint)
	require.Equal(t, 1.0, p.SampleRate)
	require.Equal(t, "vitrine", p.ServiceName)
}

func TestThemeConfig_Cosmetics(t *testing.T) {
	c := ThemeConfig{Preset: "Lara", Primary: "amber", Surface: "slate", MenuMode: "overlay"}.Cosmetics()
	require.Equal(t, "Lara", c.Preset)
	require.Equal(t, "amber", c.Primary)
	require.Equal(t, "slate", c.Surface)
	require.Equal(t, "overlay", c.MenuMode)
	require.Empty(t, c.Mode)
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))
	require.Contains(t, parsed, "theme")
	require.Contains(t, parsed, "palette")
}

func TestDefaultConfigTemplate_LoadsLikeDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var got Config
	require.NoError(t, v.Unmarshal(&got))

	want := Defaults()
	require.Equal(t, want.Theme, got.Theme)
	require.Equal(t, want.Palette, got.Palette)
	require.Equal(t, want.Transition, got.Transition, "durations decode from strings")
	require.Equal(t, want.Profile, got.Profile)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestSaveBaseColor_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveBaseColor(path, "3366CC"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Brand color used until the business profile delivers one")

	var parsed struct {
		Palette struct {
			BaseColor string `yaml:"base_color"`
		} `yaml:"palette"`
		Theme struct {
			Preset string `yaml:"preset"`
		} `yaml:"theme"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Equal(t, "#3366cc", parsed.Palette.BaseColor)
	require.Equal(t, "Aura", parsed.Theme.Preset, "other sections untouched")
}

func TestSaveBaseColor_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir", "config.yaml")

	require.NoError(t, SaveBaseColor(path, "#cc3366"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "palette:\n  base_color: \"#cc3366\"\n", string(data))
}

func TestSaveBaseColor_Errors(t *testing.T) {
	dir := t.TempDir()

	require.Error(t, SaveBaseColor(filepath.Join(dir, "c.yaml"), "nope"))

	scalar := filepath.Join(dir, "scalar.yaml")
	require.NoError(t, os.WriteFile(scalar, []byte("palette: red\n"), 0o600))
	err := SaveBaseColor(scalar, "#3366cc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("palette: [\n"), 0o600))
	require.ErrorContains(t, SaveBaseColor(broken, "#3366cc"), "parsing config")
}
