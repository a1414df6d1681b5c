// Package theme owns the light/dark mode of the client and the cosmetic
// preset fields published alongside it.
package theme

import "strings"

// Mode is the color mode. Only ModeLight and ModeDark are valid.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// PreferenceKey is the single storage key holding an explicit mode choice.
const PreferenceKey = "vitrine-theme"

// Class names applied to every platform.Targets element in dark mode.
const (
	DarkClass    = "dark"
	AppDarkClass = "app-dark"
)

// ParseMode accepts "light" or "dark", case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	default:
		return "", false
	}
}

// Valid reports whether m is ModeLight or ModeDark.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

func (m Mode) String() string { return string(m) }

// Config is the published theme snapshot. IsDark is derived from Mode when
// the snapshot is taken and has no setter.
type Config struct {
	Mode     Mode
	IsDark   bool
	Preset   string
	Primary  string
	Surface  string
	MenuMode string
}

// Default cosmetic fields.
const (
	DefaultPreset   = "Aura"
	DefaultPrimary  = "emerald"
	DefaultMenuMode = "static"
)
