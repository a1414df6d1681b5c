// Package color derives storefront color ramps from a single brand color.
//
// Everything here is pure: conversions between hex, RGB and HSL, the ten-step
// shade ramp, and a per-channel brightness fallback. HSL components are
// fractions in [0,1], not degrees or percentages.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// HSL is a color in hue/saturation/lightness space, each component in [0,1].
type HSL struct {
	H, S, L float64
}

// IsValidHex reports whether s is a 6-digit hex color with an optional '#'.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Normalize returns s as lowercase "#rrggbb", or false if s is not valid.
func Normalize(s string) (string, bool) {
	if !IsValidHex(s) {
		return "", false
	}
	return "#" + strings.ToLower(strings.TrimPrefix(s, "#")), true
}

// HexToRGB parses a 6-digit hex color.
func HexToRGB(hex string) (RGB, bool) {
	if !IsValidHex(hex) {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// Hex formats c as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSL converts c to HSL.
func (c RGB) HSL() HSL {
	return RGBToHSL(c.R, c.G, c.B)
}

// RGBToHSL converts 8-bit channels to HSL using max/min channel decomposition.
// Achromatic input (r == g == b) has hue and saturation 0.
func RGBToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}

	return HSL{H: h / 6, S: s, L: l}
}

// HSLToHex converts HSL to lowercase "#rrggbb". Saturation and lightness are
// clamped to [0,1]; hue wraps.
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// HSLToRGB converts HSL to 8-bit channels, rounding to nearest.
func HSLToRGB(h, s, l float64) RGB {
	s = clamp(s, 0, 1)
	l = clamp(l, 0, 1)
	h -= math.Floor(h)

	if s == 0 {
		v := channel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+1.0/3)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(clamp(math.Round(v*255), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// AdjustBrightness scales each channel by (1 + percentDelta/100), clamped to
// [0,255]. Invalid input is returned unchanged.
func AdjustBrightness(hex string, percentDelta float64) string {
	c, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	factor := 1 + percentDelta/100
	scale := func(v uint8) uint8 {
		return uint8(clamp(math.Round(float64(v)*factor), 0, 255))
	}
	return RGB{R: scale(c.R), G: scale(c.G), B: scale(c.B)}.Hex()
}

// Contrast returns black or white, whichever reads better on hex.
func Contrast(hex string) string {
	c, ok := HexToRGB(hex)
	if !ok {
		return "#000000"
	}
	// Rec. 601 luma
	luma := (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	if luma > 0.55 {
		return "#000000"
	}
	return "#ffffff"
}
