package color

import "math"

// ShadeKey identifies one step of the ramp, 50 (lightest) to 900 (darkest).
type ShadeKey int

const (
	Shade50  ShadeKey = 50
	Shade100 ShadeKey = 100
	Shade200 ShadeKey = 200
	Shade300 ShadeKey = 300
	Shade400 ShadeKey = 400
	Shade500 ShadeKey = 500
	Shade600 ShadeKey = 600
	Shade700 ShadeKey = 700
	Shade800 ShadeKey = 800
	Shade900 ShadeKey = 900
)

// ShadeKeys lists every key in ramp order.
var ShadeKeys = []ShadeKey{
	Shade50, Shade100, Shade200, Shade300, Shade400,
	Shade500, Shade600, Shade700, Shade800, Shade900,
}

// Shades maps each key to a "#rrggbb" color. An empty map means no palette.
type Shades map[ShadeKey]string

// Shade is one derived ramp step.
type Shade struct {
	Key ShadeKey
	HSL HSL
	Hex string
}

const (
	minLightness = 0.05
	maxLightness = 0.95
)

// Fixed lightness for the light half of the ramp.
var lightSteps = map[ShadeKey]float64{
	Shade50:  0.95,
	Shade100: 0.90,
	Shade200: 0.80,
	Shade300: 0.70,
	Shade400: 0.60,
}

// Offsets from the base lightness for the dark half.
var darkSteps = map[ShadeKey]float64{
	Shade500: 0,
	Shade600: -0.10,
	Shade700: -0.20,
	Shade800: -0.30,
	Shade900: -0.40,
}

// DeriveRamp computes the ten shades of base in key order. Hue and saturation
// are held at the base's values; only lightness varies. Returns nil when base
// is not a valid hex color.
//
// A light half step never ends up darker than the step after it, so for
// very light bases the upper shades flatten toward shade 500 instead of
// dipping below it.
func DeriveRamp(base string) []Shade {
	rgb, ok := HexToRGB(base)
	if !ok {
		return nil
	}
	hsl := rgb.HSL()

	ramp := make([]Shade, len(ShadeKeys))
	for i := len(ShadeKeys) - 1; i >= 0; i-- {
		key := ShadeKeys[i]
		var l float64
		if off, dark := darkSteps[key]; dark {
			l = hsl.L + off
		} else {
			l = math.Max(lightSteps[key], ramp[i+1].HSL.L)
		}
		l = clamp(l, minLightness, maxLightness)

		shade := HSL{H: hsl.H, S: hsl.S, L: l}
		ramp[i] = Shade{Key: key, HSL: shade, Hex: HSLToHex(shade.H, shade.S, shade.L)}
	}
	return ramp
}

// DeriveShades returns the ramp for base as a map, or an empty map when base
// is invalid. Results are memoized by normalized base color; the returned map
// is the caller's to modify.
func DeriveShades(base string) Shades {
	norm, ok := Normalize(base)
	if !ok {
		return Shades{}
	}
	if cached, hit := memo.get(norm); hit {
		return cached.clone()
	}

	shades := make(Shades, len(ShadeKeys))
	for _, s := range DeriveRamp(norm) {
		shades[s.Key] = s.Hex
	}
	memo.set(norm, shades.clone())
	return shades
}

func (s Shades) clone() Shades {
	out := make(Shades, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
