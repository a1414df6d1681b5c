package color

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#976735", RGB{151, 103, 53}, true},
		{"976735", RGB{151, 103, 53}, true},
		{"#FFFFFF", RGB{255, 255, 255}, true},
		{"#000000", RGB{0, 0, 0}, true},
		{"#97673", RGB{}, false},
		{"#97673g", RGB{}, false},
		{"##976735", RGB{}, false},
		{"not-a-color", RGB{}, false},
		{"", RGB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := HexToRGB(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("ABCDEF")
	require.True(t, ok)
	require.Equal(t, "#abcdef", got)

	_, ok = Normalize("#abc")
	require.False(t, ok)
}

func TestRGBToHSL_Primaries(t *testing.T) {
	red := RGBToHSL(255, 0, 0)
	require.InDelta(t, 0.0, red.H, 1e-9)
	require.InDelta(t, 1.0, red.S, 1e-9)
	require.InDelta(t, 0.5, red.L, 1e-9)

	green := RGBToHSL(0, 255, 0)
	require.InDelta(t, 1.0/3, green.H, 1e-9)

	blue := RGBToHSL(0, 0, 255)
	require.InDelta(t, 2.0/3, blue.H, 1e-9)
}

func TestRGBToHSL_Achromatic(t *testing.T) {
	gray := RGBToHSL(128, 128, 128)
	require.Zero(t, gray.H)
	require.Zero(t, gray.S)
	require.InDelta(t, 128.0/255, gray.L, 1e-9)
}

func TestHSLToHex_ClampsLightness(t *testing.T) {
	require.Equal(t, "#ffffff", HSLToHex(0.3, 0.5, 1.4))
	require.Equal(t, "#000000", HSLToHex(0.3, 0.5, -0.2))
	require.Equal(t, "#ff0000", HSLToHex(0, 1, 0.5))
}

func TestHSLRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := uint8(rapid.IntRange(0, 255).Draw(t, "r"))
		g := uint8(rapid.IntRange(0, 255).Draw(t, "g"))
		b := uint8(rapid.IntRange(0, 255).Draw(t, "b"))

		hsl := RGBToHSL(r, g, b)
		back, ok := HexToRGB(HSLToHex(hsl.H, hsl.S, hsl.L))
		if !ok {
			t.Fatalf("round trip produced invalid hex")
		}

		within := func(a, b uint8) bool {
			d := int(a) - int(b)
			return d >= -1 && d <= 1
		}
		if !within(r, back.R) || !within(g, back.G) || !within(b, back.B) {
			t.Fatalf("round trip of (%d,%d,%d) gave (%d,%d,%d)", r, g, b, back.R, back.G, back.B)
		}
	})
}

func TestDeriveShades_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.StringMatching(`#?[0-9a-fA-F]{6}`).Draw(t, "base")

		shades := DeriveShades(base)
		if len(shades) != len(ShadeKeys) {
			t.Fatalf("got %d shades for %s", len(shades), base)
		}

		prev := 2.0
		for _, key := range ShadeKeys {
			hex, ok := shades[key]
			if !ok {
				t.Fatalf("missing shade %d", key)
			}
			rgb, ok := HexToRGB(hex)
			if !ok {
				t.Fatalf("shade %d is not hex: %q", key, hex)
			}
			l := rgb.HSL().L
			if l > prev+1e-12 {
				t.Fatalf("shade %d lighter than previous: %v > %v", key, l, prev)
			}
			prev = l
		}
	})
}

func TestDeriveShades_BasePreservedAt500(t *testing.T) {
	base, _ := HexToRGB("#976735")
	baseHSL := base.HSL()

	shades := DeriveShades("#976735")
	require.Equal(t, "#976735", shades[Shade500])

	got, ok := HexToRGB(shades[Shade500])
	require.True(t, ok)
	require.InDelta(t, baseHSL.H, got.HSL().H, 1e-6)
	require.InDelta(t, baseHSL.S, got.HSL().S, 1e-6)

	for _, s := range DeriveRamp("#976735") {
		require.Equal(t, baseHSL.H, s.HSL.H, "hue held at shade %d", s.Key)
		require.Equal(t, baseHSL.S, s.HSL.S, "saturation held at shade %d", s.Key)
	}
}

func TestDeriveRamp_LightnessTable(t *testing.T) {
	ramp := DeriveRamp("#976735") // l = 0.4
	want := map[ShadeKey]float64{
		Shade50: 0.95, Shade100: 0.90, Shade200: 0.80, Shade300: 0.70, Shade400: 0.60,
		Shade500: 0.40, Shade600: 0.30, Shade700: 0.20, Shade800: 0.10, Shade900: 0.05,
	}
	for _, s := range ramp {
		require.InDelta(t, want[s.Key], s.HSL.L, 1e-9, "shade %d", s.Key)
	}
}

func TestDeriveRamp_LightBaseKeepsOrder(t *testing.T) {
	ramp := DeriveRamp("#f2e6d9") // l ≈ 0.9
	base, _ := HexToRGB("#f2e6d9")

	require.InDelta(t, base.HSL().L, ramp[5].HSL.L, 1e-9)
	for i := 1; i < len(ramp); i++ {
		require.LessOrEqual(t, ramp[i].HSL.L, ramp[i-1].HSL.L)
	}
}

func TestDeriveShades_Invalid(t *testing.T) {
	require.Empty(t, DeriveShades("not-a-color"))
	require.Nil(t, DeriveRamp("#12345"))
}

func TestDeriveShades_MemoReturnsCopy(t *testing.T) {
	ResetMemo()

	first := DeriveShades("#3366cc")
	first[Shade500] = "#000000"

	second := DeriveShades("#3366CC")
	require.NotEqual(t, "#000000", second[Shade500])
	require.Equal(t, DeriveRamp("#3366cc")[5].Hex, second[Shade500])
}

func TestAdjustBrightness(t *testing.T) {
	require.Equal(t, "#cccccc", AdjustBrightness("#ffffff", -20))
	require.Equal(t, "#ffffff", AdjustBrightness("#cccccc", 50))
	require.Equal(t, "#79522a", AdjustBrightness("#976735", -20))
	require.Equal(t, "garbage", AdjustBrightness("garbage", -20))
}

func TestContrast(t *testing.T) {
	require.Equal(t, "#000000", Contrast("#ffffff"))
	require.Equal(t, "#ffffff", Contrast("#000000"))
	require.Equal(t, "#000000", Contrast("bogus"))
}
