package trail

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an HSL colour. Saturation and lightness are percentages.
type Color struct {
	H float64 `yaml:"h" json:"h"`
	S float64 `yaml:"s" json:"s"`
	L float64 `yaml:"l" json:"l"`
}

// String renders the colour as a CSS hsl() value.
func (c Color) String() string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L)
}

// Hex renders the colour as #rrggbb.
func (c Color) Hex() string {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped().Hex()
}

// RainbowPalette is the default wave palette.
func RainbowPalette() []Color {
	return []Color{
		{0, 100, 60},
		{30, 100, 60},
		{60, 100, 50},
		{120, 100, 50},
		{180, 100, 50},
		{240, 100, 60},
		{280, 100, 60},
		{320, 100, 60},
	}
}
