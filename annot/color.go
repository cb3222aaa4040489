package annot

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func toHexStr(i int) string {
	s := fmt.Sprintf("%x", i)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// colorHex renders an RGB triplet (components in 0..1) as #rrggbb.
func colorHex(c []float64) string {
	if len(c) < 3 {
		return ""
	}
	return "#" + toHexStr(int(c[0]*255)) + toHexStr(int(c[1]*255)) + toHexStr(int(c[2]*255))
}

// colorCategory maps an RGB triplet to a coarse color name via HSL. The
// bucket boundaries follow common highlighter palettes.
func colorCategory(c []float64) string {
	if len(c) < 3 {
		return ""
	}

	color := colorful.Color{R: c[0], G: c[1], B: c[2]}
	h, s, l := color.Hsl()

	if l < 0.12 {
		return "Black"
	}
	if l > 0.98 {
		return "White"
	}
	if s < 0.2 {
		return "Gray"
	}
	if h < 15 {
		return "Red"
	}
	if h < 45 {
		return "Orange"
	}
	if h < 65 {
		return "Yellow"
	}
	if h < 170 {
		return "Green"
	}
	if h < 190 {
		return "Cyan"
	}
	if h < 263 {
		return "Blue"
	}
	if h < 280 {
		return "Purple"
	}
	if h < 335 {
		return "Magenta"
	}
	return "Red"
}
