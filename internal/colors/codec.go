package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// FallbackHSL is returned by HexToHSL for anything that is not a #RGB or #RRGGBB value.
	FallbackHSL = "0 0% 0%"
	// FallbackHex is returned by HSLToHex for malformed triples.
	FallbackHex = "#000000"
)

// HexToHSL converts "#RRGGBB" or "#RGB" into the "h s% l%" triple stored in
// theme documents. Components are rounded to whole numbers.
func HexToHSL(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return FallbackHSL
	}

	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
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
		h /= 6
	}

	return fmt.Sprintf("%d %d%% %d%%", round(h*360), round(s*100), round(l*100))
}

// HSLToHex converts an "h s% l%" triple into lowercase "#rrggbb". Hue is
// taken modulo 360 so 360 and 0 name the same color.
func HSLToHex(hsl string) string {
	h, s, l, ok := parseHSL(hsl)
	if !ok {
		return FallbackHex
	}

	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s /= 100
	l /= 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return fmt.Sprintf("#%02x%02x%02x", channel(r+m), channel(g+m), channel(b+m))
}

// IsHex reports whether value is a #RGB or #RRGGBB color.
func IsHex(value string) bool {
	_, _, _, ok := parseHex(value)
	return ok
}

// IsHSL reports whether value parses as an "h s% l%" triple.
func IsHSL(value string) bool {
	_, _, _, ok := parseHSL(value)
	return ok
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	if !strings.HasPrefix(hex, "#") {
		return 0, 0, 0, false
	}
	digits := hex[1:]
	switch len(digits) {
	case 3:
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(value >> 16), uint8(value >> 8), uint8(value), true
}

func parseHSL(hsl string) (h, s, l float64, ok bool) {
	parts := strings.Fields(hsl)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, false
		}
		values[i] = v
	}
	return values[0], values[1], values[2], true
}

// round matches half-up rounding for the non-negative values used here.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func channel(v float64) int {
	c := round(v * 255)
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return c
}
