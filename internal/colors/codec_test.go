package colors

import (
	"strconv"
	"testing"
)

func TestHexToHSL(t *testing.T) {
	cases := []struct {
		hex  string
		want string
	}{
		{"#0055ff", "220 100% 50%"},
		{"#00aaff", "200 100% 50%"},
		{"#ffffff", "0 0% 100%"},
		{"#fff", "0 0% 100%"},
		{"#abc", "210 25% 73%"},
		{"#3b82f6", "217 91% 60%"},
		{"#336699", "210 50% 40%"},
		{"#E11D48", "347 77% 50%"},
	}
	for _, tc := range cases {
		if got := HexToHSL(tc.hex); got != tc.want {
			t.Fatalf("HexToHSL(%q): expected %q got %q", tc.hex, tc.want, got)
		}
	}
}

func TestHSLToHex(t *testing.T) {
	cases := []struct {
		hsl  string
		want string
	}{
		{"210 20% 98%", "#f9fafb"},
		{"210 65% 50%", "#2d80d2"},
		{"0 84.2% 60.2%", "#ef4444"},
		{"180 65% 50%", "#2dd2d2"},
		{"0 0% 100%", "#ffffff"},
		{"360 100% 50%", "#ff0000"},
	}
	for _, tc := range cases {
		if got := HSLToHex(tc.hsl); got != tc.want {
			t.Fatalf("HSLToHex(%q): expected %q got %q", tc.hsl, tc.want, got)
		}
	}
}

func TestFallbacks(t *testing.T) {
	for _, in := range []string{"not-a-color", "", "0055ff", "#12", "#12345", "#gggggg", "#1234567"} {
		if got := HexToHSL(in); got != FallbackHSL {
			t.Fatalf("HexToHSL(%q): expected fallback, got %q", in, got)
		}
	}
	for _, in := range []string{"garbage", "", "10 20%", "a b c", "1 2% 3% 4%"} {
		if got := HSLToHex(in); got != FallbackHex {
			t.Fatalf("HSLToHex(%q): expected fallback, got %q", in, got)
		}
	}
}

func TestRoundTripWithinOneUnit(t *testing.T) {
	swatches := []string{
		"#0055ff", "#00aaff", "#ffffff", "#000000", "#ff0000", "#00ff00",
		"#0000ff", "#3b82f6", "#808080", "#f4f6f8", "#2d6fd2", "#e11d48",
		"#fafafa", "#1e293b", "#336699", "#f59e0b", "#6366f1", "#ffcc00",
		"#663399",
	}
	for _, hex := range swatches {
		back := HSLToHex(HexToHSL(hex))
		for i := 1; i < 7; i += 2 {
			want, _ := strconv.ParseUint(hex[i:i+2], 16, 8)
			got, _ := strconv.ParseUint(back[i:i+2], 16, 8)
			diff := int(want) - int(got)
			if diff < -1 || diff > 1 {
				t.Fatalf("round trip %s -> %s -> %s drifts by %d", hex, HexToHSL(hex), back, diff)
			}
		}
	}
}
