package colors

import (
	"fmt"
	"strings"
)

// Roles lists the theme color roles in stylesheet order.
var Roles = []string{
	"background",
	"foreground",
	"card",
	"card-foreground",
	"popover",
	"popover-foreground",
	"primary",
	"primary-foreground",
	"secondary",
	"secondary-foreground",
	"muted",
	"muted-foreground",
	"accent",
	"accent-foreground",
	"destructive",
	"destructive-foreground",
	"border",
	"input",
	"ring",
}

// Palette maps a role name to its HSL triple.
type Palette map[string]string

// Modes holds the light and dark palettes of the site theme.
type Modes struct {
	Light Palette `json:"light"`
	Dark  Palette `json:"dark"`
}

func DefaultLight() Palette {
	return Palette{
		"background":             "210 20% 98%",
		"foreground":             "210 10% 23%",
		"card":                   "210 20% 100%",
		"card-foreground":        "210 10% 23%",
		"popover":                "210 20% 100%",
		"popover-foreground":     "210 10% 23%",
		"primary":                "210 65% 50%",
		"primary-foreground":     "0 0% 100%",
		"secondary":              "210 20% 94%",
		"secondary-foreground":   "210 10% 23%",
		"muted":                  "210 20% 90%",
		"muted-foreground":       "210 10% 45%",
		"accent":                 "180 65% 50%",
		"accent-foreground":      "0 0% 100%",
		"destructive":            "0 84.2% 60.2%",
		"destructive-foreground": "0 0% 98%",
		"border":                 "210 20% 88%",
		"input":                  "210 20% 92%",
		"ring":                   "210 65% 50%",
	}
}

func DefaultDark() Palette {
	return Palette{
		"background":             "210 20% 10%",
		"foreground":             "210 20% 98%",
		"card":                   "210 20% 12%",
		"card-foreground":        "210 20% 98%",
		"popover":                "210 20% 10%",
		"popover-foreground":     "210 20% 98%",
		"primary":                "210 65% 60%",
		"primary-foreground":     "0 0% 100%",
		"secondary":              "210 20% 18%",
		"secondary-foreground":   "210 20% 98%",
		"muted":                  "210 20% 22%",
		"muted-foreground":       "210 20% 70%",
		"accent":                 "180 65% 60%",
		"accent-foreground":      "0 0% 100%",
		"destructive":            "0 62.8% 30.6%",
		"destructive-foreground": "210 20% 98%",
		"border":                 "210 20% 25%",
		"input":                  "210 20% 25%",
		"ring":                   "210 65% 60%",
	}
}

func DefaultModes() Modes {
	return Modes{Light: DefaultLight(), Dark: DefaultDark()}
}

// Complete returns a palette holding every role, taking stored values first
// and the defaults for anything missing or empty.
func (p Palette) Complete(defaults Palette) Palette {
	out := make(Palette, len(defaults))
	for role, value := range defaults {
		out[role] = value
	}
	for role, value := range p {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out[role] = value
	}
	return out
}

// Complete fills both modes from the built-in defaults.
func (m Modes) Complete() Modes {
	return Modes{
		Light: m.Light.Complete(DefaultLight()),
		Dark:  m.Dark.Complete(DefaultDark()),
	}
}

// Normalize converts hex swatches to HSL triples and rejects values that are
// neither. Unknown roles are rejected too.
func (p Palette) Normalize() (Palette, error) {
	known := make(map[string]struct{}, len(Roles))
	for _, role := range Roles {
		known[role] = struct{}{}
	}
	out := make(Palette, len(p))
	for role, value := range p {
		if _, ok := known[role]; !ok {
			return nil, fmt.Errorf("colors: unknown role %q", role)
		}
		value = strings.TrimSpace(value)
		switch {
		case value == "":
			continue
		case IsHex(value):
			out[role] = HexToHSL(value)
		case IsHSL(value):
			out[role] = value
		default:
			return nil, fmt.Errorf("colors: role %q has invalid color %q", role, value)
		}
	}
	return out, nil
}

// Hex renders the palette as hex swatches for color pickers.
func (p Palette) Hex() map[string]string {
	out := make(map[string]string, len(p))
	for role, value := range p {
		out[role] = HSLToHex(value)
	}
	return out
}
