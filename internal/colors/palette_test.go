package colors

import (
	"strings"
	"testing"
)

func TestDefaultPalettesCoverEveryRole(t *testing.T) {
	for name, palette := range map[string]Palette{"light": DefaultLight(), "dark": DefaultDark()} {
		if len(palette) != len(Roles) {
			t.Fatalf("%s: expected %d roles got %d", name, len(Roles), len(palette))
		}
		for _, role := range Roles {
			if !IsHSL(palette[role]) {
				t.Fatalf("%s: role %s has invalid value %q", name, role, palette[role])
			}
		}
	}
}

func TestCompleteFillsMissingRoles(t *testing.T) {
	sparse := Modes{Light: Palette{"primary": "10 50% 50%", "ring": ""}}
	full := sparse.Complete()

	if full.Light["primary"] != "10 50% 50%" {
		t.Fatalf("expected stored primary to win, got %q", full.Light["primary"])
	}
	if full.Light["ring"] != DefaultLight()["ring"] {
		t.Fatalf("expected empty ring to fall back, got %q", full.Light["ring"])
	}
	if len(full.Dark) != len(Roles) {
		t.Fatalf("expected complete dark palette, got %d roles", len(full.Dark))
	}
}

func TestNormalizeConvertsHex(t *testing.T) {
	out, err := Palette{"primary": "#0055ff", "accent": "180 65% 50%"}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out["primary"] != "220 100% 50%" {
		t.Fatalf("expected converted hex, got %q", out["primary"])
	}
	if _, err := (Palette{"primary": "blue"}).Normalize(); err == nil {
		t.Fatal("expected invalid color error")
	}
	if _, err := (Palette{"sidebar": "0 0% 0%"}).Normalize(); err == nil {
		t.Fatal("expected unknown role error")
	}
}

func TestStyleSheet(t *testing.T) {
	css := StyleSheet(Modes{})
	if !strings.HasPrefix(css, ":root {\n  --background: 210 20% 98%;\n") {
		t.Fatalf("unexpected light block: %q", css[:60])
	}
	if !strings.Contains(css, ".dark {\n  --background: 210 20% 10%;\n") {
		t.Fatal("expected dark block")
	}
	if strings.Count(css, "--") != 2*len(Roles) {
		t.Fatalf("expected %d variables", 2*len(Roles))
	}
}
