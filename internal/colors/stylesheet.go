package colors

import "strings"

// StyleSheet renders the CSS custom properties for both modes. Light values
// live under :root and dark values under .dark.
func StyleSheet(modes Modes) string {
	modes = modes.Complete()
	var b strings.Builder
	writeBlock(&b, ":root", modes.Light)
	b.WriteString("\n")
	writeBlock(&b, ".dark", modes.Dark)
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, palette Palette) {
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, role := range Roles {
		b.WriteString("  --")
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(palette[role])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}
