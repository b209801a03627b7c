package markdown

import (
	"strings"
	"testing"
)

func TestRendererRendersHeadingsAndLists(t *testing.T) {
	out, err := NewRenderer(Options{}).RenderString("# Refund Policy\n\n- within 7 days\n- full amount\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<h1 id="refund-policy">Refund Policy</h1>`) {
		t.Fatalf("expected heading with id, got %q", out)
	}
	if !strings.Contains(out, "<li>within 7 days</li>") {
		t.Fatalf("expected list items, got %q", out)
	}
}

func TestRendererSafeModeDropsRawHTML(t *testing.T) {
	source := "Hello <script>alert(1)</script>"
	unsafe, _ := NewRenderer(Options{}).RenderString(source)
	if !strings.Contains(unsafe, "<script>") {
		t.Fatalf("expected raw html kept by default, got %q", unsafe)
	}
	safe, _ := NewRenderer(Options{SafeMode: true}).RenderString(source)
	if strings.Contains(safe, "<script>") {
		t.Fatalf("expected raw html dropped in safe mode, got %q", safe)
	}
}

func TestCollectExtensionsIgnoresUnknown(t *testing.T) {
	exts := collectExtensions([]string{"table", "TABLE", "nope", " footnote "})
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(exts))
	}
}
