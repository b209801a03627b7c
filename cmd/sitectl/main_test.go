package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/site"
)

func newTestModule(t *testing.T) *sitecms.Module {
	t.Helper()
	cfg := sitecms.DefaultConfig()
	cfg.Auth.Provider = "static"
	cfg.Auth.StaticToken = "token"
	cfg.Logging.Provider = "noop"
	module, err := sitecms.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func execute(t *testing.T, module *sitecms.Module, confirm func(string) (bool, error), args ...string) (string, error) {
	t.Helper()
	t.Setenv("SITECMS_AUTH_PROVIDER", "static")
	t.Setenv("SITECMS_AUTH_STATIC_TOKEN", "token")
	d := deps{
		open: func(context.Context, sitecms.Config, ...di.Option) (*sitecms.Module, error) {
			return module, nil
		},
		confirm: confirm,
	}
	root := newRootCmd(d)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func refuse(string) (bool, error) { return false, nil }

func TestExportThenImport(t *testing.T) {
	source := newTestModule(t)
	if _, err := source.Site().General.Update(context.Background(), site.GeneralSettings{WebsiteName: "From CLI"}); err != nil {
		t.Fatalf("seed general: %v", err)
	}

	file := filepath.Join(t.TempDir(), "export.json")
	if _, err := execute(t, source, refuse, "export", "--out", file); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), "From CLI") {
		t.Fatalf("export is missing the general settings: %s", raw)
	}

	target := newTestModule(t)
	if _, err := execute(t, target, refuse, "import", file); !errors.Is(err, errImportCancelled) {
		t.Fatalf("expected errImportCancelled, got %v", err)
	}

	out, err := execute(t, target, refuse, "import", file, "--yes")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out == "" {
		t.Fatalf("expected an import report")
	}
	general, err := target.Site().General.Get(context.Background())
	if err != nil {
		t.Fatalf("get general: %v", err)
	}
	if general.WebsiteName != "From CLI" {
		t.Fatalf("expected imported website name got %q", general.WebsiteName)
	}
}

func TestImportConfirmedInteractively(t *testing.T) {
	module := newTestModule(t)
	file := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(file, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	var asked string
	confirm := func(title string) (bool, error) {
		asked = title
		return true, nil
	}

	_, err := execute(t, module, confirm, "import", file)
	if err == nil || !strings.Contains(err.Error(), "Invalid JSON file format.") {
		t.Fatalf("expected a parse failure, got %v", err)
	}
	if !strings.Contains(asked, "broken.json") {
		t.Fatalf("expected the prompt to name the file, got %q", asked)
	}
}

func TestRevalidateIssuesSiteMarker(t *testing.T) {
	module := newTestModule(t)
	module.Revalidations().Reset()

	out, err := execute(t, module, refuse, "revalidate")
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if !strings.Contains(out, "site") {
		t.Fatalf("unexpected output %q", out)
	}
	if len(module.Revalidations().Events()) != 1 {
		t.Fatalf("expected one recorded event got %d", len(module.Revalidations().Events()))
	}

	if _, err := execute(t, module, refuse, "revalidate", "--content-type", "nope"); err == nil {
		t.Fatalf("expected unknown content type to fail")
	}
}
