package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-snippets/pkg/mapdisplay"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mapdisplay.DefaultOptions(), cfg.MapOptions()); diff != "" {
		t.Fatalf("map options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileEnvFlagPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.yaml")
	content := "map:\n  zoom: 8\n  height: 500px\nrender:\n  locale: fr\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SNIPPETS__MAP__ZOOM", "10")
	t.Setenv("SNIPPETS__MAP__TITLE_FIELD", "longtitle")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("zoom", 13, "")
	flags.String("width", "100%", "")
	if err := flags.Parse([]string{"--zoom=12"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Map.Zoom != 12 {
		t.Errorf("expected flag zoom 12, got %d", cfg.Map.Zoom)
	}
	if cfg.Map.Height != "500px" {
		t.Errorf("expected file height, got %q", cfg.Map.Height)
	}
	if cfg.Map.TitleField != "longtitle" {
		t.Errorf("expected env title field, got %q", cfg.Map.TitleField)
	}
	if cfg.Map.Width != "100%" {
		t.Errorf("unset flag must not override width, got %q", cfg.Map.Width)
	}
	if cfg.Render.Locale != "fr" {
		t.Errorf("expected locale fr, got %q", cfg.Render.Locale)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Map.Zoom = 25
	cfg.Map.CoordsField = ""
	cfg.Store.Driver = "sqlite"
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	want := []string{"map.coords_field", "map.zoom", "store.path", "logging.level"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "map.zoom: must be at most 19") {
		t.Fatalf("unexpected message:\n%s", err)
	}

	valid := Defaults()
	if err := valid.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoader_DumpYAML(t *testing.T) {
	loader := NewLoader(EnvPrefix)
	if err := loader.LoadWithDefaults(Defaults(), ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := loader.Set("map.zoom", 4); err != nil {
		t.Fatalf("set: %v", err)
	}

	var buf bytes.Buffer
	if err := loader.DumpYAML(&buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "zoom: 4") {
		t.Fatalf("expected zoom in dump:\n%s", buf.String())
	}
}

func TestDump(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("locale", "", "")
	if err := flags.Parse([]string{"--locale", "fr"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, "", flags); err != nil {
		t.Fatalf("dump: %v", err)
	}
	for _, want := range []string{"locale: fr", "coords_field: googlemap"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in dump:\n%s", want, buf.String())
		}
	}
}
