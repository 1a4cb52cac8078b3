package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-snippets/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestNotice_LocaleFallbacks(t *testing.T) {
	cases := []struct {
		locale string
		want   string
	}{
		{locale: "", want: "No points to display on the map."},
		{locale: "fr", want: "Aucun point à afficher sur la carte."},
		{locale: "fr_CA", want: "Aucun point à afficher sur la carte."},
		{locale: "de", want: "No points to display on the map."},
	}
	for _, tc := range cases {
		got := render.Notice(render.RenderOptions{Locale: tc.locale}, render.NoticeNoMarkers)
		if got != tc.want {
			t.Fatalf("locale %q: want %q, got %q", tc.locale, tc.want, got)
		}
	}
}

func TestNotice_TranslatorOverridesCatalog(t *testing.T) {
	opts := render.RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{render.NoticeNoResource: "Ningún recurso."},
	}
	if got := render.Notice(opts, render.NoticeNoResource); got != "Ningún recurso." {
		t.Fatalf("expected translator message, got %q", got)
	}
	if got := render.Notice(opts, render.NoticeNoMarkers); got != "No points to display on the map." {
		t.Fatalf("expected catalog fallback, got %q", got)
	}
}

func TestNotice_OnMissing(t *testing.T) {
	opts := render.RenderOptions{
		OnMissing: func(locale, key string, _ []any, err error) string {
			if err == nil {
				t.Fatalf("expected error for missing key")
			}
			return "missing:" + key
		},
	}
	if got := render.Notice(opts, "map.unknown"); got != "missing:map.unknown" {
		t.Fatalf("unexpected missing handler result %q", got)
	}
	if got := render.Notice(render.RenderOptions{}, "map.unknown"); got != "map.unknown" {
		t.Fatalf("expected key as default fallback, got %q", got)
	}
}

func TestCatalog_FormatsArguments(t *testing.T) {
	catalog := render.Catalog{"en": {"map.count": "%d points"}}
	got, err := catalog.Translate("en-US", "map.count", 3)
	if err != nil || got != "3 points" {
		t.Fatalf("got %q err=%v", got, err)
	}
}
