package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-snippets/pkg/render/template/gotemplate"
	"github.com/goliatone/go-snippets/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, w)
	})
	assertGolden(t, "hello.golden", result, written)
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	assertGolden(t, "use-global.golden", result, written)
}

func TestGoTemplateEngine_GlobalDataOption(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})
	assertGolden(t, "use-filter.golden", result, written)
}

func TestGoTemplateEngine_JSONFilterEscapesMarkup(t *testing.T) {
	engine := newEngine(t)

	type point struct {
		Lat   float64 `json:"lat"`
		Title string  `json:"title"`
	}
	data := map[string]any{
		"points": []point{{Lat: 48.85, Title: "<b>Paris</b>"}},
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-json.tmpl", data, w)
	})
	assertGolden(t, "use-json.golden", result, written)
}

func TestGoTemplateEngine_ConcurrentConstruction(t *testing.T) {
	const workers = 16

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engine, err := gotemplate.New(gotemplate.WithFS(embeddedTemplates))
			if err != nil {
				errs <- err
				return
			}
			got, err := engine.Render("{{ id|json }}", map[string]any{"id": fmt.Sprintf("m-%d", i)})
			if err != nil {
				errs <- err
				return
			}
			if want := fmt.Sprintf(`"m-%d"`, i); got != want {
				errs <- fmt.Errorf("worker %d: want %s, got %s", i, want, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent render: %v", err)
	}
}

func TestGoTemplateEngine_ConcurrentFilterRegistration(t *testing.T) {
	const workers = 8
	engine := newEngine(t)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			suffix := fmt.Sprintf("-%d", i)
			errs <- engine.RegisterFilter("suffix"+suffix[1:], func(input any, _ any) (any, error) {
				return fmt.Sprint(input) + suffix, nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("register filter: %v", err)
		}
	}

	got, err := engine.Render("{{ name|suffix3 }}", map[string]any{"name": "pin"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "pin-3" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_IntegersStayIntegers(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ zoom }}|{{ height }}", map[string]any{"zoom": 13, "height": "350px"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "13|350px" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte("Bonjour, {{ name }}!"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine := newEngine(t, gotemplate.WithBaseDir(dir))

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Bonjour, Ada!" {
		t.Fatalf("expected base dir template, got %q", result)
	}
}

func TestGoTemplateEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without loaders")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if err := engine.RegisterFilter(" ", nil); err == nil {
		t.Fatalf("expected error for empty filter")
	}
}

func assertGolden(t *testing.T, name, result, written string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if testsupport.WriteMaybeGolden(t, path, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, path)
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
