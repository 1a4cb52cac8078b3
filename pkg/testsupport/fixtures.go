package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/cms/memstore"
)

// FixturePath resolves a file under pkg/testsupport/testdata regardless of
// the calling package's working directory.
func FixturePath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// MustLoadSite loads the shared site.yaml fixture: a parent (5) with Paris,
// Lyon (plus a nested child), a resource with an invalid coordinate and an
// unpublished draft.
func MustLoadSite(t *testing.T) *memstore.Store {
	t.Helper()

	store, err := memstore.LoadFile(FixturePath("site.yaml"))
	if err != nil {
		t.Fatalf("load site fixture: %v", err)
	}
	return store
}

// MustGet fetches a resource from store or fails the test.
func MustGet(t *testing.T, store cms.Store, id cms.ID) cms.Resource {
	t.Helper()

	res, err := store.Get(Context(), id)
	if err != nil {
		t.Fatalf("get resource %d: %v", id, err)
	}
	return res
}

// Resource is a hand-built cms.Resource for tests that do not need a store.
type Resource struct {
	Key       cms.ID
	Published bool
	Fields    map[string]string
	TVs       map[string]string
}

var _ cms.Resource = Resource{}

func (r Resource) ID() cms.ID                          { return r.Key }
func (r Resource) IsPublished() bool                   { return r.Published }
func (r Resource) Field(name string) string            { return r.Fields[name] }
func (r Resource) TemplateVarValue(name string) string { return r.TVs[name] }

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
