package snippets_test

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"testing"

	snippets "github.com/goliatone/go-snippets"
	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/mapdisplay"
	"github.com/goliatone/go-snippets/pkg/testsupport"
)

func TestExtractValueByIndex(t *testing.T) {
	if got := snippets.ExtractValueByIndex("pomme;orange;banane;fraise", "-1"); got != "fraise" {
		t.Fatalf("expected fraise, got %q", got)
	}
}

func TestNormalizeCoordinates(t *testing.T) {
	coord, ok := snippets.NormalizeCoordinates(`{"lat": 48.85, "lng": "2.35"}`)
	if !ok || coord.Lat != 48.85 || coord.Lng != 2.35 {
		t.Fatalf("unexpected coordinate %+v ok=%v", coord, ok)
	}
}

func TestRenderMap_FromProperties(t *testing.T) {
	store := testsupport.MustLoadSite(t)
	assets := &cms.AssetCollector{}

	result, err := snippets.RenderMap(testsupport.Context(), map[string]string{
		"resources": "12,45",
		"height":    "420px",
	}, nil, mapdisplay.WithStore(store), mapdisplay.WithAssets(assets))
	if err != nil {
		t.Fatalf("render map: %v", err)
	}
	if result.State != mapdisplay.StateRendered || len(result.Markers) != 2 {
		t.Fatalf("unexpected result state=%s markers=%d", result.State, len(result.Markers))
	}
	if !strings.Contains(result.HTML, "height: 420px;") {
		t.Fatalf("expected height in markup:\n%s", result.HTML)
	}
	if !strings.Contains(assets.HeadHTML(), "leaflet.css") {
		t.Fatalf("expected leaflet stylesheet registered, got %q", assets.HeadHTML())
	}
}

func TestRenderMap_Concurrent(t *testing.T) {
	store := testsupport.MustLoadSite(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := snippets.RenderMap(testsupport.Context(), map[string]string{"parent": "5"}, nil,
				mapdisplay.WithStore(store), mapdisplay.WithAssets(&cms.AssetCollector{}))
			if err != nil {
				errs <- err
				return
			}
			if result.State != mapdisplay.StateRendered {
				errs <- fmt.Errorf("unexpected state %s", result.State)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("render map: %v", err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.ReadFile(snippets.EmbeddedTemplates(), "templates/map.tmpl"); err != nil {
		t.Fatalf("expected map template: %v", err)
	}
}
