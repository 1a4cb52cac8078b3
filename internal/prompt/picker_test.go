package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/mapdisplay"
	"github.com/goliatone/go-snippets/pkg/testsupport"
)

type stubDriver struct {
	selectCfg SelectConfig
	selected  []int
	zoom      string
	infos     []string
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.zoom == "" {
		return cfg.Default, nil
	}
	return d.zoom, nil
}

func (d *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	d.selectCfg = cfg
	return d.selected, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestPickResources(t *testing.T) {
	store := testsupport.MustLoadSite(t)
	driver := &stubDriver{selected: []int{0, 2}, zoom: "9"}

	opts := mapdisplay.DefaultOptions()
	got, err := PickResources(testsupport.Context(), driver, store, 5, opts)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}

	wantLabels := []string{
		"Paris (#12)",
		"Lyon (#45)",
		"Lyon - Vieux Lyon (#90)",
		"Nulle part (#67)",
		"Brouillon (#89) [unpublished]",
	}
	if diff := cmp.Diff(wantLabels, driver.selectCfg.Options); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, driver.selectCfg.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	want := opts
	want.ResourceIDs = []cms.ID{12, 90}
	want.Zoom = 9
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestPickResources_NoCandidates(t *testing.T) {
	store := testsupport.MustLoadSite(t)
	driver := &stubDriver{}

	_, err := PickResources(testsupport.Context(), driver, store, 12, mapdisplay.DefaultOptions())
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
	if len(driver.infos) != 1 {
		t.Fatalf("expected an info message, got %v", driver.infos)
	}
}

func TestPickResources_RejectsInvalidZoom(t *testing.T) {
	store := testsupport.MustLoadSite(t)
	driver := &stubDriver{selected: []int{0}, zoom: "30"}

	if _, err := PickResources(testsupport.Context(), driver, store, 5, mapdisplay.DefaultOptions()); err == nil {
		t.Fatalf("expected zoom validation error")
	}
}

func TestIndicesHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a", "x"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
