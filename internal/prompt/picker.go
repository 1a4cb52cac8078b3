package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/mapdisplay"
)

// ErrNoCandidates is returned when the parent has no descendants to offer.
var ErrNoCandidates = errors.New("prompt: no resources to choose from")

// PickResources lists the descendants of parent, lets the user choose which
// ones to show and the zoom level, and returns opts with an explicit
// resource list. Published resources are preselected.
func PickResources(ctx context.Context, driver Driver, store cms.Store, parent cms.ID, opts mapdisplay.Options) (mapdisplay.Options, error) {
	ids, err := store.Children(ctx, parent, opts.Depth)
	if err != nil {
		return opts, fmt.Errorf("prompt: list children of %s: %w", parent, err)
	}

	var (
		candidates []cms.ID
		labels     []string
		defaults   []int
	)
	for _, id := range ids {
		res, err := store.Get(ctx, id)
		if errors.Is(err, cms.ErrNotFound) {
			continue
		}
		if err != nil {
			return opts, fmt.Errorf("prompt: load resource %s: %w", id, err)
		}
		label := fmt.Sprintf("%s (#%s)", res.Field(cms.FieldPageTitle), id)
		if res.IsPublished() {
			defaults = append(defaults, len(labels))
		} else {
			label += " [unpublished]"
		}
		candidates = append(candidates, id)
		labels = append(labels, label)
	}
	if len(candidates) == 0 {
		if err := driver.Info(ctx, fmt.Sprintf("No resources found under #%s.", parent)); err != nil {
			return opts, err
		}
		return opts, ErrNoCandidates
	}

	selected, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Resources to place on the map",
		Options:  labels,
		Defaults: defaults,
		Help:     "Unpublished resources are listed but never shown as markers.",
		PageSize: 15,
	})
	if err != nil {
		return opts, err
	}
	if len(selected) == 0 {
		return opts, ErrNoCandidates
	}

	zoom, err := driver.Input(ctx, InputConfig{
		Message:   "Zoom level (single marker)",
		Default:   strconv.Itoa(opts.Zoom),
		Validator: validateZoom,
	})
	if err != nil {
		return opts, err
	}
	if err := validateZoom(zoom); err != nil {
		return opts, err
	}
	opts.Zoom, _ = strconv.Atoi(zoom)

	opts.ResourceIDs = make([]cms.ID, 0, len(selected))
	for _, idx := range selected {
		opts.ResourceIDs = append(opts.ResourceIDs, candidates[idx])
	}
	opts.ParentID = 0
	return opts, nil
}

func validateZoom(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 19 {
		return errors.New("prompt: zoom must be an integer between 0 and 19")
	}
	return nil
}
