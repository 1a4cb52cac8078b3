package snippets

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/extract"
	"github.com/goliatone/go-snippets/pkg/geo"
	"github.com/goliatone/go-snippets/pkg/mapdisplay"
	"github.com/goliatone/go-snippets/pkg/markers"
	"github.com/goliatone/go-snippets/pkg/render"
)

// Marker aliases markers.Marker.
type Marker = markers.Marker

// Coordinate aliases geo.Coordinate.
type Coordinate = geo.Coordinate

// MapOptions aliases mapdisplay.Options.
type MapOptions = mapdisplay.Options

// MapResult aliases mapdisplay.Result.
type MapResult = mapdisplay.Result

// RenderOptions carries per-request presentation settings (theme, locale).
type RenderOptions = render.RenderOptions

// ExtractValueByIndex returns the value at the index selected by options in a
// delimited string. See extract.ParseOptions for the options syntax.
func ExtractValueByIndex(input, options string) string {
	return extract.Extract(input, options)
}

// NormalizeCoordinates reads a JSON object or "lat,lng" pair.
func NormalizeCoordinates(raw string) (Coordinate, bool) {
	return geo.Normalize(raw)
}

// NewMapDisplay exposes the map display constructor from the top-level module.
func NewMapDisplay(options ...mapdisplay.Option) (*mapdisplay.Display, error) {
	return mapdisplay.New(options...)
}

// RenderMap parses a snippet property bag and renders the map in one call.
// current is the resource being viewed and may be nil when the properties
// select a resource list or a parent.
//
// Each call builds a new Display. Templates are compiled once because the
// default renderer is shared, but callers rendering many maps should build
// a Display with NewMapDisplay and reuse it.
func RenderMap(ctx context.Context, props map[string]string, current cms.Resource, options ...mapdisplay.Option) (MapResult, error) {
	display, err := mapdisplay.New(options...)
	if err != nil {
		return MapResult{}, err
	}
	return display.Render(ctx, mapdisplay.Request{
		Options: mapdisplay.ParseOptions(props),
		Current: current,
	})
}

// WithThemeSelector forwards a go-theme selector to the map display.
func WithThemeSelector(selector theme.ThemeSelector) mapdisplay.Option {
	return mapdisplay.WithThemeSelector(selector)
}
