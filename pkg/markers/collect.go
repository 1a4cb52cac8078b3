package markers

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/geo"
)

// Marker is one map point plus its popup metadata. Title and Subtitle are
// already escaped for markup.
type Marker struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Link     string  `json:"link"`
}

// Fields names the resource fields a marker is built from.
type Fields struct {
	Coords   string
	Title    string
	Subtitle string
}

// DefaultFields returns googlemap / pagetitle / introtext.
func DefaultFields() Fields {
	return Fields{
		Coords:   "googlemap",
		Title:    cms.FieldPageTitle,
		Subtitle: cms.FieldIntroText,
	}
}

// Option configures a Collector.
type Option func(*Collector)

// WithTemplateVars sets the renderer used for non built-in field names.
func WithTemplateVars(renderer cms.TemplateVarRenderer) Option {
	return func(c *Collector) {
		c.tvs = renderer
	}
}

// WithLinks sets the link resolver.
func WithLinks(links cms.LinkResolver) Option {
	return func(c *Collector) {
		c.links = links
	}
}

// WithParser replaces the coordinate parser chain.
func WithParser(parser geo.Parser) Option {
	return func(c *Collector) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithLogger attaches a logger; skipped resources are reported at V(1).
func WithLogger(log logr.Logger) Option {
	return func(c *Collector) {
		c.log = log
	}
}

// Collector builds markers. It holds no per-call state and is safe to reuse.
type Collector struct {
	tvs    cms.TemplateVarRenderer
	links  cms.LinkResolver
	parser geo.Parser
	log    logr.Logger
}

// NewCollector returns a Collector using the default coordinate chain.
func NewCollector(options ...Option) *Collector {
	c := &Collector{
		parser: geo.DefaultChain(),
		log:    logr.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Collect builds markers for published resources with a valid coordinate,
// preserving input order. The result is never longer than resources.
func (c *Collector) Collect(ctx context.Context, resources []cms.Resource, fields Fields) []Marker {
	out := make([]Marker, 0, len(resources))
	for _, res := range resources {
		if res == nil {
			continue
		}
		if !res.IsPublished() {
			c.log.V(1).Info("skipping unpublished resource", "id", res.ID())
			continue
		}
		marker, ok := c.Build(ctx, res, fields)
		if !ok {
			continue
		}
		out = append(out, marker)
	}
	return out
}

// Build creates the marker for a single resource regardless of its published
// state. It reports false when the coordinate field is missing or malformed.
func (c *Collector) Build(ctx context.Context, res cms.Resource, fields Fields) (Marker, bool) {
	if res == nil {
		return Marker{}, false
	}

	coord, ok := c.parser.Parse(res.TemplateVarValue(fields.Coords))
	if !ok {
		c.log.V(1).Info("skipping resource without coordinates", "id", res.ID(), "field", fields.Coords)
		return Marker{}, false
	}

	return Marker{
		Lat:      coord.Lat,
		Lng:      coord.Lng,
		Title:    Escape(c.FieldValue(ctx, res, fields.Title)),
		Subtitle: Escape(Subtitle(c.FieldValue(ctx, res, fields.Subtitle))),
		Link:     c.link(ctx, res.ID()),
	}, true
}

// FieldValue reads a built-in field directly from the resource and renders any
// other name as a template variable. An empty built-in field is returned as
// is; it does not fall back to template variables.
func (c *Collector) FieldValue(ctx context.Context, res cms.Resource, name string) string {
	if name == "" || res == nil {
		return ""
	}
	if cms.IsStandardField(name) {
		return res.Field(name)
	}
	if c.tvs == nil {
		return ""
	}
	value, err := c.tvs.RenderTemplateVar(ctx, name, res.ID())
	if err != nil {
		c.log.V(1).Info("template variable render failed", "id", res.ID(), "name", name, "error", err.Error())
		return ""
	}
	return value
}

func (c *Collector) link(ctx context.Context, id cms.ID) string {
	if c.links == nil {
		return ""
	}
	url, err := c.links.BuildLink(ctx, id)
	if err != nil {
		c.log.V(1).Info("link resolution failed", "id", id, "error", err.Error())
		return ""
	}
	return url
}
