package mapdisplay

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/markers"
)

// Defaults applied when a property is absent or blank.
const (
	DefaultCoordsField   = "googlemap"
	DefaultHeight        = "350px"
	DefaultWidth         = "100%"
	DefaultTitleField    = cms.FieldPageTitle
	DefaultSubtitleField = cms.FieldIntroText
	DefaultZoom          = 13
	DefaultDepth         = 10
)

// Property names accepted by ParseOptions.
const (
	PropCoordsTV      = "coordsTV"
	PropCoordsField   = "coordsField"
	PropHeight        = "height"
	PropWidth         = "width"
	PropTitleField    = "titleField"
	PropSubtitleField = "subtitleField"
	PropResources     = "resources"
	PropParent        = "parent"
	PropZoom          = "zoom"
	PropDepth         = "depth"
	PropRenderer      = "renderer"
)

// Options configures one map.
type Options struct {
	// CoordsField names the template variable holding coordinates.
	CoordsField   string
	Height        string
	Width         string
	TitleField    string
	SubtitleField string
	// ResourceIDs takes precedence over ParentID.
	ResourceIDs []cms.ID
	// ParentID selects the descendants of a resource; zero means none.
	ParentID cms.ID
	Zoom     int
	// Depth bounds the descendant walk under ParentID.
	Depth int
	// Renderer names the registry entry to use; empty selects the default.
	Renderer string
	// Collection forces multi mode when a resources or parent property was
	// given but none of its ids resolved.
	Collection bool
}

// DefaultOptions returns the single-resource defaults.
func DefaultOptions() Options {
	return Options{
		CoordsField:   DefaultCoordsField,
		Height:        DefaultHeight,
		Width:         DefaultWidth,
		TitleField:    DefaultTitleField,
		SubtitleField: DefaultSubtitleField,
		Zoom:          DefaultZoom,
		Depth:         DefaultDepth,
	}
}

// ParseOptions reads a snippet property bag. Blank or malformed values keep
// their defaults. coordsTV is accepted as an alias of coordsField and wins
// when both are set.
func ParseOptions(props map[string]string) Options {
	opts := DefaultOptions()
	get := func(key string) string {
		return strings.TrimSpace(props[key])
	}

	if v := get(PropCoordsField); v != "" {
		opts.CoordsField = v
	}
	if v := get(PropCoordsTV); v != "" {
		opts.CoordsField = v
	}
	if v := get(PropHeight); v != "" {
		opts.Height = v
	}
	if v := get(PropWidth); v != "" {
		opts.Width = v
	}
	if v := get(PropTitleField); v != "" {
		opts.TitleField = v
	}
	if v := get(PropSubtitleField); v != "" {
		opts.SubtitleField = v
	}
	opts.ResourceIDs = cms.ParseIDs(get(PropResources))
	if n, err := strconv.Atoi(get(PropParent)); err == nil && n > 0 {
		opts.ParentID = cms.ID(n)
	}
	opts.Collection = requested(get(PropResources)) || requested(get(PropParent))
	if n, err := strconv.Atoi(get(PropZoom)); err == nil {
		opts.Zoom = n
	}
	if n, err := strconv.Atoi(get(PropDepth)); err == nil && n > 0 {
		opts.Depth = n
	}
	opts.Renderer = get(PropRenderer)
	return opts
}

// Multi reports whether the options select a resource collection rather than
// the current resource.
func (o Options) Multi() bool {
	return o.Collection || len(o.ResourceIDs) > 0 || o.ParentID > 0
}

// requested reports whether a collection property was set. "0" counts as
// unset, like a blank value.
func requested(value string) bool {
	return value != "" && value != "0"
}

// Fields returns the marker field names.
func (o Options) Fields() markers.Fields {
	return markers.Fields{
		Coords:   o.CoordsField,
		Title:    o.TitleField,
		Subtitle: o.SubtitleField,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if strings.TrimSpace(o.CoordsField) == "" {
		o.CoordsField = def.CoordsField
	}
	if strings.TrimSpace(o.Height) == "" {
		o.Height = def.Height
	}
	if strings.TrimSpace(o.Width) == "" {
		o.Width = def.Width
	}
	if strings.TrimSpace(o.TitleField) == "" {
		o.TitleField = def.TitleField
	}
	if strings.TrimSpace(o.SubtitleField) == "" {
		o.SubtitleField = def.SubtitleField
	}
	if o.Depth <= 0 {
		o.Depth = def.Depth
	}
	return o
}
