package leaflet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-snippets/pkg/markers"
	"github.com/goliatone/go-snippets/pkg/render"
	rendertemplate "github.com/goliatone/go-snippets/pkg/render/template"
	gotemplate "github.com/goliatone/go-snippets/pkg/render/template/gotemplate"
)

// Name identifies the renderer in a render.Registry.
const Name = "leaflet"

const (
	mapTemplate    = "templates/map.tmpl"
	noticeTemplate = "templates/notice.tmpl"
)

// ErrNoMarkers is returned when Render receives a request without markers.
// Callers show a notice instead.
var ErrNoMarkers = errors.New("leaflet renderer: no markers to render")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. The directory
// must mirror the embedded layout (templates/map.tmpl, templates/notice.tmpl).
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits a Leaflet container and its initialisation script.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var (
	_ render.Renderer       = (*Renderer)(nil)
	_ render.NoticeRenderer = (*Renderer)(nil)
	_ render.AssetProvider  = (*Renderer)(nil)
)

// New constructs the Leaflet renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("leaflet renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the map container and script for req.
func (r *Renderer) Render(_ context.Context, req render.MapRenderRequest, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("leaflet renderer: template renderer is nil")
	}
	if req.Empty() {
		return nil, ErrNoMarkers
	}
	if strings.TrimSpace(req.ElementID) == "" {
		return nil, fmt.Errorf("leaflet renderer: element id required")
	}

	tokens := themeTokens(options)
	result, err := r.templates.RenderTemplate(mapTemplate, map[string]any{
		"elementId":   req.ElementID,
		"height":      req.Height,
		"width":       req.Width,
		"zoom":        req.Zoom,
		"openPopup":   req.OpenPopup,
		"markers":     popupMarkers(req.Markers),
		"tiles":       tokenOr(tokens, TokenTiles, DefaultTileURL),
		"attribution": tokenOr(tokens, TokenAttribution, DefaultAttribution),
		"radius":      tokenOr(tokens, TokenRadius, DefaultRadius),
		"maxZoom":     MaxZoom,
		"padding":     FitPadding,
	})
	if err != nil {
		return nil, fmt.Errorf("leaflet renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderNotice wraps an informational message in the notice template.
func (r *Renderer) RenderNotice(_ context.Context, message string, _ render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("leaflet renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(noticeTemplate, map[string]any{
		"message": message,
	})
	if err != nil {
		return nil, fmt.Errorf("leaflet renderer: render notice: %w", err)
	}
	return []byte(result), nil
}

// Assets returns the Leaflet stylesheet and script, preferring URLs resolved
// by the theme's AssetURL.
func (r *Renderer) Assets(options render.RenderOptions) render.Assets {
	return render.Assets{
		Stylesheets: []string{assetURL(options, AssetStylesheet, StylesheetURL)},
		Scripts:     []string{assetURL(options, AssetScript, ScriptURL)},
	}
}

// popupMarkers escapes links for use inside the popup's href attribute.
// Titles and subtitles arrive escaped already.
func popupMarkers(in []markers.Marker) []markers.Marker {
	out := make([]markers.Marker, len(in))
	for i, marker := range in {
		marker.Link = markers.Escape(marker.Link)
		out[i] = marker
	}
	return out
}

func themeTokens(options render.RenderOptions) map[string]string {
	if options.Theme == nil {
		return nil
	}
	return options.Theme.Tokens
}

func tokenOr(tokens map[string]string, key, fallback string) string {
	if value := strings.TrimSpace(tokens[key]); value != "" {
		return value
	}
	return fallback
}

func assetURL(options render.RenderOptions, key, fallback string) string {
	if options.Theme == nil || options.Theme.AssetURL == nil {
		return fallback
	}
	if resolved := strings.TrimSpace(options.Theme.AssetURL(key)); resolved != "" {
		return resolved
	}
	return fallback
}
