package mapdisplay

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sync"

	"github.com/go-logr/logr"
	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/markers"
	"github.com/goliatone/go-snippets/pkg/render"
	"github.com/goliatone/go-snippets/pkg/renderers/leaflet"
)

// ElementIDPrefix prefixes generated container ids.
const ElementIDPrefix = "cms-map-"

// State reports what a render call produced.
type State string

const (
	StateRendered      State = "rendered"
	StateNoMarkers     State = "no_markers"
	StateNoResource    State = "no_resource"
	StateNoCoordinates State = "no_coordinates"
)

// Request is one map render call.
type Request struct {
	Options Options
	// Current is the resource being viewed; used when Options select neither
	// a resource list nor a parent.
	Current       cms.Resource
	RenderOptions render.RenderOptions
	// ThemeName and ThemeVariant are passed to the theme selector when
	// RenderOptions.Theme is nil.
	ThemeName    string
	ThemeVariant string
}

// Result carries the markup to inject in the page.
type Result struct {
	State     State
	HTML      string
	ElementID string
	Markers   []markers.Marker
}

// Option configures a Display.
type Option func(*Display)

// WithStore sets the resource store. When the store also renders template
// variables or builds links it is used for those too, unless overridden.
func WithStore(store cms.Store) Option {
	return func(d *Display) {
		d.store = store
	}
}

// WithTemplateVars overrides the template variable renderer.
func WithTemplateVars(renderer cms.TemplateVarRenderer) Option {
	return func(d *Display) {
		d.tvs = renderer
	}
}

// WithLinks overrides the link resolver.
func WithLinks(links cms.LinkResolver) Option {
	return func(d *Display) {
		d.links = links
	}
}

// WithAssets sets where client assets are registered after a successful
// render.
func WithAssets(assets cms.AssetRegistrar) Option {
	return func(d *Display) {
		d.assets = assets
	}
}

// WithRegistry replaces the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(d *Display) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// WithRenderer registers renderer and makes it the default.
func WithRenderer(renderer render.Renderer) Option {
	return func(d *Display) {
		if renderer != nil {
			d.renderers = append(d.renderers, renderer)
		}
	}
}

// WithThemeSelector resolves renderer theme configuration per request.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(d *Display) {
		d.themes = selector
	}
}

// WithLogger attaches a logger.
func WithLogger(log logr.Logger) Option {
	return func(d *Display) {
		d.log = log
	}
}

// WithIDGenerator replaces the element id generator.
func WithIDGenerator(fn func() string) Option {
	return func(d *Display) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// Display resolves resources into markers and hands them to a renderer.
type Display struct {
	store     cms.Store
	tvs       cms.TemplateVarRenderer
	links     cms.LinkResolver
	assets    cms.AssetRegistrar
	registry  *render.Registry
	renderers []render.Renderer
	themes    theme.ThemeSelector
	log       logr.Logger
	newID     func() string
	collector *markers.Collector
}

var (
	defaultRendererOnce sync.Once
	defaultRenderer     *leaflet.Renderer
	defaultRendererErr  error
)

// DefaultRenderer returns the process-wide Leaflet renderer used when a
// Display is built without one. Its compiled templates are shared by every
// such Display.
func DefaultRenderer() (*leaflet.Renderer, error) {
	defaultRendererOnce.Do(func() {
		defaultRenderer, defaultRendererErr = leaflet.New()
	})
	return defaultRenderer, defaultRendererErr
}

// New builds a Display. Without a registry or renderer the shared
// DefaultRenderer is registered as the default.
func New(options ...Option) (*Display, error) {
	d := &Display{
		log:   logr.Discard(),
		newID: NewElementID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	if d.tvs == nil {
		if tvs, ok := d.store.(cms.TemplateVarRenderer); ok {
			d.tvs = tvs
		}
	}
	if d.links == nil {
		if links, ok := d.store.(cms.LinkResolver); ok {
			d.links = links
		}
	}

	if d.registry == nil {
		d.registry = render.NewRegistry()
	}
	for _, r := range d.renderers {
		if err := d.registry.Register(r); err != nil {
			return nil, fmt.Errorf("mapdisplay: register renderer: %w", err)
		}
		if err := d.registry.SetDefault(r.Name()); err != nil {
			return nil, fmt.Errorf("mapdisplay: set default renderer: %w", err)
		}
	}
	if len(d.registry.List()) == 0 {
		renderer, err := DefaultRenderer()
		if err != nil {
			return nil, fmt.Errorf("mapdisplay: default renderer: %w", err)
		}
		if err := d.registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("mapdisplay: register renderer: %w", err)
		}
	}

	d.collector = markers.NewCollector(
		markers.WithTemplateVars(d.tvs),
		markers.WithLinks(d.links),
		markers.WithLogger(d.log.WithName("markers")),
	)
	return d, nil
}

// NewElementID returns a fresh container id.
func NewElementID() string {
	return ElementIDPrefix + uuid.NewString()
}

// Render produces the map markup for req. Only store failures and renderer
// failures are returned as errors; empty outcomes are reported through
// Result.State.
func (d *Display) Render(ctx context.Context, req Request) (Result, error) {
	opts := req.Options.withDefaults()

	if req.RenderOptions.Theme == nil && d.themes != nil {
		cfg, err := d.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Result{}, err
		}
		req.RenderOptions.Theme = cfg
	}

	renderer, err := d.registry.Resolve(opts.Renderer)
	if err != nil {
		return Result{}, fmt.Errorf("mapdisplay: resolve renderer: %w", err)
	}

	if opts.Multi() {
		return d.renderMulti(ctx, renderer, opts, req.RenderOptions)
	}
	return d.renderSingle(ctx, renderer, opts, req)
}

func (d *Display) renderMulti(ctx context.Context, renderer render.Renderer, opts Options, ro render.RenderOptions) (Result, error) {
	resources, err := d.resources(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	collected := d.collector.Collect(ctx, resources, opts.Fields())
	if len(collected) == 0 {
		return d.notice(ctx, renderer, ro, StateNoMarkers, render.NoticeNoMarkers)
	}

	return d.render(ctx, renderer, render.MapRenderRequest{
		Height:  opts.Height,
		Width:   opts.Width,
		Zoom:    opts.Zoom,
		Mode:    render.ModeMulti,
		Markers: collected,
	}, ro)
}

func (d *Display) renderSingle(ctx context.Context, renderer render.Renderer, opts Options, req Request) (Result, error) {
	if req.Current == nil {
		return d.notice(ctx, renderer, req.RenderOptions, StateNoResource, render.NoticeNoResource)
	}

	marker, ok := d.collector.Build(ctx, req.Current, opts.Fields())
	if !ok {
		return Result{State: StateNoCoordinates}, nil
	}
	marker.Link = ""

	return d.render(ctx, renderer, render.MapRenderRequest{
		Height:    opts.Height,
		Width:     opts.Width,
		Zoom:      opts.Zoom,
		Mode:      render.ModeSingle,
		OpenPopup: true,
		Markers:   []markers.Marker{marker},
	}, req.RenderOptions)
}

// resources fetches the explicit id list, or the descendants of the parent.
// Ids that no longer exist are skipped. Neither set yields nothing.
func (d *Display) resources(ctx context.Context, opts Options) ([]cms.Resource, error) {
	if d.store == nil {
		return nil, errors.New("mapdisplay: store not configured")
	}

	ids := opts.ResourceIDs
	if len(ids) == 0 && opts.ParentID > 0 {
		children, err := d.store.Children(ctx, opts.ParentID, opts.Depth)
		if err != nil {
			return nil, fmt.Errorf("mapdisplay: fetch children of %s: %w", opts.ParentID, err)
		}
		ids = children
	}

	out := make([]cms.Resource, 0, len(ids))
	for _, id := range ids {
		res, err := d.store.Get(ctx, id)
		if errors.Is(err, cms.ErrNotFound) {
			d.log.V(1).Info("skipping missing resource", "id", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("mapdisplay: fetch resource %s: %w", id, err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (d *Display) render(ctx context.Context, renderer render.Renderer, req render.MapRenderRequest, ro render.RenderOptions) (Result, error) {
	req.ElementID = d.newID()

	output, err := renderer.Render(ctx, req, ro)
	if err != nil {
		return Result{}, fmt.Errorf("mapdisplay: render %s: %w", renderer.Name(), err)
	}
	d.registerAssets(renderer, ro)

	d.log.V(1).Info("rendered map", "element", req.ElementID, "mode", string(req.Mode), "markers", len(req.Markers))
	return Result{
		State:     StateRendered,
		HTML:      string(output),
		ElementID: req.ElementID,
		Markers:   req.Markers,
	}, nil
}

func (d *Display) registerAssets(renderer render.Renderer, ro render.RenderOptions) {
	if d.assets == nil {
		return
	}
	provider, ok := renderer.(render.AssetProvider)
	if !ok {
		return
	}
	assets := provider.Assets(ro)
	for _, url := range assets.Stylesheets {
		d.assets.RegisterStylesheet(url)
	}
	for _, url := range assets.Scripts {
		d.assets.RegisterStartupScript(url)
	}
}

func (d *Display) notice(ctx context.Context, renderer render.Renderer, ro render.RenderOptions, state State, key string) (Result, error) {
	message := render.Notice(ro, key)

	if nr, ok := renderer.(render.NoticeRenderer); ok {
		output, err := nr.RenderNotice(ctx, message, ro)
		if err != nil {
			return Result{}, fmt.Errorf("mapdisplay: render notice: %w", err)
		}
		return Result{State: state, HTML: string(output)}, nil
	}
	return Result{State: state, HTML: "<p>" + html.EscapeString(message) + "</p>"}, nil
}
