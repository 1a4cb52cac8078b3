package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-snippets/internal/config"
	"github.com/goliatone/go-snippets/internal/prompt"
	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/cms/memstore"
	"github.com/goliatone/go-snippets/pkg/cms/sqlstore"
	"github.com/goliatone/go-snippets/pkg/mapdisplay"
	"github.com/goliatone/go-snippets/pkg/render"
	gotemplate "github.com/goliatone/go-snippets/pkg/render/template/gotemplate"
	"github.com/goliatone/go-snippets/pkg/renderers/leaflet"
)

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render a Leaflet map for CMS resources",
		Long: `map renders markers for an explicit resource list (--resources), the
descendants of a parent (--parent) or a single current resource (--current).
Resources are read from a YAML fixture (--store memory --fixture) or a SQLite
database (--store sqlite --db).`,
		Example: `  snippets-cli map --fixture site.yaml --parent 5 --head
  snippets-cli map --store sqlite --db cms.db --resources 12,45 --zoom 8
  snippets-cli map --fixture site.yaml --parent 5 --interactive`,
		Args: cobra.NoArgs,
		RunE: runMap,
	}

	defaults := config.Defaults()
	flags := cmd.Flags()
	flags.String("resources", "", "comma separated resource ids")
	flags.Int("parent", 0, "render the descendants of this resource")
	flags.Int("current", 0, "render a single resource with its popup open")
	flags.Bool("head", false, "prefix the output with the registered asset tags")
	flags.StringP("output", "o", "", "output file (stdout if empty)")
	flags.BoolP("interactive", "i", false, "pick the resources under --parent from a checklist")

	flags.String("coords-field", defaults.Map.CoordsField, "template variable holding coordinates")
	flags.String("height", defaults.Map.Height, "map height")
	flags.String("width", defaults.Map.Width, "map width")
	flags.String("title-field", defaults.Map.TitleField, "field used for popup titles")
	flags.String("subtitle-field", defaults.Map.SubtitleField, "field used for popup subtitles")
	flags.Int("zoom", defaults.Map.Zoom, "zoom level for single markers")
	flags.Int("depth", defaults.Map.Depth, "descendant depth under --parent")
	flags.String("renderer", "", "renderer name")
	flags.String("locale", "", "notice locale (en, fr)")
	flags.String("templates", "", "directory overriding the embedded templates")
	flags.String("store", defaults.Store.Driver, "resource store (memory, sqlite)")
	flags.String("db", "", "SQLite database path")
	flags.String("fixture", "", "YAML fixture for the memory store")
	flags.String("base-url", "", "site URL used to build links")
	return cmd
}

func runMap(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	store, closeStore, err := openStore(cfg.Store, log)
	if err != nil {
		return err
	}
	defer closeStore()

	renderer, err := newRenderer(cfg.Render)
	if err != nil {
		return err
	}

	assets := &cms.AssetCollector{}
	display, err := mapdisplay.New(
		mapdisplay.WithStore(store),
		mapdisplay.WithAssets(assets),
		mapdisplay.WithRenderer(renderer),
		mapdisplay.WithLogger(log.WithName("mapdisplay")),
	)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := cfg.MapOptions()
	rawIDs, _ := flags.GetString("resources")
	opts.ResourceIDs = cms.ParseIDs(rawIDs)
	opts.Collection = strings.TrimSpace(rawIDs) != ""
	if parent, _ := flags.GetInt("parent"); parent > 0 {
		opts.ParentID = cms.ID(parent)
	}
	if interactive, _ := flags.GetBool("interactive"); interactive {
		opts, err = prompt.PickResources(ctx, newPromptDriver(cmd), store, opts.ParentID, opts)
		if err != nil {
			return fmt.Errorf("map: pick resources: %w", err)
		}
	}

	req := mapdisplay.Request{
		Options:       opts,
		RenderOptions: renderOptions(cfg.Render),
	}
	if current, _ := flags.GetInt("current"); current > 0 {
		res, err := store.Get(ctx, cms.ID(current))
		if err != nil {
			return fmt.Errorf("map: load current resource %d: %w", current, err)
		}
		req.Current = res
	}

	result, err := display.Render(ctx, req)
	if err != nil {
		return err
	}
	log.Info("map rendered", "state", string(result.State), "markers", len(result.Markers), "element", result.ElementID)

	var out strings.Builder
	if head, _ := flags.GetBool("head"); head {
		out.WriteString(assets.HeadHTML())
	}
	out.WriteString(result.HTML)

	path, _ := flags.GetString("output")
	return writeOutput(cmd.OutOrStdout(), path, out.String())
}

// newPromptDriver is swapped in tests.
var newPromptDriver = func(cmd *cobra.Command) prompt.Driver {
	return prompt.NewSurveyDriver(cmd.OutOrStdout())
}

func openStore(cfg config.StoreConfig, log logr.Logger) (cms.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "sqlite":
		store, err := sqlstore.Open(cfg.Path,
			sqlstore.WithBaseURL(cfg.BaseURL),
			sqlstore.WithLogger(log.WithName("sqlstore")),
		)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		if cfg.Fixture == "" {
			return memstore.New(cfg.BaseURL), noop, nil
		}
		doc, err := memstore.ReadDocumentFile(cfg.Fixture)
		if err != nil {
			return nil, noop, err
		}
		baseURL := doc.BaseURL
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		return memstore.New(baseURL, doc.Resources...), noop, nil
	}
}

// newRenderer builds the Leaflet renderer. A templates directory overlays the
// embedded bundle file by file.
func newRenderer(cfg config.RenderConfig) (*leaflet.Renderer, error) {
	if cfg.TemplatesDir == "" {
		return leaflet.New()
	}
	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(cfg.TemplatesDir),
		gotemplate.WithFS(leaflet.TemplatesFS()),
	)
	if err != nil {
		return nil, fmt.Errorf("map: configure templates: %w", err)
	}
	return leaflet.New(leaflet.WithTemplateRenderer(engine))
}

func renderOptions(cfg config.RenderConfig) render.RenderOptions {
	opts := render.RenderOptions{Locale: cfg.Locale}

	tokens := map[string]string{}
	if cfg.Tiles != "" {
		tokens[leaflet.TokenTiles] = cfg.Tiles
	}
	if cfg.Attribution != "" {
		tokens[leaflet.TokenAttribution] = cfg.Attribution
	}
	if len(tokens) > 0 {
		opts.Theme = &theme.RendererConfig{Tokens: tokens}
	}
	return opts
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("map: write output: %w", err)
	}
	return nil
}
