package leaflet

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Client assets and tile defaults for Leaflet 1.9.4.
const (
	StylesheetURL = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	ScriptURL     = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"

	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "&copy; OpenStreetMap contributors"
	DefaultRadius      = "8px"
	MaxZoom            = 19
	FitPadding         = 50
)

// Asset keys resolved through theme.RendererConfig.AssetURL.
const (
	AssetStylesheet = "leaflet.stylesheet"
	AssetScript     = "leaflet.script"
)

// Theme token keys.
const (
	TokenTiles       = "map.tiles"
	TokenAttribution = "map.attribution"
	TokenRadius      = "map.radius"
)

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
