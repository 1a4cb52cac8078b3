package snippets

import (
	"io/fs"

	"github.com/goliatone/go-snippets/pkg/renderers/leaflet"
)

// EmbeddedTemplates exposes the built-in Leaflet templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return leaflet.TemplatesFS()
}
