package render

import (
	"context"
)

// Renderer converts a MapRenderRequest into markup plus the script that
// initialises the client-side map.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, req MapRenderRequest, options RenderOptions) ([]byte, error)
}

// NoticeRenderer is implemented by renderers that style informational
// messages ("no points to display") themselves.
type NoticeRenderer interface {
	RenderNotice(ctx context.Context, message string, options RenderOptions) ([]byte, error)
}

// AssetProvider is implemented by renderers that need client assets on the
// page (stylesheets and startup scripts).
type AssetProvider interface {
	Assets(options RenderOptions) Assets
}

// Assets lists client asset URLs.
type Assets struct {
	Stylesheets []string
	Scripts     []string
}
