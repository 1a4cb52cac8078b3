package render

import "github.com/goliatone/go-snippets/pkg/markers"

// Mode distinguishes a multi-resource map from the current-resource map.
type Mode string

const (
	ModeMulti  Mode = "multi"
	ModeSingle Mode = "single"
)

// MapRenderRequest is the payload handed to a Renderer.
type MapRenderRequest struct {
	ElementID string           `json:"elementId"`
	Height    string           `json:"height"`
	Width     string           `json:"width"`
	Zoom      int              `json:"zoom"`
	Mode      Mode             `json:"mode"`
	OpenPopup bool             `json:"openPopup,omitempty"`
	Markers   []markers.Marker `json:"markers"`
}

// Empty reports whether there is nothing to place on the map.
func (r MapRenderRequest) Empty() bool {
	return len(r.Markers) == 0
}
