// Package mapdisplay implements the map snippet: it selects resources (an id
// list, the descendants of a parent, or the current resource), collects their
// markers and renders them, registering client assets only when a map is
// actually emitted.
package mapdisplay
