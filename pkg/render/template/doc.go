// Package template defines the template engine seam used by the map
// renderers. Implementations live in subpackages (see gotemplate).
package template
