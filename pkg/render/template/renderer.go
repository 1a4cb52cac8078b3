package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers depend on. Named
// templates resolve against the engine's loader; RenderString compiles ad-hoc
// template content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
