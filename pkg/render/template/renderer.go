package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers depend on. Results are
// returned as strings and, when writers are supplied, also copied to them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
