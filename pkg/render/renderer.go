package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Renderer turns the active step of a form into bytes (an HTML page, a
// terminal transcript, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
