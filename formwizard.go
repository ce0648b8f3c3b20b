// Package formwizard is the module entry point. It re-exports the pieces most
// callers need so a server can be wired with a single import.
package formwizard

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// RenderOptions describes the per-request wizard state renderers consume.
type RenderOptions = render.RenderOptions

// Session is the explicit wizard state carried between requests.
type Session = wizard.Session

// FormValues holds the six field values of the wizard.
type FormValues = wizard.FormValues

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// DefaultForm returns the built-in three-step definition.
func DefaultForm() model.FormModel {
	return model.DefaultForm()
}

// RenderStep renders a session with the default orchestrator and vanilla
// renderer. It is the simplest entry point for callers that only need HTML.
func RenderStep(ctx context.Context, s Session) ([]byte, error) {
	resp, err := orchestrator.New().Render(ctx, orchestrator.Request{Session: s})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the bundled stylesheet.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
