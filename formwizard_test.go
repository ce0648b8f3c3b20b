package formwizard_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestRenderStep(t *testing.T) {
	html, err := formwizard.RenderStep(context.Background(), formwizard.Session{Step: wizard.StepSecond})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), `name="email"`) {
		t.Fatalf("expected second step inputs, got:\n%s", html)
	}
}

func TestEmbeddedBundles(t *testing.T) {
	if _, err := fs.Stat(formwizard.EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("page template: %v", err)
	}
	if _, err := fs.Stat(formwizard.EmbeddedAssets(), "formwizard.css"); err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
	if len(formwizard.DefaultForm().Steps) != 3 {
		t.Fatalf("expected three steps")
	}
}
