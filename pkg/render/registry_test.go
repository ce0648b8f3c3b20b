package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla"})
	reg.MustRegister(stubRenderer{name: "text"})

	if err := reg.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}

	def, err := reg.Get("")
	if err != nil || def.Name() != "vanilla" {
		t.Fatalf("expected first registered renderer as default, got %v %v", def, err)
	}
	if err := reg.SetDefault("text"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if def, _ := reg.Get(""); def.Name() != "text" {
		t.Fatalf("expected text default, got %s", def.Name())
	}
	if err := reg.SetDefault("missing"); err == nil {
		t.Fatalf("expected error for unknown default")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected not found error")
	}
	if diff := cmp.Diff([]string{"text", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
