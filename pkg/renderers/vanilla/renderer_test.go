package vanilla_test

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

func renderPage(t *testing.T, opts render.RenderOptions) string {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), model.DefaultForm(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(html, needle) {
			t.Fatalf("expected output to contain %q\n%s", needle, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if strings.Contains(html, needle) {
			t.Fatalf("expected output not to contain %q", needle)
		}
	}
}

func TestRender_FirstStep(t *testing.T) {
	html := renderPage(t, render.RenderOptions{Step: 0, AllowBack: true})

	assertContains(t, html,
		"<title>Stepper Form</title>",
		`aria-current="step">First Step</li>`,
		`name="username" type="text"`,
		`name="password" type="password"`,
		`<input type="hidden" name="_step" value="0">`,
		`value="next">Next &gt;</button>`,
		"<style>",
	)
	assertNotContains(t, html, `value="back"`, `name="email"`, "Submit</button>")
}

func TestRender_LastStepWithErrorsAndCarriedValues(t *testing.T) {
	html := renderPage(t, render.RenderOptions{
		Step:      2,
		AllowBack: true,
		Values: map[string]string{
			"username": "ada",
			"email":    "ada@example.com",
			"github":   "ada",
		},
		Errors: map[string][]string{
			"website": {"Website is required"},
		},
		FormErrors: []string{"Submission failed"},
	})

	assertContains(t, html,
		`aria-current="step">Last Step</li>`,
		`<li class="fw-step fw-step--done">First Step</li>`,
		`<input type="hidden" name="username" value="ada">`,
		`<input type="hidden" name="email" value="ada@example.com">`,
		`name="github" type="text" value="ada"`,
		`aria-invalid="true"`,
		`<li>Website is required</li>`,
		`<li>Submission failed</li>`,
		`value="back" formnovalidate>&lt; Back</button>`,
		`value="next">Submit</button>`,
	)
	assertNotContains(t, html, `<input type="hidden" name="github"`)
}

func TestRender_NextIsDefaultSubmitButton(t *testing.T) {
	for _, step := range []int{1, 2} {
		html := renderPage(t, render.RenderOptions{Step: step, AllowBack: true})
		first := strings.Index(html, `type="submit"`)
		if first < 0 {
			t.Fatalf("step %d: no submit button rendered", step)
		}
		end := strings.Index(html[first:], ">")
		button := html[first : first+end]
		if !strings.Contains(button, `value="next"`) {
			t.Fatalf("step %d: first submit button is %q, want the next action", step, button)
		}
		if strings.Index(html, `value="back"`) < first {
			t.Fatalf("step %d: back button precedes next", step)
		}
	}
}

func TestRender_BackHiddenWhenDisabled(t *testing.T) {
	html := renderPage(t, render.RenderOptions{Step: 1, AllowBack: false})
	assertNotContains(t, html, `value="back"`)
	assertContains(t, html, `name="email" type="email"`, "autofocus")
}

func TestRender_SubmittedConfirmation(t *testing.T) {
	html := renderPage(t, render.RenderOptions{
		Step:       2,
		Submitted:  true,
		Submission: "{\n  \"username\": \"ada\"\n}",
	})
	assertContains(t, html, "<h2>Submitted</h2>", "&quot;username&quot;: &quot;ada&quot;")
}

func TestRender_ThemeConfig(t *testing.T) {
	html := renderPage(t, render.RenderOptions{
		Step: 0,
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"fw-accent": "#ff0000", "--fw-radius": "0"},
			AssetURL: func(key string) string {
				if key == vanilla.StylesheetAsset {
					return "/assets/acme.css"
				}
				return ""
			},
		},
	})
	assertContains(t, html,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`style="--fw-accent: #ff0000; --fw-radius: 0"`,
		`<link rel="stylesheet" href="/assets/acme.css">`,
	)
	assertNotContains(t, html, "<style>")
}

func TestRender_UnknownStep(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), model.DefaultForm(), render.RenderOptions{Step: 7}); err == nil {
		t.Fatalf("expected error for unknown step")
	}
}

func TestAssetsFS_Stylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".fw-step--active") {
		t.Fatalf("expected active step rule in stylesheet")
	}
}

func TestNew_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := []byte("custom {{ form.title }} / {{ step.title }}")
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"), page, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	renderer, err := vanilla.New(vanilla.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), model.DefaultForm(), render.RenderOptions{Step: 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "custom Stepper Form / Second Step" {
		t.Fatalf("unexpected output %q", got)
	}
}

type recordingTemplates struct {
	name string
	data map[string]any
}

func (r *recordingTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	return "rendered", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingTemplates) GlobalContext(any) error {
	return nil
}

func TestNew_TemplateRendererAndInlineStylesheet(t *testing.T) {
	templates := &recordingTemplates{}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(templates))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), model.DefaultForm(), render.RenderOptions{Step: 0})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "rendered" || templates.name != "templates/page.tmpl" {
		t.Fatalf("expected injected renderer to render the page, got %q via %q", out, templates.name)
	}
	if _, ok := templates.data["inline_css"]; !ok {
		t.Fatalf("expected inline stylesheet by default")
	}

	renderer, err = vanilla.New(vanilla.WithTemplateRenderer(templates), vanilla.WithoutInlineStylesheet())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), model.DefaultForm(), render.RenderOptions{Step: 0}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, ok := templates.data["inline_css"]; ok {
		t.Fatalf("expected no inline stylesheet")
	}
}
