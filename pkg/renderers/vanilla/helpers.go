package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/model"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fw-" + trimmed
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

func inputType(field model.Field) string {
	switch field.Type {
	case model.FieldTypePassword, model.FieldTypeEmail:
		return string(field.Type)
	default:
		return string(model.FieldTypeText)
	}
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         cfg.Tokens,
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

// cssVarsStyle renders the theme variables as an inline style attribute in a
// stable order. Names without the leading "--" get it added.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	normalized := make(map[string]string, len(vars))
	names := make([]string, 0, len(vars))
	for key, value := range vars {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		if _, seen := normalized[name]; !seen {
			names = append(names, name)
		}
		normalized[name] = strings.TrimSpace(value)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+normalized[name])
	}
	return strings.Join(parts, "; ")
}

func stylesheetURL(cfg *theme.RendererConfig) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(StylesheetAsset)
}

func pageTemplate(cfg *theme.RendererConfig) string {
	if cfg != nil {
		if candidate := strings.TrimSpace(cfg.Partials["page"]); candidate != "" {
			return candidate
		}
	}
	return "templates/page.tmpl"
}
