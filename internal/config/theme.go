package config

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

// ParseCSSVars reads name=value pairs as passed to --theme-var.
func ParseCSSVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("config: theme var %q must look like name=value", pair)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}

// RendererConfig converts the theme settings for renderers. It returns nil
// when nothing is set.
func (t ThemeConfig) RendererConfig() *theme.RendererConfig {
	if t.Name == "" && t.Variant == "" && t.Stylesheet == "" && len(t.CSSVars) == 0 {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		CSSVars: t.CSSVars,
	}
	if t.Stylesheet != "" {
		stylesheet := t.Stylesheet
		cfg.AssetURL = func(name string) string {
			if name == vanilla.StylesheetAsset {
				return stylesheet
			}
			return ""
		}
	}
	return cfg
}
