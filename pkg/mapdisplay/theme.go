package mapdisplay

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func (d *Display) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	selection, err := d.themes.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("mapdisplay: select theme: %w", err)
	}
	return rendererConfig(selection), nil
}

// rendererConfig flattens a selection into renderer settings. Variant tokens,
// templates and asset files override the manifest's base entries.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	variant, hasVariant := manifest.Variants[selection.Variant]

	mergeInto(cfg.Tokens, manifest.Tokens)
	mergeInto(cfg.Partials, manifest.Templates)
	if hasVariant {
		mergeInto(cfg.Tokens, variant.Tokens)
		mergeInto(cfg.Partials, variant.Templates)
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}

	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	mergeInto(files, manifest.Assets.Files)
	if hasVariant {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		mergeInto(files, variant.Assets.Files)
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		return joinAsset(prefix, file)
	}
	return cfg
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

// joinAsset keeps absolute URLs and rooted paths as they are.
func joinAsset(prefix, file string) string {
	if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + file
}
