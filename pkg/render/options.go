package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request presentation settings that do not change
// which markers are shown.
type RenderOptions struct {
	// Theme supplies tokens (tile layer, radius, shadow) and asset URL
	// overrides resolved through go-theme.
	Theme *theme.RendererConfig
	// Locale selects the notice catalog (e.g. "fr", "en-GB").
	Locale string
	// Translator overrides the built-in notice catalog.
	Translator Translator
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}
