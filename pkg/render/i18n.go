package render

import (
	"errors"
	"fmt"
	"strings"
)

// Notice message keys.
const (
	NoticeNoMarkers  = "map.no_markers"
	NoticeNoResource = "map.no_resource"
)

// DefaultLocale is used when RenderOptions.Locale is empty or unknown.
const DefaultLocale = "en"

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Catalog is a static Translator keyed by locale then message key. Lookups
// fall back from "fr-CA" to "fr" and finally to DefaultLocale.
type Catalog map[string]map[string]string

// Translate implements Translator. Arguments are applied with fmt.Sprintf.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		messages, ok := c[candidate]
		if !ok {
			continue
		}
		if msg, ok := messages[key]; ok && msg != "" {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("render: no translation for %q (%s)", key, locale)
}

// DefaultCatalog holds the built-in notices.
func DefaultCatalog() Catalog {
	return Catalog{
		"en": {
			NoticeNoMarkers:  "No points to display on the map.",
			NoticeNoResource: "No resource found.",
		},
		"fr": {
			NoticeNoMarkers:  "Aucun point à afficher sur la carte.",
			NoticeNoResource: "Aucune ressource trouvée.",
		},
	}
}

// Notice resolves an informational message. A custom Translator wins; when it
// misses, the built-in catalog is consulted before OnMissing.
func Notice(opts RenderOptions, key string) string {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if opts.Translator != nil {
		if msg, err := opts.Translator.Translate(opts.Locale, key); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	msg, err := DefaultCatalog().Translate(opts.Locale, key)
	if err != nil {
		return onMissing(opts.Locale, key, nil, err)
	}
	return msg
}

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

func localeChain(locale string) []string {
	locale = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(locale, "_", "-")))
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, found := strings.Cut(locale, "-"); found && base != "" {
			chain = append(chain, base)
		}
	}
	return append(chain, DefaultLocale)
}
