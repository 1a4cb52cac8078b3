package markers

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// SubtitleLimit caps subtitles, counted in characters after tag stripping.
	SubtitleLimit = 150
	// Ellipsis is appended to truncated subtitles.
	Ellipsis = "..."
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// StripTags removes every tag from s and returns plain text (entities are
// decoded, so "&amp;" becomes "&").
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(textSanitizer().Sanitize(s))
}

// Truncate shortens s to limit characters and appends Ellipsis when anything
// was cut.
func Truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + Ellipsis
}

// Subtitle strips tags then truncates to SubtitleLimit.
func Subtitle(raw string) string {
	return Truncate(StripTags(raw), SubtitleLimit)
}

// Escape encodes s for markup, quotes included.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

func textSanitizer() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}
