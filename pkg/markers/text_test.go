package markers

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripTags(t *testing.T) {
	cases := map[string]string{
		"plain text":                                "plain text",
		"<p>La <strong>capitale</strong></p>":       "La capitale",
		"Fish &amp; chips":                          "Fish & chips",
		`<a href="/x" onclick="alert(1)">lien</a>`: "lien",
		"<script>alert('x')</script>visible":        "visible",
		"a < b":                                     "a < b",
	}
	for input, want := range cases {
		if got := StripTags(input); got != want {
			t.Fatalf("strip(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestSubtitle_TruncatesAfterStripping(t *testing.T) {
	long := strings.Repeat("é", 200)
	got := Subtitle("<p>" + long + "</p>")

	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	body := strings.TrimSuffix(got, Ellipsis)
	if n := utf8.RuneCountInString(body); n != SubtitleLimit {
		t.Fatalf("expected %d characters before ellipsis, got %d", SubtitleLimit, n)
	}
}

func TestSubtitle_TagsDoNotCountTowardsLimit(t *testing.T) {
	text := strings.Repeat("a", SubtitleLimit)
	got := Subtitle("<em>" + text + "</em>")
	if got != text {
		t.Fatalf("expected untruncated text, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Fatalf("want abc..., got %q", got)
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Fatalf("want abc, got %q", got)
	}
}

func TestEscape(t *testing.T) {
	got := Escape(`Tom & "Jerry" <b>'s</b>`)
	want := "Tom &amp; &quot;Jerry&quot; &lt;b&gt;&#039;s&lt;/b&gt;"
	if got != want {
		t.Fatalf("escape mismatch\nwant: %q\n got: %q", want, got)
	}
}
