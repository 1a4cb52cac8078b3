package extract_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-snippets/pkg/extract"
)

const fruits = "pomme;orange;banane;fraise"

func TestExtract_FruitScenario(t *testing.T) {
	cases := []struct {
		options string
		want    string
	}{
		{options: "0", want: "pomme"},
		{options: "1", want: "orange"},
		{options: "-1", want: "fraise"},
		{options: "index=1&delimiter=;", want: "orange"},
		{options: "index=10&default=Non trouvé", want: "Non trouvé"},
	}

	for _, tc := range cases {
		t.Run(tc.options, func(t *testing.T) {
			if got := extract.Extract(fruits, tc.options); got != tc.want {
				t.Fatalf("extract(%q): want %q, got %q", tc.options, tc.want, got)
			}
		})
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	if got := extract.Extract("", "index=0&default=fallback"); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
	if got := extract.ExtractWith("", extract.Options{Default: "fallback"}); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
}

func TestExtract_IndexZeroReturnsFirstTrimmedSegment(t *testing.T) {
	inputs := []string{"a", "  a  ;b", "a;", " a ; b ; c ", "only one"}
	for _, input := range inputs {
		want := extract.Split(input, ";")[0]
		if got := extract.Extract(input, "0"); got != want {
			t.Fatalf("extract(%q, 0): want %q, got %q", input, want, got)
		}
	}
}

func TestExtract_NegativeIndexMirrorsPositive(t *testing.T) {
	input := "a; b ;c;d;e"
	n := len(extract.Split(input, ";"))

	for k := 1; k <= n; k++ {
		negative := extract.Extract(input, fmt.Sprintf("%d", -k))
		positive := extract.Extract(input, fmt.Sprintf("%d", n-k))
		if negative != positive {
			t.Fatalf("index -%d: want %q (index %d), got %q", k, positive, n-k, negative)
		}
	}
}

func TestExtract_NegativeIndexBeyondStartUsesDefault(t *testing.T) {
	if got := extract.Extract("a;b", "index=-3&default=none"); got != "none" {
		t.Fatalf("expected default for remapped index below zero, got %q", got)
	}
	if got := extract.Extract("a;b", "-5"); got != "" {
		t.Fatalf("expected empty default, got %q", got)
	}
}

func TestExtract_DefaultDelimiterTrimsSegments(t *testing.T) {
	got := extract.Split("  one ;two;  three  ", "")
	want := []string{"one", "two", "three"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	if got := extract.Extract(" one , two ; three", ""); got != "one , two" {
		t.Fatalf("expected split on ';' only, got %q", got)
	}
}

func TestExtract_CustomDelimiter(t *testing.T) {
	if got := extract.Extract("pomme|orange|banane", "index=1&delimiter=|"); got != "orange" {
		t.Fatalf("expected orange, got %q", got)
	}
	if got := extract.Extract("a::b::c", "index=-1&delimiter=::"); got != "c" {
		t.Fatalf("expected c, got %q", got)
	}
}

func TestParseOptions(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want extract.Options
	}{
		{name: "empty", raw: "", want: extract.Options{Delimiter: ";"}},
		{name: "bare index", raw: "2", want: extract.Options{Index: 2, Delimiter: ";"}},
		{name: "bare negative", raw: "-1", want: extract.Options{Index: -1, Delimiter: ";"}},
		{name: "bare padded", raw: " 3 ", want: extract.Options{Index: 3, Delimiter: ";"}},
		{name: "bare fraction truncates", raw: "1.9", want: extract.Options{Index: 1, Delimiter: ";"}},
		{name: "bare exponent", raw: "1e1", want: extract.Options{Index: 10, Delimiter: ";"}},
		{
			name: "malformed fragment dropped",
			raw:  "index=2&badfragment&delimiter=|",
			want: extract.Options{Index: 2, Delimiter: "|"},
		},
		{
			name: "double equals dropped",
			raw:  "default=a=b&index=1",
			want: extract.Options{Index: 1, Delimiter: ";"},
		},
		{
			name: "keys and values trimmed",
			raw:  " index = 4 & default = none ",
			want: extract.Options{Index: 4, Delimiter: ";", Default: "none"},
		},
		{
			name: "unknown keys ignored",
			raw:  "index=1&color=red",
			want: extract.Options{Index: 1, Delimiter: ";"},
		},
		{
			name: "non numeric index",
			raw:  "index=abc&default=x",
			want: extract.Options{Delimiter: ";", Default: "x"},
		},
		{
			name: "index numeric prefix",
			raw:  "index=2nd",
			want: extract.Options{Index: 2, Delimiter: ";"},
		},
		{
			name: "empty delimiter keeps default",
			raw:  "delimiter=&index=1",
			want: extract.Options{Index: 1, Delimiter: ";"},
		},
		{
			name: "last key wins",
			raw:  "index=1&index=3",
			want: extract.Options{Index: 3, Delimiter: ";"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extract.ParseOptions(tc.raw)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOptions_HugeIndexClamps(t *testing.T) {
	if got := extract.ParseOptions("index=99999999999999999999999").Index; got != math.MaxInt {
		t.Fatalf("expected clamp to MaxInt, got %d", got)
	}
	if got := extract.ParseOptions("-1e300").Index; got != math.MinInt {
		t.Fatalf("expected clamp to MinInt, got %d", got)
	}
	if got := extract.Extract("a;b", "index=-99999999999999999999999&default=none"); got != "none" {
		t.Fatalf("expected default for clamped negative index, got %q", got)
	}
}

func TestExtract_NeverPanicsOnMalformedOptions(t *testing.T) {
	inputs := []string{"a;b;c", ";", " ", "x"}
	options := []string{
		"&", "=", "==", "&&&", "index", "index=", "=1", "delimiter= ",
		"default", "index=-", "+", "-", ".", "1e", "index=1&delimiter",
		"\x00", "index=é", "NaN", "Inf",
	}
	for _, input := range inputs {
		for _, opt := range options {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("extract(%q, %q) panicked: %v", input, opt, r)
					}
				}()
				_ = extract.Extract(input, opt)
			}()
		}
	}
}
