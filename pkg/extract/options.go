package extract

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultDelimiter separates values when the options omit one.
	DefaultDelimiter = ";"

	keyIndex     = "index"
	keyDelimiter = "delimiter"
	keyDefault   = "default"
)

// numericPattern accepts the same shapes a host template layer treats as a
// bare number: optional sign, digits with an optional fraction, and an
// optional exponent.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Options controls which value Extract selects.
type Options struct {
	// Index is the zero-based position to return. Negative values count from
	// the end of the sequence (-1 is the last value).
	Index int
	// Delimiter splits the input. Empty falls back to DefaultDelimiter.
	Delimiter string
	// Default is returned when Index does not address a value.
	Default string
}

// DefaultOptions returns {Index: 0, Delimiter: ";", Default: ""}.
func DefaultOptions() Options {
	return Options{Delimiter: DefaultDelimiter}
}

// ParseOptions turns the compact options blob into Options. A bare number is
// read as the index; anything else is parsed as `key=value` pairs joined by
// `&`. Fragments that are not exactly one key and one value are dropped and
// unknown keys are ignored, so parsing never fails.
func ParseOptions(raw string) Options {
	opts := DefaultOptions()
	if raw == "" {
		return opts
	}

	if trimmed := strings.TrimSpace(raw); numericPattern.MatchString(trimmed) {
		opts.Index = numericIndex(trimmed)
		return opts
	}

	params := make(map[string]string)
	for _, fragment := range strings.Split(raw, "&") {
		pair := strings.Split(fragment, "=")
		if len(pair) != 2 {
			continue
		}
		params[strings.TrimSpace(pair[0])] = strings.TrimSpace(pair[1])
	}

	if value, ok := params[keyIndex]; ok {
		opts.Index = leadingInt(value)
	}
	if value, ok := params[keyDelimiter]; ok && value != "" {
		opts.Delimiter = value
	}
	if value, ok := params[keyDefault]; ok {
		opts.Default = value
	}
	return opts
}

// numericIndex truncates a validated numeric string towards zero.
func numericIndex(value string) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil && !isRangeError(err) {
		return 0
	}
	return clampInt(f)
}

// leadingInt reads the integer prefix of value ("2abc" -> 2, "abc" -> 0).
func leadingInt(value string) int {
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.Atoi(value[:end])
	if err != nil {
		if value[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return n
}

func clampInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(f)
	}
}

func isRangeError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}
