package extract

import "strings"

// Extract parses options and returns the selected value from input. An empty
// input always yields an empty string.
func Extract(input, options string) string {
	if input == "" {
		return ""
	}
	return ExtractWith(input, ParseOptions(options))
}

// ExtractWith returns the value at opts.Index, or opts.Default when the index
// (after resolving negative positions) falls outside the sequence.
func ExtractWith(input string, opts Options) string {
	if input == "" {
		return ""
	}

	values := Split(input, opts.Delimiter)

	index := opts.Index
	if index < 0 {
		index += len(values)
	}
	if index < 0 || index >= len(values) {
		return opts.Default
	}
	return values[index]
}

// Split breaks input on delimiter and trims whitespace around every value.
// An empty delimiter is replaced by DefaultDelimiter.
func Split(input, delimiter string) []string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	values := strings.Split(input, delimiter)
	for i, value := range values {
		values[i] = strings.TrimSpace(value)
	}
	return values
}
