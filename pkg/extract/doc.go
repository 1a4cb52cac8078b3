// Package extract selects one value out of a delimited string. It backs the
// getValueByIndex output filter: the filter options arrive either as a bare
// index ("1", "-1") or as `index=2&delimiter=|&default=none`, and every
// malformed input degrades to a default value instead of an error.
package extract
