// Package markers turns CMS resources into map marker descriptors: it reads
// the coordinate template variable, resolves title and subtitle fields
// (built-in fields directly, anything else as a rendered template variable),
// strips and truncates the subtitle, escapes both for markup and attaches the
// resource link. Resources without a usable coordinate are dropped.
package markers
