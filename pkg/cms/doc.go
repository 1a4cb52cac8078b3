// Package cms defines the narrow host contracts the snippets depend on: a
// resource store, template variable rendering, link building and client asset
// registration. Concrete stores live in the memstore and sqlstore packages.
package cms
