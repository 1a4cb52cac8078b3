// Package render defines the map renderer contract, the request payload
// renderers receive, a named renderer registry and the notice catalog used
// for "nothing to render" states.
package render
