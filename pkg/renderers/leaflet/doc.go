// Package leaflet renders marker maps as a Leaflet container plus a deferred
// initialisation script. The map starts immediately when the Leaflet global
// is present and otherwise waits for the window load event.
package leaflet
