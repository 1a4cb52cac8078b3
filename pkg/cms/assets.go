package cms

import (
	"html"
	"strings"
)

// AssetCollector is an AssetRegistrar that records registrations in order,
// ignoring duplicates. Callers without a host page use it to emit the head
// tags themselves.
type AssetCollector struct {
	stylesheets []string
	scripts     []string
}

var _ AssetRegistrar = (*AssetCollector)(nil)

// RegisterStylesheet implements AssetRegistrar.
func (c *AssetCollector) RegisterStylesheet(url string) {
	c.stylesheets = appendUnique(c.stylesheets, url)
}

// RegisterStartupScript implements AssetRegistrar.
func (c *AssetCollector) RegisterStartupScript(url string) {
	c.scripts = appendUnique(c.scripts, url)
}

// Stylesheets returns the registered stylesheet URLs.
func (c *AssetCollector) Stylesheets() []string {
	return append([]string(nil), c.stylesheets...)
}

// Scripts returns the registered startup script URLs.
func (c *AssetCollector) Scripts() []string {
	return append([]string(nil), c.scripts...)
}

// HeadHTML renders link and script tags for everything registered so far.
func (c *AssetCollector) HeadHTML() string {
	var b strings.Builder
	for _, url := range c.stylesheets {
		b.WriteString(`<link rel="stylesheet" href="` + html.EscapeString(url) + `">` + "\n")
	}
	for _, url := range c.scripts {
		b.WriteString(`<script src="` + html.EscapeString(url) + `"></script>` + "\n")
	}
	return b.String()
}

func appendUnique(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
