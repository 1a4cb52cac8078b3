package cms

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound reports that a resource does not exist in the store.
var ErrNotFound = errors.New("cms: resource not found")

// ID identifies a resource.
type ID int

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Resource is a content item (page/document) exposed by the host.
type Resource interface {
	ID() ID
	IsPublished() bool
	// Field returns a built-in resource field such as pagetitle or introtext.
	Field(name string) string
	// TemplateVarValue returns the raw stored value of a template variable.
	TemplateVarValue(name string) string
}

// Store fetches resources and resource trees.
type Store interface {
	// Get returns ErrNotFound when the resource does not exist.
	Get(ctx context.Context, id ID) (Resource, error)
	// Children lists descendant ids of parent up to depth levels, depth first.
	Children(ctx context.Context, parent ID, depth int) ([]ID, error)
}

// TemplateVarRenderer renders a template variable for one resource, applying
// whatever output formatting the host attaches to the variable.
type TemplateVarRenderer interface {
	RenderTemplateVar(ctx context.Context, name string, id ID) (string, error)
}

// LinkResolver builds the absolute URL of a resource.
type LinkResolver interface {
	BuildLink(ctx context.Context, id ID) (string, error)
}

// AssetRegistrar injects client assets into the page being rendered.
type AssetRegistrar interface {
	RegisterStylesheet(url string)
	RegisterStartupScript(url string)
}

// ParseIDs reads a comma separated identifier list ("12, 45,67"). Blank or
// non-numeric entries are skipped.
func ParseIDs(raw string) []ID {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []ID
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, ID(n))
	}
	return ids
}
