package cms

// Built-in resource fields. Any other field name refers to a template
// variable.
const (
	FieldPageTitle   = "pagetitle"
	FieldLongTitle   = "longtitle"
	FieldIntroText   = "introtext"
	FieldContent     = "content"
	FieldDescription = "description"
	FieldMenuTitle   = "menutitle"
)

var standardFields = map[string]struct{}{
	FieldPageTitle:   {},
	FieldLongTitle:   {},
	FieldIntroText:   {},
	FieldContent:     {},
	FieldDescription: {},
	FieldMenuTitle:   {},
}

// IsStandardField reports whether name is read directly from the resource
// rather than rendered as a template variable.
func IsStandardField(name string) bool {
	_, ok := standardFields[name]
	return ok
}
