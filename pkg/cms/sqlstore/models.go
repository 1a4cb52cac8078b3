package sqlstore

import "github.com/goliatone/go-snippets/pkg/cms"

// Resource is the site_content row.
type Resource struct {
	ID          uint   `gorm:"primaryKey"`
	Parent      uint   `gorm:"index;not null;default:0"`
	MenuIndex   int    `gorm:"not null;default:0"`
	Published   bool   `gorm:"not null;default:false"`
	PageTitle   string `gorm:"type:text"`
	LongTitle   string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	IntroText   string `gorm:"type:text"`
	Content     string `gorm:"type:text"`
	MenuTitle   string `gorm:"type:text"`
	URI         string `gorm:"type:text"`

	TemplateVars []TemplateVarValue `gorm:"foreignKey:ResourceID"`
}

// TableName keeps the host table name.
func (Resource) TableName() string {
	return "site_content"
}

// TemplateVarValue stores one template variable value for a resource.
type TemplateVarValue struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	ResourceID uint   `gorm:"not null;uniqueIndex:idx_tv_resource_name"`
	Name       string `gorm:"type:text;not null;uniqueIndex:idx_tv_resource_name"`
	Value      string `gorm:"type:text"`
}

// TableName keeps the host table name.
func (TemplateVarValue) TableName() string {
	return "site_tmplvar_contentvalues"
}

// row adapts a Resource to cms.Resource.
type row struct {
	r Resource
}

var _ cms.Resource = row{}

func (w row) ID() cms.ID {
	return cms.ID(w.r.ID)
}

func (w row) IsPublished() bool {
	return w.r.Published
}

func (w row) Field(name string) string {
	switch name {
	case cms.FieldPageTitle:
		return w.r.PageTitle
	case cms.FieldLongTitle:
		return w.r.LongTitle
	case cms.FieldDescription:
		return w.r.Description
	case cms.FieldIntroText:
		return w.r.IntroText
	case cms.FieldContent:
		return w.r.Content
	case cms.FieldMenuTitle:
		return w.r.MenuTitle
	case "uri":
		return w.r.URI
	default:
		return ""
	}
}

func (w row) TemplateVarValue(name string) string {
	for _, tv := range w.r.TemplateVars {
		if tv.Name == name {
			return tv.Value
		}
	}
	return ""
}
