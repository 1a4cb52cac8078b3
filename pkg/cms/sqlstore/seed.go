package sqlstore

import (
	"context"
	"sort"

	"github.com/goliatone/go-snippets/pkg/cms"
	"github.com/goliatone/go-snippets/pkg/cms/memstore"
)

// FromRecord converts a fixture record into a database row.
func FromRecord(rec memstore.Record) *Resource {
	res := &Resource{
		ID:          uint(rec.ID),
		Parent:      uint(rec.Parent),
		MenuIndex:   rec.MenuIndex,
		Published:   rec.Published,
		PageTitle:   rec.Fields[cms.FieldPageTitle],
		LongTitle:   rec.Fields[cms.FieldLongTitle],
		Description: rec.Fields[cms.FieldDescription],
		IntroText:   rec.Fields[cms.FieldIntroText],
		Content:     rec.Fields[cms.FieldContent],
		MenuTitle:   rec.Fields[cms.FieldMenuTitle],
		URI:         rec.URI,
	}

	names := make([]string, 0, len(rec.TemplateVars))
	for name := range rec.TemplateVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res.TemplateVars = append(res.TemplateVars, TemplateVarValue{
			Name:  name,
			Value: rec.TemplateVars[name],
		})
	}
	return res
}

// Seed writes every record of a fixture document into the store.
func (s *Store) Seed(ctx context.Context, doc memstore.Document) (int, error) {
	for i, rec := range doc.Resources {
		if err := s.Put(ctx, FromRecord(rec)); err != nil {
			return i, err
		}
	}
	s.log.Info("seeded resources", "count", len(doc.Resources))
	return len(doc.Resources), nil
}
