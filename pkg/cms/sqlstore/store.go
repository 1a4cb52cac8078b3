// Package sqlstore is a cms.Store over a SQL database through gorm. Resources
// live in site_content and template variable values in
// site_tmplvar_contentvalues.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/go-logr/logr"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goliatone/go-snippets/pkg/cms"
)

// Option configures a Store.
type Option func(*Store)

// WithBaseURL sets the prefix used by BuildLink.
func WithBaseURL(url string) Option {
	return func(s *Store) {
		s.baseURL = strings.TrimSpace(url)
	}
}

// WithLogger attaches a logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// Store implements cms.Store, cms.TemplateVarRenderer and cms.LinkResolver.
type Store struct {
	db      *gorm.DB
	baseURL string
	log     logr.Logger
}

var (
	_ cms.Store               = (*Store)(nil)
	_ cms.TemplateVarRenderer = (*Store)(nil)
	_ cms.LinkResolver        = (*Store)(nil)
)

// Open opens (or creates) a SQLite database at path and migrates the schema.
func Open(path string, options ...Option) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open sqlite database: %w", err)
	}
	return New(db, options...)
}

// New wraps an existing gorm connection and migrates the schema.
func New(db *gorm.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlstore: db is required")
	}
	s := &Store{db: db, log: logr.Discard()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if err := db.AutoMigrate(&Resource{}, &TemplateVarValue{}); err != nil {
		return nil, fmt.Errorf("sqlstore: auto-migrate tables: %w", err)
	}
	return s, nil
}

// Put inserts or updates a resource together with its template variables.
func (s *Store) Put(ctx context.Context, res *Resource) error {
	if res == nil {
		return errors.New("sqlstore: resource is required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tvs := res.TemplateVars
		res.TemplateVars = nil
		defer func() { res.TemplateVars = tvs }()

		if err := tx.Save(res).Error; err != nil {
			return err
		}
		for i := range tvs {
			tvs[i].ResourceID = res.ID
			value := tvs[i].Value
			if err := tx.Where(TemplateVarValue{ResourceID: res.ID, Name: tvs[i].Name}).
				Assign(TemplateVarValue{Value: value}).
				FirstOrCreate(&tvs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sqlstore: save resource %d: %w", res.ID, err)
	}
	s.log.V(1).Info("saved resource", "id", res.ID, "templateVars", len(res.TemplateVars))
	return nil
}

// Get implements cms.Store.
func (s *Store) Get(ctx context.Context, id cms.ID) (cms.Resource, error) {
	if id <= 0 {
		return nil, cms.ErrNotFound
	}
	var res Resource
	err := s.db.WithContext(ctx).Preload("TemplateVars").First(&res, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cms.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get resource %d: %w", id, err)
	}
	return row{r: res}, nil
}

// Children implements cms.Store, walking the tree depth first with siblings
// ordered by menu index then id.
func (s *Store) Children(ctx context.Context, parent cms.ID, depth int) ([]cms.ID, error) {
	if parent < 0 {
		return nil, nil
	}
	var ids []cms.ID
	if err := s.walk(ctx, uint(parent), depth, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) walk(ctx context.Context, parent uint, remaining int, out *[]cms.ID) error {
	if remaining < 1 {
		return nil
	}
	var children []uint
	err := s.db.WithContext(ctx).
		Model(&Resource{}).
		Where("parent = ? AND id <> ?", parent, parent).
		Order("menu_index, id").
		Pluck("id", &children).Error
	if err != nil {
		return fmt.Errorf("sqlstore: list children of %d: %w", parent, err)
	}
	for _, child := range children {
		*out = append(*out, cms.ID(child))
		if err := s.walk(ctx, child, remaining-1, out); err != nil {
			return err
		}
	}
	return nil
}

// RenderTemplateVar implements cms.TemplateVarRenderer.
func (s *Store) RenderTemplateVar(ctx context.Context, name string, id cms.ID) (string, error) {
	if id <= 0 {
		return "", cms.ErrNotFound
	}
	var tv TemplateVarValue
	err := s.db.WithContext(ctx).
		Where("resource_id = ? AND name = ?", uint(id), name).
		First(&tv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("sqlstore: render template var %q for %d: %w", name, id, err)
	}
	return tv.Value, nil
}

// BuildLink implements cms.LinkResolver.
func (s *Store) BuildLink(ctx context.Context, id cms.ID) (string, error) {
	if id <= 0 {
		return "", cms.ErrNotFound
	}
	var res Resource
	err := s.db.WithContext(ctx).Select("id", "uri").First(&res, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", cms.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlstore: build link for %d: %w", id, err)
	}

	base := strings.TrimRight(s.baseURL, "/") + "/"
	if uri := strings.TrimLeft(strings.TrimSpace(res.URI), "/"); uri != "" {
		return base + uri, nil
	}
	return base + "index.php?id=" + id.String(), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("sqlstore: access sql.DB: %w", err)
	}
	return sqlDB.Close()
}
