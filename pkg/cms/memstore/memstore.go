// Package memstore is an in-memory cms.Store backed by a YAML fixture. It also
// renders template variables (raw values) and builds links, which makes it the
// default host for the CLI and for tests.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-snippets/pkg/cms"
)

// Record is one resource in a fixture document.
type Record struct {
	ID           cms.ID            `yaml:"id"`
	Parent       cms.ID            `yaml:"parent"`
	MenuIndex    int               `yaml:"menuindex"`
	Published    bool              `yaml:"published"`
	URI          string            `yaml:"uri"`
	Fields       map[string]string `yaml:"fields"`
	TemplateVars map[string]string `yaml:"tvs"`
}

// Document is the YAML fixture layout.
type Document struct {
	BaseURL   string   `yaml:"base_url"`
	Resources []Record `yaml:"resources"`
}

// Store keeps records keyed by id.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	records map[cms.ID]Record
}

var (
	_ cms.Store               = (*Store)(nil)
	_ cms.TemplateVarRenderer = (*Store)(nil)
	_ cms.LinkResolver        = (*Store)(nil)
)

// New creates a store holding records. baseURL prefixes generated links.
func New(baseURL string, records ...Record) *Store {
	s := &Store{
		baseURL: baseURL,
		records: make(map[cms.ID]Record, len(records)),
	}
	for _, rec := range records {
		s.records[rec.ID] = rec
	}
	return s
}

// DecodeDocument reads a YAML fixture document. An empty input yields an
// empty document.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("memstore: decode fixture: %w", err)
	}
	return doc, nil
}

// ReadDocumentFile reads a YAML fixture document from disk.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("memstore: open fixture: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// Load builds a store from a YAML fixture document.
func Load(r io.Reader) (*Store, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return New(doc.BaseURL, doc.Resources...), nil
}

// LoadFile builds a store from a YAML fixture on disk.
func LoadFile(path string) (*Store, error) {
	doc, err := ReadDocumentFile(path)
	if err != nil {
		return nil, err
	}
	return New(doc.BaseURL, doc.Resources...), nil
}

// Put inserts or replaces a record.
func (s *Store) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
}

// Get implements cms.Store.
func (s *Store) Get(_ context.Context, id cms.ID) (cms.Resource, error) {
	rec, ok := s.record(id)
	if !ok {
		return nil, cms.ErrNotFound
	}
	return resource{rec: rec}, nil
}

// Children implements cms.Store. Siblings are ordered by menu index then id.
func (s *Store) Children(_ context.Context, parent cms.ID, depth int) ([]cms.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byParent := make(map[cms.ID][]Record)
	for _, rec := range s.records {
		byParent[rec.Parent] = append(byParent[rec.Parent], rec)
	}
	for _, siblings := range byParent {
		sort.Slice(siblings, func(i, j int) bool {
			if siblings[i].MenuIndex != siblings[j].MenuIndex {
				return siblings[i].MenuIndex < siblings[j].MenuIndex
			}
			return siblings[i].ID < siblings[j].ID
		})
	}

	var ids []cms.ID
	var walk func(cms.ID, int)
	walk = func(id cms.ID, remaining int) {
		if remaining < 1 {
			return
		}
		for _, child := range byParent[id] {
			if child.ID == id {
				continue
			}
			ids = append(ids, child.ID)
			walk(child.ID, remaining-1)
		}
	}
	walk(parent, depth)
	return ids, nil
}

// RenderTemplateVar implements cms.TemplateVarRenderer. Unknown variables
// render as an empty string.
func (s *Store) RenderTemplateVar(_ context.Context, name string, id cms.ID) (string, error) {
	rec, ok := s.record(id)
	if !ok {
		return "", cms.ErrNotFound
	}
	return rec.TemplateVars[name], nil
}

// BuildLink implements cms.LinkResolver.
func (s *Store) BuildLink(_ context.Context, id cms.ID) (string, error) {
	rec, ok := s.record(id)
	if !ok {
		return "", cms.ErrNotFound
	}
	return joinLink(s.baseURL, rec.ID, rec.URI), nil
}

func (s *Store) record(id cms.ID) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

func joinLink(baseURL string, id cms.ID, uri string) string {
	base := strings.TrimRight(baseURL, "/") + "/"
	if uri = strings.TrimLeft(strings.TrimSpace(uri), "/"); uri != "" {
		return base + uri
	}
	return base + "index.php?id=" + id.String()
}

type resource struct {
	rec Record
}

func (r resource) ID() cms.ID {
	return r.rec.ID
}

func (r resource) IsPublished() bool {
	return r.rec.Published
}

func (r resource) Field(name string) string {
	return r.rec.Fields[name]
}

func (r resource) TemplateVarValue(name string) string {
	return r.rec.TemplateVars[name]
}
