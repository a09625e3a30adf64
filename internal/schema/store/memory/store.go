package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"customercore/internal/schema/models"
	"customercore/pkg/platform/sentinel"
)

// InMemoryCatalogStore keeps catalogs in a map. Values handed out are clones;
// callers must write back through the store.
type InMemoryCatalogStore struct {
	mu       sync.RWMutex
	catalogs map[string]*models.Catalog
}

func New() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{catalogs: make(map[string]*models.Catalog)}
}

func (s *InMemoryCatalogStore) Create(_ context.Context, catalog *models.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.catalogs[catalog.Identifier]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.catalogs[catalog.Identifier] = catalog.Clone()
	return nil
}

func (s *InMemoryCatalogStore) FindByID(_ context.Context, identifier string) (*models.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.catalogs[identifier]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c.Clone(), nil
}

// FindByIDForUpdate relies on the in-memory tx runner for mutual exclusion.
func (s *InMemoryCatalogStore) FindByIDForUpdate(ctx context.Context, identifier string) (*models.Catalog, error) {
	return s.FindByID(ctx, identifier)
}

func (s *InMemoryCatalogStore) List(_ context.Context) ([]*models.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Catalog, 0, len(s.catalogs))
	for _, c := range s.catalogs {
		out = append(out, c.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Catalog) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return out, nil
}

func (s *InMemoryCatalogStore) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalogs[identifier]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.catalogs, identifier)
	return nil
}

func (s *InMemoryCatalogStore) InsertField(_ context.Context, catalog *models.Catalog, field models.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.catalogs[catalog.Identifier]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, exists := stored.Field(field.Identifier); exists {
		return sentinel.ErrAlreadyUsed
	}
	s.catalogs[catalog.Identifier] = catalog.Clone()
	return nil
}

func (s *InMemoryCatalogStore) UpdateField(_ context.Context, catalog *models.Catalog, field models.Field) error {
	return s.replaceIfFieldExists(catalog, field.Identifier)
}

func (s *InMemoryCatalogStore) DeleteField(_ context.Context, catalog *models.Catalog, fieldID string) error {
	return s.replaceIfFieldExists(catalog, fieldID)
}

func (s *InMemoryCatalogStore) replaceIfFieldExists(catalog *models.Catalog, fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.catalogs[catalog.Identifier]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, exists := stored.Field(fieldID); !exists {
		return sentinel.ErrNotFound
	}
	s.catalogs[catalog.Identifier] = catalog.Clone()
	return nil
}
