// Package memory holds in-memory task definition and instance stores.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"customercore/internal/task/models"
	"customercore/pkg/platform/sentinel"
)

type InMemoryDefinitionStore struct {
	mu          sync.RWMutex
	definitions map[string]*models.Definition
	// instances is set by NewInstanceStore. Delete refuses definitions it
	// still references.
	instances *InMemoryInstanceStore
}

func NewDefinitionStore() *InMemoryDefinitionStore {
	return &InMemoryDefinitionStore{definitions: make(map[string]*models.Definition)}
}

func (s *InMemoryDefinitionStore) Create(_ context.Context, def *models.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.definitions[def.Identifier]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.definitions[def.Identifier] = def.Clone()
	return nil
}

func (s *InMemoryDefinitionStore) FindByID(_ context.Context, identifier string) (*models.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[identifier]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return def.Clone(), nil
}

func (s *InMemoryDefinitionStore) List(_ context.Context) ([]*models.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Definition, 0, len(s.definitions))
	for _, def := range s.definitions {
		out = append(out, def.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Definition) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return out, nil
}

func (s *InMemoryDefinitionStore) Update(_ context.Context, def *models.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.definitions[def.Identifier]; !ok {
		return sentinel.ErrNotFound
	}
	s.definitions[def.Identifier] = def.Clone()
	return nil
}

func (s *InMemoryDefinitionStore) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.definitions[identifier]; !ok {
		return sentinel.ErrNotFound
	}
	if s.instances != nil && s.instances.countByDefinition(identifier) > 0 {
		return sentinel.ErrInUse
	}
	delete(s.definitions, identifier)
	return nil
}

type instanceKey struct {
	customerID   string
	definitionID string
}

// InMemoryInstanceStore keys instances by (customer, definition); the map
// key is what keeps provisioning idempotent. Instances reference definitions
// the way the task_instances foreign key does: the definition lock is always
// taken before the instance lock.
type InMemoryInstanceStore struct {
	mu          sync.RWMutex
	instances   map[instanceKey]*models.Instance
	definitions *InMemoryDefinitionStore
}

func NewInstanceStore(definitions *InMemoryDefinitionStore) *InMemoryInstanceStore {
	s := &InMemoryInstanceStore{
		instances:   make(map[instanceKey]*models.Instance),
		definitions: definitions,
	}
	definitions.mu.Lock()
	definitions.instances = s
	definitions.mu.Unlock()
	return s
}

func (s *InMemoryInstanceStore) ListByCustomer(_ context.Context, customerID string) ([]*models.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Instance
	for key, inst := range s.instances {
		if key.customerID == customerID {
			out = append(out, inst.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.Instance) int {
		return strings.Compare(a.DefinitionID, b.DefinitionID)
	})
	return out, nil
}

// GetOrCreate returns sentinel.ErrNotFound when the definition does not exist.
func (s *InMemoryInstanceStore) GetOrCreate(_ context.Context, candidate *models.Instance) (*models.Instance, error) {
	s.definitions.mu.RLock()
	defer s.definitions.mu.RUnlock()
	if _, ok := s.definitions.definitions[candidate.DefinitionID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := instanceKey{candidate.CustomerID, candidate.DefinitionID}
	if existing, ok := s.instances[key]; ok {
		return existing.Clone(), nil
	}
	s.instances[key] = candidate.Clone()
	return candidate.Clone(), nil
}

func (s *InMemoryInstanceStore) Save(_ context.Context, inst *models.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := instanceKey{inst.CustomerID, inst.DefinitionID}
	existing, ok := s.instances[key]
	if !ok || existing.ID != inst.ID {
		return sentinel.ErrNotFound
	}
	s.instances[key] = inst.Clone()
	return nil
}

func (s *InMemoryInstanceStore) CountByDefinition(_ context.Context, definitionID string) (int, error) {
	return s.countByDefinition(definitionID), nil
}

func (s *InMemoryInstanceStore) countByDefinition(definitionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for key := range s.instances {
		if key.definitionID == definitionID {
			n++
		}
	}
	return n
}
