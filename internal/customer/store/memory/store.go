// Package memory holds in-memory customer, command and identification stores.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"customercore/internal/customer/models"
	"customercore/internal/lifecycle"
	"customercore/pkg/platform/sentinel"
)

// InMemoryCustomerStore keeps customers and their values. Row locking is the
// transaction runner's job; FindByIDForUpdate is a plain read here.
type InMemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
}

func NewCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{customers: make(map[string]*models.Customer)}
}

func (s *InMemoryCustomerStore) Create(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.Identifier]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.customers[customer.Identifier] = customer.Clone()
	return nil
}

func (s *InMemoryCustomerStore) FindByID(_ context.Context, identifier string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[identifier]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return customer.Clone(), nil
}

func (s *InMemoryCustomerStore) FindByIDForUpdate(ctx context.Context, identifier string) (*models.Customer, error) {
	return s.FindByID(ctx, identifier)
}

func (s *InMemoryCustomerStore) List(_ context.Context, state lifecycle.State) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		if state != "" && customer.State != state {
			continue
		}
		out = append(out, customer.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Customer) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return out, nil
}

func (s *InMemoryCustomerStore) Update(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.customers[customer.Identifier]
	if !ok {
		return sentinel.ErrNotFound
	}
	next := customer.Clone()
	next.Values = current.Values
	s.customers[customer.Identifier] = next
	return nil
}

func (s *InMemoryCustomerStore) ReplaceValues(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.customers[customer.Identifier]
	if !ok {
		return sentinel.ErrNotFound
	}
	next := current.Clone()
	next.Values = slices.Clone(customer.Values)
	next.ModifiedBy = customer.ModifiedBy
	next.ModifiedAt = customer.ModifiedAt
	s.customers[customer.Identifier] = next
	return nil
}

// FieldInUse reports whether any customer holds a value for the field.
func (s *InMemoryCustomerStore) FieldInUse(_ context.Context, catalogID, fieldID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, customer := range s.customers {
		if customer.ReferencesField(catalogID, fieldID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryCustomerStore) CatalogInUse(ctx context.Context, catalogID string) (bool, error) {
	return s.FieldInUse(ctx, catalogID, "")
}

type InMemoryCommandStore struct {
	mu      sync.RWMutex
	records map[string][]*models.CommandRecord
}

func NewCommandStore() *InMemoryCommandStore {
	return &InMemoryCommandStore{records: make(map[string][]*models.CommandRecord)}
}

func (s *InMemoryCommandStore) Append(_ context.Context, record *models.CommandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *record
	s.records[record.CustomerID] = append(s.records[record.CustomerID], &cp)
	return nil
}

// ListByCustomer returns the customer's commands oldest first.
func (s *InMemoryCommandStore) ListByCustomer(_ context.Context, customerID string) ([]*models.CommandRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records[customerID]
	out := make([]*models.CommandRecord, len(records))
	for i, r := range records {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

type InMemoryIdentificationStore struct {
	mu    sync.RWMutex
	cards map[string][]*models.IdentificationCard
}

func NewIdentificationStore() *InMemoryIdentificationStore {
	return &InMemoryIdentificationStore{cards: make(map[string][]*models.IdentificationCard)}
}

func (s *InMemoryIdentificationStore) Add(_ context.Context, card *models.IdentificationCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cards[card.CustomerID] {
		if existing.Kind == card.Kind && existing.Number == card.Number {
			return sentinel.ErrAlreadyUsed
		}
	}
	cp := *card
	s.cards[card.CustomerID] = append(s.cards[card.CustomerID], &cp)
	return nil
}

func (s *InMemoryIdentificationStore) ListByCustomer(_ context.Context, customerID string) ([]*models.IdentificationCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cards := s.cards[customerID]
	out := make([]*models.IdentificationCard, len(cards))
	for i, c := range cards {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (s *InMemoryIdentificationStore) Delete(_ context.Context, customerID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := s.cards[customerID]
	idx := slices.IndexFunc(cards, func(c *models.IdentificationCard) bool { return c.ID == id })
	if idx < 0 {
		return sentinel.ErrNotFound
	}
	s.cards[customerID] = slices.Delete(cards, idx, idx+1)
	return nil
}

func (s *InMemoryIdentificationStore) HasAny(_ context.Context, customerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards[customerID]) > 0, nil
}
