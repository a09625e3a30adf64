//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"customercore/internal/customer/models"
	"customercore/internal/customer/store/postgres"
	"customercore/internal/lifecycle"
	schemamodels "customercore/internal/schema/models"
	schemapostgres "customercore/internal/schema/store/postgres"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
	"customercore/pkg/testutil/containers"
)

type PostgresCustomerStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	customers *postgres.PostgresCustomerStore
	commands  *postgres.PostgresCommandStore
	cards     *postgres.PostgresIdentificationStore
	now       time.Time
}

func TestPostgresCustomerStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCustomerStoreSuite))
}

func (s *PostgresCustomerStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.customers = postgres.NewCustomerStore(s.postgres.DB)
	s.commands = postgres.NewCommandStore(s.postgres.DB)
	s.cards = postgres.NewIdentificationStore(s.postgres.DB)
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresCustomerStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateAll(ctx))
	catalog, err := schemamodels.NewCatalog("loan-info", "Loan information", "", []schemamodels.Field{
		{Identifier: "income", DataType: schemamodels.DataTypeNumber},
		{Identifier: "employer", DataType: schemamodels.DataTypeText},
	}, "admin", s.now)
	s.Require().NoError(err)
	s.Require().NoError(schemapostgres.New(s.postgres.DB).Create(ctx, catalog))
}

func (s *PostgresCustomerStoreSuite) person(id string) *models.Customer {
	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	c, err := models.NewCustomer(id, models.TypePerson, models.Profile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: &dob,
		Address:     &models.Address{Line1: "1 Main St", City: "London", Country: "GB"},
		Contacts:    []models.ContactDetail{{Kind: models.ContactEmail, Value: "ada@example.com", Primary: true}},
	}, "clerk", s.now)
	s.Require().NoError(err)
	return c
}

// TestRoundTrip verifies profile JSON, dates and values survive persistence.
func (s *PostgresCustomerStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	c := s.person("c-1")
	c.ReplaceValues([]models.Value{
		{Catalog: "loan-info", Field: "income", Value: "123.45"},
		{Catalog: "loan-info", Field: "employer", Value: "ACME"},
	}, "clerk", s.now)
	s.Require().NoError(s.customers.Create(ctx, c))
	s.ErrorIs(s.customers.Create(ctx, s.person("c-1")), sentinel.ErrAlreadyUsed)

	found, err := s.customers.FindByID(ctx, "c-1")
	s.Require().NoError(err)
	s.Equal(lifecycle.StatePending, found.State)
	s.Equal("London", found.Address.City)
	s.Require().Len(found.Contacts, 1)
	s.True(found.Contacts[0].Primary)
	s.Equal(1990, found.DateOfBirth.Year())
	s.Equal(c.Values, found.Values)

	_, err = s.customers.FindByID(ctx, "ghost")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestUnknownFieldRejected verifies the foreign key onto catalog_fields.
func (s *PostgresCustomerStoreSuite) TestUnknownFieldRejected() {
	c := s.person("c-1")
	c.ReplaceValues([]models.Value{{Catalog: "loan-info", Field: "nope", Value: "1"}}, "clerk", s.now)
	err := s.customers.Create(context.Background(), c)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

// TestUpdateAndValues verifies state updates and value replacement inside a
// transaction holding the row lock.
func (s *PostgresCustomerStoreSuite) TestUpdateAndValues() {
	ctx := context.Background()
	c := s.person("c-1")
	c.ReplaceValues([]models.Value{{Catalog: "loan-info", Field: "income", Value: "10"}}, "clerk", s.now)
	s.Require().NoError(s.customers.Create(ctx, c))

	runner := txcontext.NewPostgresRunner(s.postgres.DB)
	err := runner.RunInTx(ctx, func(ctx context.Context) error {
		locked, err := s.customers.FindByIDForUpdate(ctx, "c-1")
		if err != nil {
			return err
		}
		if _, err := locked.Apply(lifecycle.CommandActivate, "checker", s.now); err != nil {
			return err
		}
		if err := s.customers.Update(ctx, locked); err != nil {
			return err
		}
		locked.ReplaceValues([]models.Value{{Catalog: "loan-info", Field: "employer", Value: "ACME"}}, "checker", s.now)
		return s.customers.ReplaceValues(ctx, locked)
	})
	s.Require().NoError(err)

	found, err := s.customers.FindByID(ctx, "c-1")
	s.Require().NoError(err)
	s.Equal(lifecycle.StateActive, found.State)
	s.Equal([]models.Value{{Catalog: "loan-info", Field: "employer", Value: "ACME"}}, found.Values)

	active, err := s.customers.List(ctx, lifecycle.StateActive)
	s.Require().NoError(err)
	s.Len(active, 1)
	pending, err := s.customers.List(ctx, lifecycle.StatePending)
	s.Require().NoError(err)
	s.Empty(pending)

	inUse, err := s.customers.FieldInUse(ctx, "loan-info", "income")
	s.Require().NoError(err)
	s.False(inUse)
	inUse, err = s.customers.CatalogInUse(ctx, "loan-info")
	s.Require().NoError(err)
	s.True(inUse)
}

// TestCommandsAndCards verifies the command trail and identification cards.
func (s *PostgresCustomerStoreSuite) TestCommandsAndCards() {
	ctx := context.Background()
	s.Require().NoError(s.customers.Create(ctx, s.person("c-1")))

	s.Require().NoError(s.commands.Append(ctx, &models.CommandRecord{
		ID: uuid.New(), CustomerID: "c-1", Action: lifecycle.CommandActivate,
		From: lifecycle.StatePending, To: lifecycle.StateActive, Actor: "checker", CreatedAt: s.now,
	}))
	records, err := s.commands.ListByCustomer(ctx, "c-1")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(lifecycle.StateActive, records[0].To)

	card, err := models.NewIdentificationCard("c-1", "passport", "X123", "GB", nil, "clerk", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.cards.Add(ctx, card))
	dup, err := models.NewIdentificationCard("c-1", "passport", "X123", "", nil, "clerk", s.now)
	s.Require().NoError(err)
	s.ErrorIs(s.cards.Add(ctx, dup), sentinel.ErrAlreadyUsed)

	has, err := s.cards.HasAny(ctx, "c-1")
	s.Require().NoError(err)
	s.True(has)

	s.ErrorIs(s.cards.Delete(ctx, "c-1", uuid.New()), sentinel.ErrNotFound)
	s.Require().NoError(s.cards.Delete(ctx, "c-1", card.ID))
	cards, err := s.cards.ListByCustomer(ctx, "c-1")
	s.Require().NoError(err)
	s.Empty(cards)
}
