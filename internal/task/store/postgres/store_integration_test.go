//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"customercore/internal/lifecycle"
	"customercore/internal/task/models"
	"customercore/internal/task/store/postgres"
	"customercore/pkg/platform/sentinel"
	"customercore/pkg/testutil/containers"
)

type PostgresTaskStoreSuite struct {
	suite.Suite
	postgres    *containers.PostgresContainer
	definitions *postgres.PostgresDefinitionStore
	instances   *postgres.PostgresInstanceStore
}

func TestPostgresTaskStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTaskStoreSuite))
}

func (s *PostgresTaskStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.definitions = postgres.NewDefinitionStore(s.postgres.DB)
	s.instances = postgres.NewInstanceStore(s.postgres.DB)
}

func (s *PostgresTaskStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateAll(ctx))
	_, err := s.postgres.DB.ExecContext(ctx, `
		INSERT INTO customers (identifier, customer_type, state, created_by, created_at, modified_by, modified_at)
		VALUES ('cust-1', 'PERSON', 'PENDING', 'maker', NOW(), 'maker', NOW())`)
	s.Require().NoError(err)

	def, err := models.NewDefinition("nat-id", models.TaskTypeIDCard, models.DefinitionSpec{
		Name:       "National ID",
		Mandatory:  true,
		Predefined: true,
		Commands:   []lifecycle.Command{lifecycle.CommandActivate, lifecycle.CommandReopen},
	}, "admin", time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.definitions.Create(ctx, def))
}

// TestDefinitionRoundTrip verifies the command array survives persistence.
func (s *PostgresTaskStoreSuite) TestDefinitionRoundTrip() {
	ctx := context.Background()
	found, err := s.definitions.FindByID(ctx, "nat-id")
	s.Require().NoError(err)
	s.Equal(models.TaskTypeIDCard, found.Type)
	s.Equal([]lifecycle.Command{lifecycle.CommandActivate, lifecycle.CommandReopen}, found.Commands)

	found.Predefined = false
	found.Commands = []lifecycle.Command{lifecycle.CommandUnlock}
	s.Require().NoError(s.definitions.Update(ctx, found))

	list, err := s.definitions.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.False(list[0].Predefined)
	s.Equal([]lifecycle.Command{lifecycle.CommandUnlock}, list[0].Commands)

	s.ErrorIs(s.definitions.Create(ctx, found), sentinel.ErrAlreadyUsed)
}

// TestConcurrentGetOrCreate verifies provisioning races settle on one row.
func (s *PostgresTaskStoreSuite) TestConcurrentGetOrCreate() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := make(map[string]struct{})
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := s.instances.GetOrCreate(ctx, models.NewInstance("cust-1", "nat-id", time.Now().UTC()))
			if !s.NoError(err) {
				return
			}
			mu.Lock()
			ids[inst.ID.String()] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(ids, 1)
	n, err := s.instances.CountByDefinition(ctx, "nat-id")
	s.Require().NoError(err)
	s.Equal(1, n)
}

// TestExecutionAndDeleteGuard verifies saves persist and referenced definitions stay.
func (s *PostgresTaskStoreSuite) TestExecutionAndDeleteGuard() {
	ctx := context.Background()
	inst, err := s.instances.GetOrCreate(ctx, models.NewInstance("cust-1", "nat-id", time.Now().UTC()))
	s.Require().NoError(err)
	s.False(inst.Executed())

	inst.MarkExecuted("checker", "card seen", time.Now().UTC())
	s.Require().NoError(s.instances.Save(ctx, inst))

	list, err := s.instances.ListByCustomer(ctx, "cust-1")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("checker", list[0].ExecutedBy)
	s.Require().NotNil(list[0].ExecutedOn)

	s.ErrorIs(s.definitions.Delete(ctx, "nat-id"), sentinel.ErrInUse)
}

// TestGetOrCreateUnknownDefinition verifies a missing definition reports not found.
func (s *PostgresTaskStoreSuite) TestGetOrCreateUnknownDefinition() {
	_, err := s.instances.GetOrCreate(context.Background(), models.NewInstance("cust-1", "missing", time.Now().UTC()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
