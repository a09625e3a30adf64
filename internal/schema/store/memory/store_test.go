package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"customercore/internal/schema/models"
	"customercore/pkg/platform/sentinel"
)

type InMemoryCatalogStoreSuite struct {
	suite.Suite
	store *InMemoryCatalogStore
	ctx   context.Context
}

func TestInMemoryCatalogStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCatalogStoreSuite))
}

func (s *InMemoryCatalogStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func (s *InMemoryCatalogStoreSuite) newCatalog(id string, fields ...models.Field) *models.Catalog {
	c, err := models.NewCatalog(id, id, "", fields, "admin", time.Now())
	s.Require().NoError(err)
	return c
}

// TestCreateAndFind verifies round trip and duplicate detection.
func (s *InMemoryCatalogStoreSuite) TestCreateAndFind() {
	c := s.newCatalog("loan-info", models.Field{Identifier: "income", DataType: models.DataTypeNumber})
	s.Require().NoError(s.store.Create(s.ctx, c))

	found, err := s.store.FindByID(s.ctx, "loan-info")
	s.Require().NoError(err)
	s.Equal("loan-info", found.Identifier)
	s.Len(found.Fields, 1)

	s.ErrorIs(s.store.Create(s.ctx, c), sentinel.ErrAlreadyUsed)

	_, err = s.store.FindByID(s.ctx, "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestReturnedCatalogIsDetached verifies mutating a result does not change the store.
func (s *InMemoryCatalogStoreSuite) TestReturnedCatalogIsDetached() {
	s.Require().NoError(s.store.Create(s.ctx, s.newCatalog("c", models.Field{Identifier: "a", DataType: models.DataTypeText})))

	found, err := s.store.FindByIDForUpdate(s.ctx, "c")
	s.Require().NoError(err)
	found.Fields = nil

	again, err := s.store.FindByID(s.ctx, "c")
	s.Require().NoError(err)
	s.Len(again.Fields, 1)

	s.Run("constraints", func() {
		length := 10
		s.Require().NoError(s.store.Create(s.ctx, s.newCatalog("bounded",
			models.Field{Identifier: "a", DataType: models.DataTypeText, Length: &length})))

		found, err := s.store.FindByID(s.ctx, "bounded")
		s.Require().NoError(err)
		*found.Fields[0].Length = 1

		again, err := s.store.FindByID(s.ctx, "bounded")
		s.Require().NoError(err)
		s.Equal(10, *again.Fields[0].Length)
	})
}

// TestFieldOperations verifies insert, update and delete write back the catalog.
func (s *InMemoryCatalogStoreSuite) TestFieldOperations() {
	s.Require().NoError(s.store.Create(s.ctx, s.newCatalog("c", models.Field{Identifier: "a", DataType: models.DataTypeText})))
	c, _ := s.store.FindByID(s.ctx, "c")

	s.Run("insert", func() {
		field := models.Field{Identifier: "b", DataType: models.DataTypeDate}
		s.Require().NoError(c.AddField(field, "admin", time.Now()))
		s.Require().NoError(s.store.InsertField(s.ctx, c, field))
		s.ErrorIs(s.store.InsertField(s.ctx, c, field), sentinel.ErrAlreadyUsed)
	})

	s.Run("update unknown field", func() {
		s.ErrorIs(s.store.UpdateField(s.ctx, c, models.Field{Identifier: "zzz"}), sentinel.ErrNotFound)
	})

	s.Run("delete", func() {
		s.Require().NoError(c.RemoveField("a", "admin", time.Now()))
		s.Require().NoError(s.store.DeleteField(s.ctx, c, "a"))
		found, _ := s.store.FindByID(s.ctx, "c")
		_, ok := found.Field("a")
		s.False(ok)
	})
}

// TestListSortedAndDelete verifies listing order and deletion.
func (s *InMemoryCatalogStoreSuite) TestListSortedAndDelete() {
	s.Require().NoError(s.store.Create(s.ctx, s.newCatalog("b")))
	s.Require().NoError(s.store.Create(s.ctx, s.newCatalog("a")))

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("a", list[0].Identifier)

	s.Require().NoError(s.store.Delete(s.ctx, "a"))
	s.ErrorIs(s.store.Delete(s.ctx, "a"), sentinel.ErrNotFound)
}
