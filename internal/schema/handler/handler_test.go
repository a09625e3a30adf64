package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"customercore/internal/schema/service"
	"customercore/internal/schema/store/memory"
	dErrors "customercore/pkg/domain-errors"
	txcontext "customercore/pkg/platform/tx"
	"customercore/pkg/testutil"
)

type fakeUsage struct {
	fields map[string]bool
}

func (f *fakeUsage) FieldInUse(_ context.Context, catalogID, fieldID string) (bool, error) {
	return f.fields[catalogID+"/"+fieldID], nil
}

func (f *fakeUsage) CatalogInUse(_ context.Context, catalogID string) (bool, error) {
	for key, used := range f.fields {
		if used && strings.HasPrefix(key, catalogID+"/") {
			return true, nil
		}
	}
	return false, nil
}

type SchemaHandlerSuite struct {
	suite.Suite
	usage  *fakeUsage
	router http.Handler
}

func TestSchemaHandlerSuite(t *testing.T) {
	suite.Run(t, new(SchemaHandlerSuite))
}

func (s *SchemaHandlerSuite) SetupTest() {
	s.usage = &fakeUsage{fields: map[string]bool{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(memory.New(), s.usage, txcontext.NewMemoryRunner(), service.WithLogger(logger))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	s.router = r
}

func (s *SchemaHandlerSuite) createLoanInfo() {
	body := map[string]any{
		"identifier": "loan-info",
		"name":       "Loan information",
		"fields": []map[string]any{
			{
				"identifier": "income",
				"data_type":  "number",
				"length":     10,
				"precision":  2,
				"min_value":  "0",
				"max_value":  "99999999.99",
			},
			{
				"identifier": "purpose",
				"data_type":  "SINGLE_SELECTION",
				"options":    []map[string]any{{"label": "Home", "value": 1}},
			},
		},
	}
	req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs", body), "schema-admin")
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
}

// TestCreateAndGetCatalog verifies creation and the response shape.
func (s *SchemaHandlerSuite) TestCreateAndGetCatalog() {
	s.createLoanInfo()

	req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodGet, "/catalogs/loan-info", nil), "schema-admin")
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[CatalogResponse](s.T(), rr)
	s.Equal("loan-info", resp.Identifier)
	s.Require().Len(resp.Fields, 2)
	s.Equal("NUMBER", resp.Fields[0].DataType)
	s.Require().NotNil(resp.Fields[0].MaxValue)
	s.Equal("99999999.99", *resp.Fields[0].MaxValue)
	s.Equal("schema-admin", resp.CreatedBy)

	list := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/catalogs", nil))
	s.Require().Equal(http.StatusOK, list.Code)
	s.Len(testutil.UnmarshalResponse[CatalogListResponse](s.T(), list).Catalogs, 1)
}

// TestCreateCatalogRejections covers malformed and invalid bodies.
func (s *SchemaHandlerSuite) TestCreateCatalogRejections() {
	s.Run("unknown json field", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs",
			map[string]any{"identifier": "x", "name": "x", "colour": "red"}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("missing name", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs",
			map[string]any{"identifier": "x"}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, string(dErrors.CodeValidation))
	})

	s.Run("bad bound literal", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs", map[string]any{
			"identifier": "x",
			"name":       "x",
			"fields":     []map[string]any{{"identifier": "n", "data_type": "NUMBER", "min_value": "zero"}},
		}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, string(dErrors.CodeValidation))
		s.Equal("n", resp.Details["field"])
	})

	s.Run("no actor", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs",
			map[string]any{"identifier": "x", "name": "x"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("duplicate identifier", func() {
		s.createLoanInfo()
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs",
			map[string]any{"identifier": "loan-info", "name": "again"}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))
	})
}

// TestDeleteFieldInUse verifies a referenced field cannot be removed until freed.
func (s *SchemaHandlerSuite) TestDeleteFieldInUse() {
	s.createLoanInfo()
	s.usage.fields["loan-info/income"] = true

	req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodDelete, "/catalogs/loan-info/fields/income", nil), "schema-admin")
	rr := testutil.DoRequest(s.router, req)
	resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))
	s.Equal("income", resp.Details["field"])

	req = testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodDelete, "/catalogs/loan-info", nil), "schema-admin")
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))

	s.usage.fields["loan-info/income"] = false
	req = testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodDelete, "/catalogs/loan-info/fields/income", nil), "schema-admin")
	rr = testutil.DoRequest(s.router, req)
	s.Equal(http.StatusNoContent, rr.Code)
}

// TestFieldEdits covers add, update and option replacement.
func (s *SchemaHandlerSuite) TestFieldEdits() {
	s.createLoanInfo()

	s.Run("add field", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogs/loan-info/fields",
			map[string]any{"identifier": "employer", "data_type": "TEXT", "length": 80}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
		s.Len(testutil.UnmarshalResponse[CatalogResponse](s.T(), rr).Fields, 3)
	})

	s.Run("update uses path identifier", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPut, "/catalogs/loan-info/fields/employer",
			map[string]any{"identifier": "ignored", "data_type": "TEXT", "length": 120}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		resp := testutil.UnmarshalResponse[CatalogResponse](s.T(), rr)
		s.Equal("employer", resp.Fields[2].Identifier)
		s.Equal(120, *resp.Fields[2].Length)
	})

	s.Run("replace options", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPut, "/catalogs/loan-info/fields/purpose/options",
			map[string]any{"options": []map[string]any{{"label": "Car", "value": 2}, {"label": "Boat", "value": 3}}}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		resp := testutil.UnmarshalResponse[CatalogResponse](s.T(), rr)
		s.Equal([]OptionResponse{{Label: "Car", Value: 2}, {Label: "Boat", Value: 3}}, resp.Fields[1].Options)
	})

	s.Run("unknown field", func() {
		req := testutil.WithActor(testutil.NewJSONRequest(s.T(), http.MethodPut, "/catalogs/loan-info/fields/nope/options",
			map[string]any{"options": []map[string]any{}}), "schema-admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}
