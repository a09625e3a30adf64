package validator

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"customercore/internal/schema/models"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/sentinel"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "expected validation error, got %v", err)
	reason, ok := dErrors.DetailOf(err, "reason")
	require.True(t, ok)
	return reason.(string)
}

func TestCheck_NumberLengthAndPrecision(t *testing.T) {
	field := models.Field{Identifier: "amount", DataType: models.DataTypeNumber, Length: intPtr(10), Precision: intPtr(2)}

	_, err := Check(field, "99999999.99")
	require.NoError(t, err)

	assert.Equal(t, ReasonTooPrecise, reasonOf(t, mustFail(Check(field, "99999999.999"))))
	assert.Equal(t, ReasonTooLong, reasonOf(t, mustFail(Check(field, "100000000.00"))))
}

func TestCheck_Number(t *testing.T) {
	income := models.Field{
		Identifier: "income",
		DataType:   models.DataTypeNumber,
		Length:     intPtr(10),
		Precision:  intPtr(2),
		MinValue:   decPtr("0"),
		MaxValue:   decPtr("99999999.99"),
	}

	t.Run("accepts in-range value", func(t *testing.T) {
		typed, err := Check(income, "123.45")
		require.NoError(t, err)
		num, ok := typed.(NumberValue)
		require.True(t, ok)
		assert.True(t, num.Number.Equal(decimal.RequireFromString("123.45")))
		assert.Equal(t, "123.45", typed.String())
	})

	t.Run("below minimum names the bound", func(t *testing.T) {
		err := mustFail(Check(income, "-5"))
		assert.Equal(t, ReasonOutOfRange, reasonOf(t, err))
		bound, _ := dErrors.DetailOf(err, "bound")
		assert.Equal(t, "min", bound)
	})

	t.Run("above maximum names the bound", func(t *testing.T) {
		err := mustFail(Check(income, "100000000"))
		assert.Equal(t, ReasonOutOfRange, reasonOf(t, err))
		bound, _ := dErrors.DetailOf(err, "bound")
		assert.Equal(t, "max", bound)
	})

	t.Run("not a number", func(t *testing.T) {
		for _, raw := range []string{"abc", "", "1e5", "1.2.3", "--5", "."} {
			assert.Equal(t, ReasonTypeMismatch, reasonOf(t, mustFail(Check(income, raw))), raw)
		}
	})

	t.Run("integer literal uses plain length", func(t *testing.T) {
		short := models.Field{Identifier: "n", DataType: models.DataTypeNumber, Length: intPtr(3)}
		_, err := Check(short, "999")
		require.NoError(t, err)
		assert.Equal(t, ReasonTooLong, reasonOf(t, mustFail(Check(short, "1000"))))
	})

	t.Run("precision without length", func(t *testing.T) {
		f := models.Field{Identifier: "rate", DataType: models.DataTypeNumber, Precision: intPtr(1)}
		_, err := Check(f, "12345.6")
		require.NoError(t, err)
		assert.Equal(t, ReasonTooPrecise, reasonOf(t, mustFail(Check(f, "1.25"))))
	})
}

func TestCheck_Text(t *testing.T) {
	f := models.Field{Identifier: "nick", DataType: models.DataTypeText, Length: intPtr(4)}

	_, err := Check(f, "Zoë!")
	require.NoError(t, err, "length counts characters, not bytes")
	assert.Equal(t, ReasonTooLong, reasonOf(t, mustFail(Check(f, "Zoë!!"))))

	unbounded := models.Field{Identifier: "note", DataType: models.DataTypeText}
	typed, err := Check(unbounded, "")
	require.NoError(t, err)
	assert.Equal(t, models.DataTypeText, typed.DataType())
}

func TestCheck_Date(t *testing.T) {
	f := models.Field{Identifier: "since", DataType: models.DataTypeDate}

	for _, raw := range []string{"2024-02-29", "2024-02-29T10:00:00Z", "2024-02-29T10:00:00.123+02:00", "2024-02-29T10:00:00",
		"2024-02-29T10:00", "2024-02-29T10:00Z", "2024-02-29T10:00+02:00"} {
		typed, err := Check(f, raw)
		require.NoError(t, err, raw)
		_, ok := typed.(DateValue)
		assert.True(t, ok)
	}
	for _, raw := range []string{"2023-02-29", "29/02/2024", "yesterday", "", "2024-02-29T10", "2024-02-29T25:00"} {
		assert.Equal(t, ReasonBadDate, reasonOf(t, mustFail(Check(f, raw))), raw)
	}
}

func TestCheck_SingleSelection(t *testing.T) {
	f := models.Field{Identifier: "segment", DataType: models.DataTypeSingleSelection, Options: []models.Option{{Label: "Retail", Value: 1}}}

	_, err := Check(f, "1")
	require.NoError(t, err)
	_, err = Check(f, "1,1")
	require.NoError(t, err, "duplicates collapse to one element")

	assert.Equal(t, ReasonSingleSelectionOnly, reasonOf(t, mustFail(Check(f, "1,2"))))
	assert.Equal(t, ReasonUnsupportedOption, reasonOf(t, mustFail(Check(f, "3"))))
	assert.Equal(t, ReasonSelectionRequired, reasonOf(t, mustFail(Check(f, ""))))
}

func TestCheck_MultiSelection(t *testing.T) {
	f := models.Field{
		Identifier: "products",
		DataType:   models.DataTypeMultiSelection,
		Options:    []models.Option{{Label: "Loan", Value: 1}, {Label: "Card", Value: 2}, {Label: "Deposit", Value: 3}},
	}

	typed, err := Check(f, "3, 1,3")
	require.NoError(t, err)
	sel := typed.(SelectionValue)
	assert.Equal(t, []string{"3", "1"}, sel.Tokens)
	assert.Equal(t, models.DataTypeMultiSelection, sel.DataType())

	_, err = Check(f, "")
	require.NoError(t, err, "empty set allowed when optional")

	f.Mandatory = true
	assert.Equal(t, ReasonSelectionRequired, reasonOf(t, mustFail(Check(f, ""))))
	assert.Equal(t, ReasonUnsupportedOption, reasonOf(t, mustFail(Check(f, "1,4"))))
}

func TestCheck_UnsupportedType(t *testing.T) {
	f := models.Field{Identifier: "blob", DataType: "BLOB"}
	assert.Equal(t, ReasonUnsupportedType, reasonOf(t, mustFail(Check(f, "x"))))
}

func mustFail(_ Typed, err error) error {
	return err
}

type stubCatalogs map[string]*models.Catalog

func (s stubCatalogs) FindByID(_ context.Context, id string) (*models.Catalog, error) {
	c, ok := s[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c, nil
}

type ValidatorSuite struct {
	suite.Suite
	validator *Validator
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	catalog, err := models.NewCatalog("loan-info", "Loan info", "", []models.Field{
		{Identifier: "income", DataType: models.DataTypeNumber, Length: intPtr(10), Precision: intPtr(2), MinValue: decPtr("0"), MaxValue: decPtr("99999999.99")},
		{Identifier: "since", DataType: models.DataTypeDate},
	}, "admin", time.Now())
	s.Require().NoError(err)
	s.validator = New(stubCatalogs{"loan-info": catalog})
}

// TestValidBatch verifies typed values are returned in submission order.
func (s *ValidatorSuite) TestValidBatch() {
	typed, err := s.validator.Validate(context.Background(), []Submission{
		{Catalog: "loan-info", Field: "since", Value: "2020-01-01"},
		{Catalog: "loan-info", Field: "income", Value: "123.45"},
	})
	s.Require().NoError(err)
	s.Require().Len(typed, 2)
	s.Equal(models.DataTypeDate, typed[0].DataType())
	s.Equal(models.DataTypeNumber, typed[1].DataType())
}

// TestUnknownReferences verifies unknown catalogs and fields are NotFound.
func (s *ValidatorSuite) TestUnknownReferences() {
	s.Run("catalog", func() {
		_, err := s.validator.Validate(context.Background(), []Submission{{Catalog: "nope", Field: "income", Value: "1"}})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		catalog, _ := dErrors.DetailOf(err, "catalog")
		s.Equal("nope", catalog)
	})

	s.Run("field", func() {
		_, err := s.validator.Validate(context.Background(), []Submission{{Catalog: "loan-info", Field: "bonus", Value: "1"}})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		field, _ := dErrors.DetailOf(err, "field")
		s.Equal("bonus", field)
	})
}

// TestFailureIdentifiesField verifies a rejected value names its catalog and field.
func (s *ValidatorSuite) TestFailureIdentifiesField() {
	_, err := s.validator.Validate(context.Background(), []Submission{
		{Catalog: "loan-info", Field: "since", Value: "2020-01-01"},
		{Catalog: "loan-info", Field: "income", Value: "-5"},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	catalog, _ := dErrors.DetailOf(err, "catalog")
	field, _ := dErrors.DetailOf(err, "field")
	reason, _ := dErrors.DetailOf(err, "reason")
	s.Equal("loan-info", catalog)
	s.Equal("income", field)
	s.Equal(ReasonOutOfRange, reason)
}

// TestDuplicateField verifies the same field cannot appear twice in one batch.
func (s *ValidatorSuite) TestDuplicateField() {
	_, err := s.validator.Validate(context.Background(), []Submission{
		{Catalog: "loan-info", Field: "income", Value: "1"},
		{Catalog: "loan-info", Field: "income", Value: "2"},
	})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	reason, _ := dErrors.DetailOf(err, "reason")
	s.Equal(ReasonDuplicateField, reason)
}
