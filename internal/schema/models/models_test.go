package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "customercore/pkg/domain-errors"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestField_Validate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr bool
	}{
		{name: "text", field: Field{Identifier: "nick", DataType: DataTypeText, Length: intPtr(20)}},
		{name: "number with bounds", field: Field{Identifier: "income", DataType: DataTypeNumber, Length: intPtr(10), Precision: intPtr(2), MinValue: decPtr("0"), MaxValue: decPtr("99999999.99")}},
		{name: "selection", field: Field{Identifier: "segment", DataType: DataTypeSingleSelection, Options: []Option{{Label: "Retail", Value: 1}}}},
		{name: "missing identifier", field: Field{DataType: DataTypeText}, wantErr: true},
		{name: "unknown type", field: Field{Identifier: "x", DataType: "BLOB"}, wantErr: true},
		{name: "zero length", field: Field{Identifier: "x", DataType: DataTypeText, Length: intPtr(0)}, wantErr: true},
		{name: "precision on text", field: Field{Identifier: "x", DataType: DataTypeText, Precision: intPtr(2)}, wantErr: true},
		{name: "precision above length", field: Field{Identifier: "x", DataType: DataTypeNumber, Length: intPtr(2), Precision: intPtr(3)}, wantErr: true},
		{name: "inverted bounds", field: Field{Identifier: "x", DataType: DataTypeNumber, MinValue: decPtr("10"), MaxValue: decPtr("1")}, wantErr: true},
		{name: "bounds on date", field: Field{Identifier: "x", DataType: DataTypeDate, MinValue: decPtr("1")}, wantErr: true},
		{name: "selection without options", field: Field{Identifier: "x", DataType: DataTypeMultiSelection}, wantErr: true},
		{name: "duplicate option values", field: Field{Identifier: "x", DataType: DataTypeMultiSelection, Options: []Option{{Label: "a", Value: 1}, {Label: "b", Value: 1}}}, wantErr: true},
		{name: "options on text", field: Field{Identifier: "x", DataType: DataTypeText, Options: []Option{{Label: "a", Value: 1}}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestField_WithOptionsIsPureReplace(t *testing.T) {
	original := Field{
		Identifier: "segment",
		DataType:   DataTypeMultiSelection,
		Options:    []Option{{Label: "Retail", Value: 1}, {Label: "SME", Value: 2}},
	}
	replacement := []Option{{Label: "Corporate", Value: 3}}

	updated := original.WithOptions(replacement)

	assert.Equal(t, []Option{{Label: "Corporate", Value: 3}}, updated.Options)
	assert.Len(t, original.Options, 2, "original must be untouched")
	replacement[0].Label = "mutated"
	assert.Equal(t, "Corporate", updated.Options[0].Label, "result must not alias the input")
	assert.True(t, updated.HasOption("3"))
	assert.False(t, updated.HasOption("1"))
}

func TestNewCatalog(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("builds with fields in order", func(t *testing.T) {
		c, err := NewCatalog("loan-info", "Loan info", "", []Field{
			{Identifier: "income", DataType: DataTypeNumber},
			{Identifier: "employer", DataType: DataTypeText},
		}, "admin", now)
		require.NoError(t, err)
		assert.Equal(t, "income", c.Fields[0].Identifier)
		assert.Equal(t, "admin", c.CreatedBy)
		assert.Equal(t, now, c.ModifiedAt)
		_, ok := c.Field("employer")
		assert.True(t, ok)
	})

	t.Run("rejects duplicate fields", func(t *testing.T) {
		_, err := NewCatalog("c", "C", "", []Field{
			{Identifier: "a", DataType: DataTypeText},
			{Identifier: "a", DataType: DataTypeDate},
		}, "admin", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("requires identifier and name", func(t *testing.T) {
		_, err := NewCatalog("", "C", "", nil, "admin", now)
		assert.Error(t, err)
		_, err = NewCatalog("c", "", "", nil, "admin", now)
		assert.Error(t, err)
	})
}

func TestCatalog_FieldMutations(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Minute)
	c, err := NewCatalog("c", "C", "", []Field{{Identifier: "a", DataType: DataTypeText}}, "admin", now)
	require.NoError(t, err)

	require.NoError(t, c.AddField(Field{Identifier: "b", DataType: DataTypeDate}, "editor", later))
	assert.Equal(t, "editor", c.ModifiedBy)
	assert.Len(t, c.Fields, 2)

	require.NoError(t, c.ReplaceField(Field{Identifier: "a", DataType: DataTypeText, Length: intPtr(5)}, "editor", later))
	f, _ := c.Field("a")
	assert.Equal(t, 5, *f.Length)

	err = c.ReplaceField(Field{Identifier: "zzz", DataType: DataTypeText}, "editor", later)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	require.NoError(t, c.RemoveField("a", "editor", later))
	_, ok := c.Field("a")
	assert.False(t, ok)
	assert.True(t, dErrors.HasCode(c.RemoveField("a", "editor", later), dErrors.CodeNotFound))
}

func TestCatalog_CloneIsDeep(t *testing.T) {
	c, err := NewCatalog("c", "C", "", []Field{
		{Identifier: "s", DataType: DataTypeSingleSelection, Options: []Option{{Label: "x", Value: 1}}},
	}, "admin", time.Now())
	require.NoError(t, err)

	cp := c.Clone()
	cp.Fields[0].Options[0].Label = "changed"
	cp.Fields = append(cp.Fields, Field{Identifier: "t", DataType: DataTypeText})

	assert.Equal(t, "x", c.Fields[0].Options[0].Label)
	assert.Len(t, c.Fields, 1)
}

func TestCatalog_CloneCopiesConstraints(t *testing.T) {
	minValue, maxValue := decimal.Zero, decimal.NewFromInt(100)
	c, err := NewCatalog("c", "C", "", []Field{
		{Identifier: "n", DataType: DataTypeNumber, Length: intPtr(5), Precision: intPtr(2), MinValue: &minValue, MaxValue: &maxValue},
		{Identifier: "t", DataType: DataTypeText},
	}, "admin", time.Now())
	require.NoError(t, err)

	cp := c.Clone()
	*cp.Fields[0].Length = 50
	*cp.Fields[0].Precision = 0
	*cp.Fields[0].MinValue = decimal.NewFromInt(-1)
	*cp.Fields[0].MaxValue = decimal.NewFromInt(1)

	assert.Equal(t, 5, *c.Fields[0].Length)
	assert.Equal(t, 2, *c.Fields[0].Precision)
	assert.True(t, c.Fields[0].MinValue.Equal(decimal.Zero))
	assert.True(t, c.Fields[0].MaxValue.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, cp.Fields[1].Length)
}
