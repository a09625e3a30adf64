package models

import (
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	dErrors "customercore/pkg/domain-errors"
)

// DataType is the declared type of a custom field. The wire tokens are the
// uppercase constants below.
type DataType string

const (
	DataTypeText            DataType = "TEXT"
	DataTypeNumber          DataType = "NUMBER"
	DataTypeDate            DataType = "DATE"
	DataTypeSingleSelection DataType = "SINGLE_SELECTION"
	DataTypeMultiSelection  DataType = "MULTI_SELECTION"
)

func (t DataType) IsValid() bool {
	switch t {
	case DataTypeText, DataTypeNumber, DataTypeDate, DataTypeSingleSelection, DataTypeMultiSelection:
		return true
	}
	return false
}

func (t DataType) IsSelection() bool {
	return t == DataTypeSingleSelection || t == DataTypeMultiSelection
}

// Option is one selectable entry of a selection field. Value is the token
// stored in a customer value when the option is chosen.
type Option struct {
	Label string
	Value int
}

// Token is the string form compared against submitted selections.
func (o Option) Token() string {
	return strconv.Itoa(o.Value)
}

// Field is one typed custom attribute definition within a catalog.
type Field struct {
	Identifier  string
	DataType    DataType
	Label       string
	Hint        string
	Description string
	Mandatory   bool

	// Length is the max character count, or the combined digit count for NUMBER.
	Length *int
	// Precision is the max fractional digit count for NUMBER.
	Precision *int
	MinValue  *decimal.Decimal
	MaxValue  *decimal.Decimal

	Options []Option
}

// WithOptions returns a copy of f whose option set is exactly opts.
func (f Field) WithOptions(opts []Option) Field {
	f.Options = slices.Clone(opts)
	return f
}

// HasOption reports whether token matches one of the option values.
func (f Field) HasOption(token string) bool {
	for _, o := range f.Options {
		if o.Token() == token {
			return true
		}
	}
	return false
}

// Validate checks the definition's own consistency. It does not look at any
// submitted values.
func (f Field) Validate() error {
	if f.Identifier == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "field identifier required")
	}
	if !f.DataType.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unsupported data type").
			WithDetail("field", f.Identifier).
			WithDetail("data_type", string(f.DataType))
	}
	if f.Length != nil && *f.Length <= 0 {
		return fieldViolation(f, "length must be positive")
	}
	if f.Precision != nil {
		if f.DataType != DataTypeNumber {
			return fieldViolation(f, "precision applies to NUMBER fields only")
		}
		if *f.Precision < 0 {
			return fieldViolation(f, "precision must not be negative")
		}
		if f.Length != nil && *f.Precision > *f.Length {
			return fieldViolation(f, "precision must not exceed length")
		}
	}
	if f.MinValue != nil || f.MaxValue != nil {
		if f.DataType != DataTypeNumber {
			return fieldViolation(f, "bounds apply to NUMBER fields only")
		}
		if f.MinValue != nil && f.MaxValue != nil && f.MinValue.GreaterThan(*f.MaxValue) {
			return fieldViolation(f, "minValue must not exceed maxValue")
		}
	}

	if f.DataType.IsSelection() {
		if len(f.Options) == 0 {
			return fieldViolation(f, "selection fields need at least one option")
		}
		seen := make(map[int]struct{}, len(f.Options))
		for _, o := range f.Options {
			if _, dup := seen[o.Value]; dup {
				return fieldViolation(f, "option values must be unique").WithDetail("option", o.Value)
			}
			seen[o.Value] = struct{}{}
		}
	} else if len(f.Options) > 0 {
		return fieldViolation(f, "options apply to selection fields only")
	}
	return nil
}

func fieldViolation(f Field, msg string) *dErrors.Error {
	return dErrors.New(dErrors.CodeInvariantViolation, msg).WithDetail("field", f.Identifier)
}

// Catalog groups custom fields. Field order is preserved as declared.
type Catalog struct {
	Identifier  string
	Name        string
	Description string
	Fields      []Field

	CreatedBy  string
	CreatedAt  time.Time
	ModifiedBy string
	ModifiedAt time.Time
}

// NewCatalog builds a catalog with its fields as one unit.
func NewCatalog(identifier, name, description string, fields []Field, actor string, now time.Time) (*Catalog, error) {
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "catalog identifier required")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "catalog name required")
	}
	c := &Catalog{
		Identifier:  identifier,
		Name:        name,
		Description: description,
		CreatedBy:   actor,
		CreatedAt:   now,
		ModifiedBy:  actor,
		ModifiedAt:  now,
	}
	for _, f := range fields {
		if err := c.addField(f); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Field looks up a field by identifier.
func (c *Catalog) Field(identifier string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Identifier == identifier {
			return f, true
		}
	}
	return Field{}, false
}

func (c *Catalog) addField(f Field) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, exists := c.Field(f.Identifier); exists {
		return dErrors.New(dErrors.CodeInvariantViolation, "duplicate field identifier").
			WithDetail("field", f.Identifier)
	}
	c.Fields = append(c.Fields, f)
	return nil
}

// AddField appends a new field and stamps the modification.
func (c *Catalog) AddField(f Field, actor string, now time.Time) error {
	if err := c.addField(f); err != nil {
		return err
	}
	c.touch(actor, now)
	return nil
}

// ReplaceField swaps the field with the same identifier in place.
func (c *Catalog) ReplaceField(f Field, actor string, now time.Time) error {
	if err := f.Validate(); err != nil {
		return err
	}
	idx := slices.IndexFunc(c.Fields, func(existing Field) bool { return existing.Identifier == f.Identifier })
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "field not found").WithDetail("field", f.Identifier)
	}
	c.Fields[idx] = f
	c.touch(actor, now)
	return nil
}

// RemoveField drops a field by identifier.
func (c *Catalog) RemoveField(identifier string, actor string, now time.Time) error {
	idx := slices.IndexFunc(c.Fields, func(existing Field) bool { return existing.Identifier == identifier })
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "field not found").WithDetail("field", identifier)
	}
	c.Fields = slices.Delete(c.Fields, idx, idx+1)
	c.touch(actor, now)
	return nil
}

func (c *Catalog) touch(actor string, now time.Time) {
	c.ModifiedBy = actor
	c.ModifiedAt = now
}

// Clone returns a deep copy so stores can hand out values callers may mutate.
func (c *Catalog) Clone() *Catalog {
	cp := *c
	cp.Fields = make([]Field, len(c.Fields))
	for i, f := range c.Fields {
		cp.Fields[i] = f.clone()
	}
	return &cp
}

func (f Field) clone() Field {
	cp := f.WithOptions(f.Options)
	cp.Length = clonePtr(f.Length)
	cp.Precision = clonePtr(f.Precision)
	cp.MinValue = clonePtr(f.MinValue)
	cp.MaxValue = clonePtr(f.MaxValue)
	return cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
