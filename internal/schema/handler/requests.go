package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"customercore/internal/schema/models"
	dErrors "customercore/pkg/domain-errors"
)

const maxFieldsPerCatalog = 200

// OptionRequest is one selectable option on the wire.
type OptionRequest struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// FieldRequest is a field definition as submitted by clients. Bounds are
// strings so the decimal literal survives JSON decoding unchanged.
type FieldRequest struct {
	Identifier  string          `json:"identifier"`
	DataType    string          `json:"data_type"`
	Label       string          `json:"label"`
	Hint        string          `json:"hint"`
	Description string          `json:"description"`
	Mandatory   bool            `json:"mandatory"`
	Length      *int            `json:"length,omitempty"`
	Precision   *int            `json:"precision,omitempty"`
	MinValue    *string         `json:"min_value,omitempty"`
	MaxValue    *string         `json:"max_value,omitempty"`
	Options     []OptionRequest `json:"options,omitempty"`
}

func (r *FieldRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
	r.DataType = strings.ToUpper(strings.TrimSpace(r.DataType))
	r.Label = strings.TrimSpace(r.Label)
}

func (r *FieldRequest) Validate() error {
	if r.Identifier == "" {
		return dErrors.New(dErrors.CodeValidation, "field identifier is required")
	}
	if r.DataType == "" {
		return dErrors.New(dErrors.CodeValidation, "data_type is required").WithDetail("field", r.Identifier)
	}
	for _, bound := range []*string{r.MinValue, r.MaxValue} {
		if bound == nil {
			continue
		}
		if _, err := decimal.NewFromString(strings.TrimSpace(*bound)); err != nil {
			return dErrors.New(dErrors.CodeValidation, "bounds must be decimal numbers").WithDetail("field", r.Identifier)
		}
	}
	return nil
}

// ToModel converts the request. Validate must have succeeded.
func (r *FieldRequest) ToModel() models.Field {
	f := models.Field{
		Identifier:  r.Identifier,
		DataType:    models.DataType(r.DataType),
		Label:       r.Label,
		Hint:        r.Hint,
		Description: r.Description,
		Mandatory:   r.Mandatory,
		Length:      r.Length,
		Precision:   r.Precision,
		MinValue:    parseBound(r.MinValue),
		MaxValue:    parseBound(r.MaxValue),
	}
	return f.WithOptions(toOptions(r.Options))
}

func parseBound(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &d
}

func toOptions(in []OptionRequest) []models.Option {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Option, len(in))
	for i, o := range in {
		out[i] = models.Option{Label: strings.TrimSpace(o.Label), Value: o.Value}
	}
	return out
}

// CreateCatalogRequest is the body for POST /catalogs.
type CreateCatalogRequest struct {
	Identifier  string         `json:"identifier"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Fields      []FieldRequest `json:"fields"`
}

func (r *CreateCatalogRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
	r.Name = strings.TrimSpace(r.Name)
	for i := range r.Fields {
		r.Fields[i].Normalize()
	}
}

func (r *CreateCatalogRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Fields) > maxFieldsPerCatalog {
		return dErrors.New(dErrors.CodeValidation, "too many fields")
	}
	if r.Identifier == "" {
		return dErrors.New(dErrors.CodeValidation, "identifier is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	for i := range r.Fields {
		if err := r.Fields[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FieldModels converts the submitted fields in declaration order.
func (r *CreateCatalogRequest) FieldModels() []models.Field {
	out := make([]models.Field, len(r.Fields))
	for i := range r.Fields {
		out[i] = r.Fields[i].ToModel()
	}
	return out
}

// ReplaceOptionsRequest is the body for PUT .../options. The set sent is the
// complete desired set.
type ReplaceOptionsRequest struct {
	Options []OptionRequest `json:"options"`
}

func (r *ReplaceOptionsRequest) Normalize() {}

func (r *ReplaceOptionsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}
