package handler

import (
	"time"

	"customercore/internal/schema/models"
)

type OptionResponse struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type FieldResponse struct {
	Identifier  string           `json:"identifier"`
	DataType    string           `json:"data_type"`
	Label       string           `json:"label,omitempty"`
	Hint        string           `json:"hint,omitempty"`
	Description string           `json:"description,omitempty"`
	Mandatory   bool             `json:"mandatory"`
	Length      *int             `json:"length,omitempty"`
	Precision   *int             `json:"precision,omitempty"`
	MinValue    *string          `json:"min_value,omitempty"`
	MaxValue    *string          `json:"max_value,omitempty"`
	Options     []OptionResponse `json:"options,omitempty"`
}

type CatalogResponse struct {
	Identifier  string          `json:"identifier"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Fields      []FieldResponse `json:"fields"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	ModifiedBy  string          `json:"modified_by"`
	ModifiedAt  time.Time       `json:"modified_at"`
}

type CatalogListResponse struct {
	Catalogs []CatalogResponse `json:"catalogs"`
}

func FromCatalog(c *models.Catalog) CatalogResponse {
	fields := make([]FieldResponse, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = fromField(f)
	}
	return CatalogResponse{
		Identifier:  c.Identifier,
		Name:        c.Name,
		Description: c.Description,
		Fields:      fields,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		ModifiedBy:  c.ModifiedBy,
		ModifiedAt:  c.ModifiedAt,
	}
}

func fromField(f models.Field) FieldResponse {
	resp := FieldResponse{
		Identifier:  f.Identifier,
		DataType:    string(f.DataType),
		Label:       f.Label,
		Hint:        f.Hint,
		Description: f.Description,
		Mandatory:   f.Mandatory,
		Length:      f.Length,
		Precision:   f.Precision,
	}
	if f.MinValue != nil {
		v := f.MinValue.String()
		resp.MinValue = &v
	}
	if f.MaxValue != nil {
		v := f.MaxValue.String()
		resp.MaxValue = &v
	}
	for _, o := range f.Options {
		resp.Options = append(resp.Options, OptionResponse{Label: o.Label, Value: o.Value})
	}
	return resp
}
