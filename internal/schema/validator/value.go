package validator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"customercore/internal/schema/models"
)

// Typed is the checked form of a submitted value. The wire form stays a plain
// string; String returns it unchanged.
type Typed interface {
	DataType() models.DataType
	String() string
	typed()
}

type TextValue struct {
	Text string
}

func (v TextValue) DataType() models.DataType { return models.DataTypeText }
func (v TextValue) String() string            { return v.Text }
func (TextValue) typed()                      {}

type NumberValue struct {
	Number  decimal.Decimal
	Literal string
}

func (v NumberValue) DataType() models.DataType { return models.DataTypeNumber }
func (v NumberValue) String() string            { return v.Literal }
func (NumberValue) typed()                      {}

type DateValue struct {
	Time    time.Time
	Literal string
}

func (v DateValue) DataType() models.DataType { return models.DataTypeDate }
func (v DateValue) String() string            { return v.Literal }
func (DateValue) typed()                      {}

// SelectionValue holds the distinct option tokens in submission order.
type SelectionValue struct {
	Tokens  []string
	Multi   bool
	Literal string
}

func (v SelectionValue) DataType() models.DataType {
	if v.Multi {
		return models.DataTypeMultiSelection
	}
	return models.DataTypeSingleSelection
}
func (v SelectionValue) String() string { return v.Literal }
func (SelectionValue) typed()           {}

// splitSelection splits on commas, trims blanks and collapses duplicates.
func splitSelection(raw string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}
