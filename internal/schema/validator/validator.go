// Package validator checks submitted custom values against the field
// definitions held by the schema registry.
package validator

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"customercore/internal/schema/models"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/sentinel"
)

// Validation failure reasons, carried in the "reason" detail.
const (
	ReasonTypeMismatch        = "type_mismatch"
	ReasonOutOfRange          = "out_of_range"
	ReasonTooLong             = "too_long"
	ReasonTooPrecise          = "too_precise"
	ReasonBadDate             = "bad_date"
	ReasonBadSelection        = "bad_selection"
	ReasonSingleSelectionOnly = "single_selection_only"
	ReasonUnsupportedOption   = "unsupported_option"
	ReasonUnsupportedType     = "unsupported_type"
	ReasonSelectionRequired   = "selection_required"
	ReasonDuplicateField      = "duplicate_field"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// CatalogReader resolves catalogs by identifier, returning sentinel.ErrNotFound
// for unknown ones.
type CatalogReader interface {
	FindByID(ctx context.Context, identifier string) (*models.Catalog, error)
}

// Submission is one (catalog, field, value) triple as received on the wire.
type Submission struct {
	Catalog string
	Field   string
	Value   string
}

type Validator struct {
	catalogs CatalogReader
}

func New(catalogs CatalogReader) *Validator {
	return &Validator{catalogs: catalogs}
}

// Validate checks every submission and returns the typed values in input
// order. The first failure aborts the batch; callers reject the whole mutation.
func (v *Validator) Validate(ctx context.Context, subs []Submission) ([]Typed, error) {
	ctx, span := otel.Tracer("customercore/schema/validator").Start(ctx, "validator.Validate")
	defer span.End()
	span.SetAttributes(attribute.Int("values.count", len(subs)))

	catalogs := make(map[string]*models.Catalog)
	seen := make(map[[2]string]struct{}, len(subs))
	out := make([]Typed, 0, len(subs))

	for _, sub := range subs {
		key := [2]string{sub.Catalog, sub.Field}
		if _, dup := seen[key]; dup {
			return nil, dErrors.New(dErrors.CodeValidation, "field submitted more than once").
				WithDetail("catalog", sub.Catalog).
				WithDetail("field", sub.Field).
				WithDetail("reason", ReasonDuplicateField)
		}
		seen[key] = struct{}{}

		catalog, ok := catalogs[sub.Catalog]
		if !ok {
			c, err := v.catalogs.FindByID(ctx, sub.Catalog)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return nil, dErrors.New(dErrors.CodeNotFound, "catalog not found").WithDetail("catalog", sub.Catalog)
				}
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load catalog")
			}
			catalogs[sub.Catalog] = c
			catalog = c
		}

		field, ok := catalog.Field(sub.Field)
		if !ok {
			return nil, dErrors.New(dErrors.CodeNotFound, "field not found").
				WithDetail("catalog", sub.Catalog).
				WithDetail("field", sub.Field)
		}

		typed, err := Check(field, sub.Value)
		if err != nil {
			span.SetAttributes(attribute.String("rejected.field", sub.Catalog+"."+sub.Field))
			var de *dErrors.Error
			if errors.As(err, &de) {
				return nil, de.WithDetail("catalog", sub.Catalog)
			}
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

// Check validates one raw value against field.
func Check(field models.Field, raw string) (Typed, error) {
	switch field.DataType {
	case models.DataTypeText:
		return checkText(field, raw)
	case models.DataTypeNumber:
		return checkNumber(field, raw)
	case models.DataTypeDate:
		return checkDate(field, raw)
	case models.DataTypeSingleSelection:
		return checkSingle(field, raw)
	case models.DataTypeMultiSelection:
		return checkMulti(field, raw)
	default:
		return nil, reject(field, ReasonUnsupportedType, "unsupported data type "+string(field.DataType))
	}
}

func reject(field models.Field, reason, msg string) *dErrors.Error {
	return dErrors.New(dErrors.CodeValidation, msg).
		WithDetail("field", field.Identifier).
		WithDetail("reason", reason)
}

func checkText(field models.Field, raw string) (Typed, error) {
	if err := checkLength(field, raw); err != nil {
		return nil, err
	}
	return TextValue{Text: raw}, nil
}

func checkLength(field models.Field, raw string) error {
	if field.Length != nil && utf8.RuneCountInString(raw) > *field.Length {
		return reject(field, ReasonTooLong, "value exceeds maximum length").WithDetail("length", *field.Length)
	}
	return nil
}

// checkNumber works on the printed literal so that length and precision are
// judged on what was submitted, not on a rounded float.
func checkNumber(field models.Field, raw string) (Typed, error) {
	literal := strings.TrimSpace(raw)
	if !isPlainDecimal(literal) {
		return nil, reject(field, ReasonTypeMismatch, "not a number")
	}
	n, err := decimal.NewFromString(literal)
	if err != nil {
		return nil, reject(field, ReasonTypeMismatch, "not a number")
	}

	if field.MinValue != nil && n.LessThan(*field.MinValue) {
		return nil, reject(field, ReasonOutOfRange, "value is below minimum "+field.MinValue.String()).
			WithDetail("bound", "min")
	}
	if field.MaxValue != nil && n.GreaterThan(*field.MaxValue) {
		return nil, reject(field, ReasonOutOfRange, "value is above maximum "+field.MaxValue.String()).
			WithDetail("bound", "max")
	}

	intPart, fracPart, hasPoint := strings.Cut(literal, ".")
	if hasPoint {
		if field.Precision != nil && countDigits(fracPart) > *field.Precision {
			return nil, reject(field, ReasonTooPrecise, "too many fractional digits").
				WithDetail("precision", *field.Precision)
		}
		if field.Length != nil && countDigits(intPart)+countDigits(fracPart) > *field.Length {
			return nil, reject(field, ReasonTooLong, "too many digits").WithDetail("length", *field.Length)
		}
	} else if err := checkLength(field, literal); err != nil {
		return nil, err
	}
	return NumberValue{Number: n, Literal: raw}, nil
}

// isPlainDecimal accepts an optional sign, digits and at most one decimal
// point. Exponents and other notations are rejected.
func isPlainDecimal(s string) bool {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func checkDate(field models.Field, raw string) (Typed, error) {
	literal := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, literal); err == nil {
			return DateValue{Time: t, Literal: raw}, nil
		}
	}
	return nil, reject(field, ReasonBadDate, "not an ISO-8601 date")
}

func checkSingle(field models.Field, raw string) (Typed, error) {
	tokens := splitSelection(raw)
	switch {
	case len(tokens) == 0:
		return nil, reject(field, ReasonSelectionRequired, "exactly one option must be selected")
	case len(tokens) > 1:
		return nil, reject(field, ReasonSingleSelectionOnly, "only one option may be selected")
	}
	if !field.HasOption(tokens[0]) {
		return nil, reject(field, ReasonUnsupportedOption, "unsupported option").WithDetail("option", tokens[0])
	}
	return SelectionValue{Tokens: tokens, Literal: raw}, nil
}

func checkMulti(field models.Field, raw string) (Typed, error) {
	tokens := splitSelection(raw)
	if len(tokens) == 0 && field.Mandatory {
		return nil, reject(field, ReasonSelectionRequired, "at least one option must be selected")
	}
	for _, token := range tokens {
		if !field.HasOption(token) {
			return nil, reject(field, ReasonUnsupportedOption, "unsupported option").WithDetail("option", token)
		}
	}
	return SelectionValue{Tokens: tokens, Multi: true, Literal: raw}, nil
}
