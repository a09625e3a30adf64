// Package models defines the customer aggregate and the records hanging off
// it: custom values, identification cards and the command audit trail.
package models

import (
	"slices"
	"strings"
	"time"

	"customercore/internal/lifecycle"
	dErrors "customercore/pkg/domain-errors"
)

// Type distinguishes natural persons from businesses.
type Type string

const (
	TypePerson   Type = "PERSON"
	TypeBusiness Type = "BUSINESS"
)

func (t Type) IsValid() bool {
	return t == TypePerson || t == TypeBusiness
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Region     string `json:"region,omitempty"`
	Country    string `json:"country"`
}

// ContactKind is the channel of a contact detail.
type ContactKind string

const (
	ContactEmail  ContactKind = "EMAIL"
	ContactPhone  ContactKind = "PHONE"
	ContactMobile ContactKind = "MOBILE"
)

func (k ContactKind) IsValid() bool {
	switch k {
	case ContactEmail, ContactPhone, ContactMobile:
		return true
	}
	return false
}

type ContactDetail struct {
	Kind    ContactKind `json:"kind"`
	Value   string      `json:"value"`
	Primary bool        `json:"primary"`
}

// Value is one submitted custom attribute. The literal is kept exactly as
// submitted.
type Value struct {
	Catalog string
	Field   string
	Value   string
}

// Profile is the editable identity data of a customer.
type Profile struct {
	FirstName    string
	MiddleName   string
	LastName     string
	BusinessName string
	DateOfBirth  *time.Time
	Address      *Address
	Contacts     []ContactDetail
}

type Customer struct {
	Identifier string
	Type       Type
	Profile
	Values []Value
	State  lifecycle.State

	CreatedBy  string
	CreatedAt  time.Time
	ModifiedBy string
	ModifiedAt time.Time
}

// NewCustomer builds a PENDING customer.
func NewCustomer(identifier string, customerType Type, profile Profile, actor string, now time.Time) (*Customer, error) {
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer identifier required")
	}
	if !customerType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unsupported customer type").
			WithDetail("customer_type", string(customerType))
	}
	c := &Customer{
		Identifier: identifier,
		Type:       customerType,
		State:      lifecycle.StatePending,
		CreatedBy:  actor,
		CreatedAt:  now,
	}
	if err := c.UpdateProfile(profile, actor, now); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateProfile replaces the identity data. The customer type never changes.
func (c *Customer) UpdateProfile(p Profile, actor string, now time.Time) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.MiddleName = strings.TrimSpace(p.MiddleName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.BusinessName = strings.TrimSpace(p.BusinessName)

	switch c.Type {
	case TypePerson:
		if p.FirstName == "" || p.LastName == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "first and last name required for a person")
		}
	case TypeBusiness:
		if p.BusinessName == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "business name required for a business")
		}
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(now) {
		return dErrors.New(dErrors.CodeInvariantViolation, "date of birth in the future")
	}
	primaries := 0
	for _, cd := range p.Contacts {
		if !cd.Kind.IsValid() {
			return dErrors.New(dErrors.CodeInvariantViolation, "unsupported contact kind").
				WithDetail("kind", string(cd.Kind))
		}
		if strings.TrimSpace(cd.Value) == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "contact value required").
				WithDetail("kind", string(cd.Kind))
		}
		if cd.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return dErrors.New(dErrors.CodeInvariantViolation, "at most one primary contact")
	}
	p.Contacts = slices.Clone(p.Contacts)
	c.Profile = p
	c.touch(actor, now)
	return nil
}

// ReplaceValues swaps the full custom value set. Values must already be
// validated against the schema.
func (c *Customer) ReplaceValues(values []Value, actor string, now time.Time) {
	c.Values = slices.Clone(values)
	c.touch(actor, now)
}

// Apply moves the customer along the transition table and returns the state
// it left. Gating is the caller's concern.
func (c *Customer) Apply(cmd lifecycle.Command, actor string, now time.Time) (lifecycle.State, error) {
	next, err := lifecycle.Next(c.State, cmd)
	if err != nil {
		return "", err
	}
	from := c.State
	c.State = next
	c.touch(actor, now)
	return from, nil
}

func (c *Customer) touch(actor string, now time.Time) {
	c.ModifiedBy = actor
	c.ModifiedAt = now
}

// Clone returns a deep copy.
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.Contacts = slices.Clone(c.Contacts)
	cp.Values = slices.Clone(c.Values)
	if c.DateOfBirth != nil {
		dob := *c.DateOfBirth
		cp.DateOfBirth = &dob
	}
	if c.Address != nil {
		addr := *c.Address
		cp.Address = &addr
	}
	return &cp
}

// ReferencesField reports whether any value points at (catalog, field); an
// empty field matches every field of the catalog.
func (c *Customer) ReferencesField(catalogID, fieldID string) bool {
	return slices.ContainsFunc(c.Values, func(v Value) bool {
		return v.Catalog == catalogID && (fieldID == "" || v.Field == fieldID)
	})
}
