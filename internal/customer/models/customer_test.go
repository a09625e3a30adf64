package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customercore/internal/lifecycle"
	dErrors "customercore/pkg/domain-errors"
)

var now = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func person() Profile {
	return Profile{FirstName: " Ada ", LastName: "Lovelace"}
}

func TestNewCustomer(t *testing.T) {
	t.Run("starts pending with trimmed names", func(t *testing.T) {
		c, err := NewCustomer("c-1", TypePerson, person(), "maker", now)
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatePending, c.State)
		assert.Equal(t, "Ada", c.FirstName)
		assert.Equal(t, "maker", c.CreatedBy)
		assert.Equal(t, now, c.ModifiedAt)
	})

	tests := []struct {
		name    string
		id      string
		typ     Type
		profile Profile
	}{
		{"missing identifier", "", TypePerson, person()},
		{"unknown type", "c-1", Type("TRUST"), person()},
		{"person without last name", "c-1", TypePerson, Profile{FirstName: "Ada"}},
		{"business without name", "c-1", TypeBusiness, Profile{}},
		{"future birth date", "c-1", TypePerson, Profile{FirstName: "A", LastName: "B", DateOfBirth: ptr(now.Add(24 * time.Hour))}},
		{"bad contact kind", "c-1", TypeBusiness, Profile{BusinessName: "Acme", Contacts: []ContactDetail{{Kind: "FAX", Value: "1"}}}},
		{"two primaries", "c-1", TypeBusiness, Profile{BusinessName: "Acme", Contacts: []ContactDetail{
			{Kind: ContactEmail, Value: "a@acme.test", Primary: true},
			{Kind: ContactPhone, Value: "+100", Primary: true},
		}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCustomer(tc.id, tc.typ, tc.profile, "maker", now)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation), "got %v", err)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestApply(t *testing.T) {
	c, err := NewCustomer("c-1", TypePerson, person(), "maker", now)
	require.NoError(t, err)

	from, err := c.Apply(lifecycle.CommandActivate, "checker", now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatePending, from)
	assert.Equal(t, lifecycle.StateActive, c.State)
	assert.Equal(t, "checker", c.ModifiedBy)

	_, err = c.Apply(lifecycle.CommandReopen, "checker", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStateTransition))
	assert.Equal(t, lifecycle.StateActive, c.State)
}

func TestCloneAndReferences(t *testing.T) {
	c, err := NewCustomer("c-1", TypePerson, Profile{
		FirstName: "Ada", LastName: "Lovelace",
		Address:  &Address{Line1: "1 Analytical Way", City: "London", Country: "GB"},
		Contacts: []ContactDetail{{Kind: ContactEmail, Value: "ada@example.test"}},
	}, "maker", now)
	require.NoError(t, err)
	c.ReplaceValues([]Value{{Catalog: "loan-info", Field: "income", Value: "123.45"}}, "maker", now)

	clone := c.Clone()
	clone.Address.City = "Paris"
	clone.Values[0].Value = "0"
	assert.Equal(t, "London", c.Address.City)
	assert.Equal(t, "123.45", c.Values[0].Value)

	assert.True(t, c.ReferencesField("loan-info", "income"))
	assert.True(t, c.ReferencesField("loan-info", ""))
	assert.False(t, c.ReferencesField("loan-info", "employer"))
}

func TestNewIdentificationCard(t *testing.T) {
	card, err := NewIdentificationCard("c-1", " passport ", " X123 ", "", nil, "maker", now)
	require.NoError(t, err)
	assert.Equal(t, "PASSPORT", card.Kind)
	assert.Equal(t, "X123", card.Number)

	_, err = NewIdentificationCard("c-1", "PASSPORT", "", "", nil, "maker", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
