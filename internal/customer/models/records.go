package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"customercore/internal/lifecycle"
	dErrors "customercore/pkg/domain-errors"
)

// CommandRecord is one applied transition. Append-only.
type CommandRecord struct {
	ID         uuid.UUID
	CustomerID string
	Action     lifecycle.Command
	From       lifecycle.State
	To         lifecycle.State
	Comment    string
	Actor      string
	CreatedAt  time.Time
}

type IdentificationCard struct {
	ID         uuid.UUID
	CustomerID string
	// Kind is the document type, e.g. PASSPORT or NATIONAL_ID.
	Kind      string
	Number    string
	IssuedBy  string
	ExpiresOn *time.Time
	CreatedBy string
	CreatedAt time.Time
}

func NewIdentificationCard(customerID, kind, number, issuedBy string, expiresOn *time.Time, actor string, now time.Time) (*IdentificationCard, error) {
	kind = strings.ToUpper(strings.TrimSpace(kind))
	number = strings.TrimSpace(number)
	if kind == "" || number == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "identification kind and number required")
	}
	return &IdentificationCard{
		ID:         uuid.New(),
		CustomerID: customerID,
		Kind:       kind,
		Number:     number,
		IssuedBy:   strings.TrimSpace(issuedBy),
		ExpiresOn:  expiresOn,
		CreatedBy:  actor,
		CreatedAt:  now,
	}, nil
}

// StepTask is one outstanding task within a process step. Blocking tasks
// must be satisfied before the command goes through.
type StepTask struct {
	Definition string
	Name       string
	Type       string
	Blocking   bool
	InstanceID *uuid.UUID
}

// ProcessStep groups the outstanding tasks of one reachable command.
type ProcessStep struct {
	Command lifecycle.Command
	Tasks   []StepTask
}
