// Package models defines task definitions, the per-customer task instances
// recorded against them, and the rules deciding when an instance satisfies
// its definition.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"customercore/internal/lifecycle"
	dErrors "customercore/pkg/domain-errors"
)

// TaskType selects the satisfaction rule of a definition.
type TaskType string

const (
	TaskTypeIDCard   TaskType = "ID_CARD"
	TaskTypeFourEyes TaskType = "FOUR_EYES"
	TaskTypeCustom   TaskType = "CUSTOM"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeIDCard, TaskTypeFourEyes, TaskTypeCustom:
		return true
	}
	return false
}

// Definition is a reusable gating rule.
type Definition struct {
	Identifier  string
	Type        TaskType
	Name        string
	Description string
	Mandatory   bool
	// Predefined marks the rule as currently enforced.
	Predefined bool
	Commands   []lifecycle.Command

	CreatedBy  string
	CreatedAt  time.Time
	ModifiedBy string
	ModifiedAt time.Time
}

// DefinitionSpec carries the editable attributes of a definition.
type DefinitionSpec struct {
	Name        string
	Description string
	Mandatory   bool
	Predefined  bool
	Commands    []lifecycle.Command
}

func NewDefinition(identifier string, taskType TaskType, spec DefinitionSpec, actor string, now time.Time) (*Definition, error) {
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "task identifier required")
	}
	if !taskType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unsupported task type").
			WithDetail("task_type", string(taskType))
	}
	d := &Definition{
		Identifier: identifier,
		Type:       taskType,
		CreatedBy:  actor,
		CreatedAt:  now,
	}
	if err := d.Apply(spec, actor, now); err != nil {
		return nil, err
	}
	return d, nil
}

// Apply replaces the editable attributes. Type and identifier never change.
func (d *Definition) Apply(spec DefinitionSpec, actor string, now time.Time) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "task name required").WithDetail("task", d.Identifier)
	}
	commands, err := normalizeCommands(spec.Commands)
	if err != nil {
		return err
	}
	// Only CUSTOM tasks may be purely informational.
	if len(commands) == 0 && d.Type != TaskTypeCustom {
		return dErrors.New(dErrors.CodeInvariantViolation, "task must gate at least one command").
			WithDetail("task", d.Identifier)
	}
	d.Name = name
	d.Description = spec.Description
	d.Mandatory = spec.Mandatory
	d.Predefined = spec.Predefined
	d.Commands = commands
	d.ModifiedBy = actor
	d.ModifiedAt = now
	return nil
}

func normalizeCommands(in []lifecycle.Command) ([]lifecycle.Command, error) {
	out := make([]lifecycle.Command, 0, len(in))
	for _, c := range in {
		if !c.Gateable() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "command cannot be gated by a task").
				WithDetail("command", string(c))
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Gates reports whether the definition lists cmd.
func (d *Definition) Gates(cmd lifecycle.Command) bool {
	return slices.Contains(d.Commands, cmd)
}

// Enforced reports whether the definition blocks the commands it gates.
func (d *Definition) Enforced() bool {
	return d.Predefined && d.Mandatory
}

func (d *Definition) Clone() *Definition {
	cp := *d
	cp.Commands = slices.Clone(d.Commands)
	return &cp
}

// Instance records whether one customer satisfied one definition. An empty
// ExecutedBy means not yet executed.
type Instance struct {
	ID           uuid.UUID
	CustomerID   string
	DefinitionID string
	Comment      string
	ExecutedOn   *time.Time
	ExecutedBy   string
	CreatedAt    time.Time
}

func NewInstance(customerID, definitionID string, now time.Time) *Instance {
	return &Instance{
		ID:           uuid.New(),
		CustomerID:   customerID,
		DefinitionID: definitionID,
		CreatedAt:    now,
	}
}

func (i *Instance) Executed() bool {
	return i != nil && i.ExecutedBy != ""
}

// MarkExecuted stamps the executor. Re-execution re-stamps.
func (i *Instance) MarkExecuted(actor, comment string, now time.Time) {
	i.ExecutedBy = actor
	i.ExecutedOn = &now
	i.Comment = comment
}

func (i *Instance) Clone() *Instance {
	cp := *i
	if i.ExecutedOn != nil {
		on := *i.ExecutedOn
		cp.ExecutedOn = &on
	}
	return &cp
}

// Evidence is what the satisfaction rules need to know about the command
// being attempted and the customer it targets.
type Evidence struct {
	// CommandActor issues the lifecycle command being gated.
	CommandActor          string
	HasIdentificationCard bool
}

// Satisfied applies the definition's type rule to inst. A nil instance is an
// instance that has not been provisioned yet and is never satisfied.
func Satisfied(def *Definition, inst *Instance, ev Evidence) bool {
	if !inst.Executed() {
		return false
	}
	switch def.Type {
	case TaskTypeIDCard:
		return ev.HasIdentificationCard
	case TaskTypeFourEyes:
		return inst.ExecutedBy != ev.CommandActor
	default:
		return true
	}
}

// Execution describes an attempt to execute a task for a customer.
type Execution struct {
	Actor string
	// Requester created the customer record the task belongs to.
	Requester             string
	HasIdentificationCard bool
}

// CheckExecution refuses executions that could never satisfy the definition.
func CheckExecution(def *Definition, ex Execution) error {
	switch def.Type {
	case TaskTypeFourEyes:
		if ex.Actor == ex.Requester {
			return dErrors.New(dErrors.CodeTaskExecution, "four-eyes task must be executed by a different actor").
				WithDetail("task", def.Identifier)
		}
	case TaskTypeIDCard:
		if !ex.HasIdentificationCard {
			return dErrors.New(dErrors.CodeTaskExecution, "customer has no identification card on file").
				WithDetail("task", def.Identifier)
		}
	}
	return nil
}
