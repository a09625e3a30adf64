package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customercore/internal/lifecycle"
	dErrors "customercore/pkg/domain-errors"
)

var now = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

func TestNewDefinition(t *testing.T) {
	t.Run("normalizes commands", func(t *testing.T) {
		def, err := NewDefinition("nat-id", TaskTypeIDCard, DefinitionSpec{
			Name:       " National ID ",
			Mandatory:  true,
			Predefined: true,
			Commands:   []lifecycle.Command{lifecycle.CommandUnlock, lifecycle.CommandActivate, lifecycle.CommandUnlock},
		}, "admin", now)
		require.NoError(t, err)
		assert.Equal(t, "National ID", def.Name)
		assert.Equal(t, []lifecycle.Command{lifecycle.CommandActivate, lifecycle.CommandUnlock}, def.Commands)
		assert.True(t, def.Enforced())
		assert.True(t, def.Gates(lifecycle.CommandActivate))
		assert.False(t, def.Gates(lifecycle.CommandReopen))
	})

	t.Run("rejects non-gateable commands", func(t *testing.T) {
		_, err := NewDefinition("lock-check", TaskTypeCustom, DefinitionSpec{
			Name:     "Lock check",
			Commands: []lifecycle.Command{lifecycle.CommandLock},
		}, "admin", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("only custom tasks may gate nothing", func(t *testing.T) {
		_, err := NewDefinition("note", TaskTypeCustom, DefinitionSpec{Name: "Note"}, "admin", now)
		require.NoError(t, err)

		_, err = NewDefinition("approve", TaskTypeFourEyes, DefinitionSpec{Name: "Approve"}, "admin", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewDefinition("x", TaskType("SELFIE"), DefinitionSpec{Name: "x"}, "admin", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestSatisfied(t *testing.T) {
	custom := &Definition{Identifier: "c", Type: TaskTypeCustom}
	idCard := &Definition{Identifier: "id", Type: TaskTypeIDCard}
	fourEyes := &Definition{Identifier: "4e", Type: TaskTypeFourEyes}

	pending := NewInstance("cust-1", "c", now)
	executed := NewInstance("cust-1", "c", now)
	executed.MarkExecuted("checker", "ok", now)

	tests := []struct {
		name string
		def  *Definition
		inst *Instance
		ev   Evidence
		want bool
	}{
		{"missing instance", custom, nil, Evidence{}, false},
		{"custom not executed", custom, pending, Evidence{}, false},
		{"custom executed", custom, executed, Evidence{}, true},
		{"id card executed without card", idCard, executed, Evidence{}, false},
		{"id card executed with card", idCard, executed, Evidence{HasIdentificationCard: true}, true},
		{"four eyes same actor", fourEyes, executed, Evidence{CommandActor: "checker"}, false},
		{"four eyes different actor", fourEyes, executed, Evidence{CommandActor: "maker"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Satisfied(tc.def, tc.inst, tc.ev))
		})
	}
}

func TestMarkExecuted(t *testing.T) {
	inst := NewInstance("cust-1", "c", now)
	assert.False(t, inst.Executed())

	inst.MarkExecuted("a", "first", now)
	later := now.Add(time.Hour)
	inst.MarkExecuted("b", "second", later)

	assert.True(t, inst.Executed())
	assert.Equal(t, "b", inst.ExecutedBy)
	assert.Equal(t, "second", inst.Comment)
	assert.Equal(t, later, *inst.ExecutedOn)

	clone := inst.Clone()
	*clone.ExecutedOn = now
	assert.Equal(t, later, *inst.ExecutedOn)
}

func TestCheckExecution(t *testing.T) {
	fourEyes := &Definition{Identifier: "4e", Type: TaskTypeFourEyes}
	idCard := &Definition{Identifier: "id", Type: TaskTypeIDCard}

	err := CheckExecution(fourEyes, Execution{Actor: "maker", Requester: "maker"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTaskExecution))
	assert.NoError(t, CheckExecution(fourEyes, Execution{Actor: "checker", Requester: "maker"}))

	err = CheckExecution(idCard, Execution{Actor: "a"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTaskExecution))
	assert.NoError(t, CheckExecution(idCard, Execution{Actor: "a", HasIdentificationCard: true}))
}
