// Package lifecycle holds the customer state machine: the states, the
// commands that move between them, and which commands can be gated by tasks.
package lifecycle

import (
	"slices"
	"strings"

	dErrors "customercore/pkg/domain-errors"
)

// State is a customer lifecycle state. Wire tokens are uppercase.
type State string

const (
	StatePending State = "PENDING"
	StateActive  State = "ACTIVE"
	StateLocked  State = "LOCKED"
	StateClosed  State = "CLOSED"
)

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateActive, StateLocked, StateClosed:
		return true
	}
	return false
}

func (s State) String() string {
	return string(s)
}

// ParseState accepts the wire token in any case.
func ParseState(raw string) (State, error) {
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown state").WithDetail("state", raw)
	}
	return s, nil
}

// Command is a lifecycle command name.
type Command string

const (
	CommandActivate Command = "ACTIVATE"
	CommandLock     Command = "LOCK"
	CommandUnlock   Command = "UNLOCK"
	CommandClose    Command = "CLOSE"
	CommandReopen   Command = "REOPEN"
)

func (c Command) IsValid() bool {
	switch c {
	case CommandActivate, CommandLock, CommandUnlock, CommandClose, CommandReopen:
		return true
	}
	return false
}

func (c Command) String() string {
	return string(c)
}

// Gateable reports whether task definitions may gate c.
func (c Command) Gateable() bool {
	return c == CommandActivate || c == CommandUnlock || c == CommandReopen
}

// ParseCommand accepts the wire token in any case.
func ParseCommand(raw string) (Command, error) {
	c := Command(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown command").WithDetail("command", raw)
	}
	return c, nil
}

// GateableCommands lists the commands task definitions may reference.
func GateableCommands() []Command {
	return []Command{CommandActivate, CommandUnlock, CommandReopen}
}

type transition struct {
	from    State
	command Command
}

// transitions is the complete table. Anything absent is illegal. REOPEN
// returns a closed customer to PENDING so activation gating runs again.
var transitions = map[transition]State{
	{StatePending, CommandActivate}: StateActive,
	{StatePending, CommandClose}:    StateClosed,
	{StateActive, CommandLock}:      StateLocked,
	{StateActive, CommandClose}:     StateClosed,
	{StateLocked, CommandUnlock}:    StateActive,
	{StateLocked, CommandClose}:     StateClosed,
	{StateClosed, CommandReopen}:    StatePending,
}

// commandOrder fixes the order Commands reports.
var commandOrder = []Command{CommandActivate, CommandLock, CommandUnlock, CommandClose, CommandReopen}

// Next returns the state cmd leads to from the given state, or an
// invalid_state_transition error.
func Next(from State, cmd Command) (State, error) {
	to, ok := transitions[transition{from, cmd}]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidStateTransition, "command not allowed in current state").
			WithDetail("state", string(from)).
			WithDetail("command", string(cmd))
	}
	return to, nil
}

// Commands lists the commands legal from the given state.
func Commands(from State) []Command {
	var out []Command
	for _, cmd := range commandOrder {
		if _, ok := transitions[transition{from, cmd}]; ok {
			out = append(out, cmd)
		}
	}
	return out
}

// Allowed reports whether cmd is legal from the given state.
func Allowed(from State, cmd Command) bool {
	return slices.Contains(Commands(from), cmd)
}
