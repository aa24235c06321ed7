// Package finitestate provides the state machine that tracks one import
// session from pasted text to a committed registry write.
//
// Lifecycle:
//  1. created - session opened with the caller's registry names
//  2. extracting/extracted - text split into blocks and servers
//  3. validating - structural and security checks running
//  4. validated - batch may be resolved and committed
//  5. resolving/resolved - policy applied, final list produced
//  6. committed - caller persisted the merged registry
//
// Terminal failure states:
//   - invalid - batch has validation errors and cannot be imported
//   - error - unexpected processing fault
package finitestate

import (
	"context"
	"log/slog"

	"github.com/robbyt/go-fsm"
)

const (
	StateCreated    = "created"
	StateExtracting = "extracting"
	StateExtracted  = "extracted"
	StateValidating = "validating"
	StateValidated  = "validated"
	StateInvalid    = "invalid"
	StateResolving  = "resolving"
	StateResolved   = "resolved"
	StateCommitted  = "committed"
	StateError      = "error"
)

// ImportTransitions defines the valid state transitions for an import
// session.
var ImportTransitions = map[string][]string{
	StateCreated:    {StateExtracting, StateError},
	StateExtracting: {StateExtracted, StateError},
	StateExtracted:  {StateValidating, StateError},
	StateValidating: {StateValidated, StateInvalid, StateError},
	StateValidated:  {StateResolving, StateError},
	StateInvalid:    {}, // terminal: errors block the whole batch
	StateResolving:  {StateResolved, StateError},
	StateResolved:   {StateCommitted, StateError},
	StateCommitted:  {}, // terminal
	StateError:      {}, // terminal
}

// Machine is the interface the session uses to drive its lifecycle.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition and reports success.
	TransitionBool(state string) bool

	// TransitionIfCurrentState transitions only from the expected current state.
	TransitionIfCurrentState(currentState, newState string) error

	// SetState sets the state unconditionally.
	SetState(state string) error

	// GetState returns the current state.
	GetState() string

	// GetStateChan returns a channel emitting the state on every change.
	// The channel is closed when the context is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// New creates a state machine positioned at StateCreated.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateCreated, ImportTransitions)
}
