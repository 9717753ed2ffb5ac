package cext

import (
	"github.com/google/uuid"

	"github.com/chazu/nativecall/object"
)

// ExecutionContext is the per-thread state a native call crosses with. It
// carries the currently caught exception, which native frames cannot hold
// themselves, and the pending error indicator native code raises into.
//
// Each thread owns its own context; sharing one across threads is
// undefined.
type ExecutionContext struct {
	id uuid.UUID

	caught  *object.Exception
	pending *object.Exception

	// exceptionStateNeeded flips once anything has queried LastException.
	// Until then native callees get a clean caught-exception slot.
	exceptionStateNeeded bool
}

// NewExecutionContext creates a context with a fresh ID.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{id: uuid.New()}
}

// ID identifies the context in logs and traces.
func (c *ExecutionContext) ID() uuid.UUID {
	return c.id
}

// LastException is the interpreter's "last exception" query. Calling it
// makes every later native call pass the caller's caught exception through.
func (c *ExecutionContext) LastException() *object.Exception {
	c.exceptionStateNeeded = true
	return c.caught
}

// CaughtException reads the cell without marking it as needed.
func (c *ExecutionContext) CaughtException() *object.Exception {
	return c.caught
}

// SetCaughtException replaces the cell.
func (c *ExecutionContext) SetCaughtException(exc *object.Exception) {
	c.caught = exc
}

// ExceptionStateNeeded reports whether LastException has ever been called.
func (c *ExecutionContext) ExceptionStateNeeded() bool {
	return c.exceptionStateNeeded
}

// Raise sets the pending error indicator.
func (c *ExecutionContext) Raise(exc *object.Exception) {
	c.pending = exc
}

// Pending returns the pending error, if any.
func (c *ExecutionContext) Pending() *object.Exception {
	return c.pending
}

// TakePending returns and clears the pending error.
func (c *ExecutionContext) TakePending() *object.Exception {
	exc := c.pending
	c.pending = nil
	return exc
}

// foreignCallState is what enterForeignCall saves for exitForeignCall.
type foreignCallState struct {
	saved *object.Exception
}

// enterForeignCall saves the cell and hands the callee either the caller's
// caught exception or a clean slot.
func (c *ExecutionContext) enterForeignCall(frame Frame) foreignCallState {
	state := foreignCallState{saved: c.caught}
	if c.exceptionStateNeeded && frame != nil {
		c.caught = frame.CaughtException()
	} else {
		c.caught = nil
	}
	return state
}

// exitForeignCall publishes what the callee left in the cell. When the
// callee never ran there is nothing to publish and the saved value comes
// back.
func (c *ExecutionContext) exitForeignCall(frame Frame, state foreignCallState, calleeRan bool) {
	if !calleeRan {
		c.caught = state.saved
	}
	if frame != nil {
		frame.SetCaughtException(c.caught)
	}
}
