package cext

import (
	"testing"

	"github.com/chazu/nativecall/object"
)

func TestExecutionContext_IDs(t *testing.T) {
	a, b := NewExecutionContext(), NewExecutionContext()
	if a.ID() == b.ID() {
		t.Error("contexts share an ID")
	}
}

func TestExecutionContext_LastExceptionFlipsFlag(t *testing.T) {
	ctx := NewExecutionContext()
	exc := object.NewException(object.ValueError, "x")
	ctx.SetCaughtException(exc)

	if ctx.ExceptionStateNeeded() {
		t.Fatal("flag set before any query")
	}
	if ctx.CaughtException() != exc || ctx.ExceptionStateNeeded() {
		t.Fatal("CaughtException must not flip the flag")
	}
	if ctx.LastException() != exc {
		t.Error("LastException returned the wrong exception")
	}
	if !ctx.ExceptionStateNeeded() {
		t.Error("flag not set after LastException")
	}
}

func TestExecutionContext_Pending(t *testing.T) {
	ctx := NewExecutionContext()
	exc := object.NewException(object.TypeError, "bad")
	ctx.Raise(exc)
	if ctx.Pending() != exc {
		t.Fatal("Pending did not return the raised exception")
	}
	if ctx.TakePending() != exc || ctx.Pending() != nil {
		t.Error("TakePending did not clear the indicator")
	}
}

func TestExecutionContext_ForeignCallCalleeNeverRan(t *testing.T) {
	ctx := NewExecutionContext()
	saved := object.NewException(object.ValueError, "saved")
	ctx.SetCaughtException(saved)
	frame := object.NewArguments()

	state := ctx.enterForeignCall(frame)
	if ctx.CaughtException() != nil {
		t.Errorf("cell = %v during call, want clean", ctx.CaughtException())
	}
	ctx.exitForeignCall(frame, state, false)

	if ctx.CaughtException() != saved || frame.CaughtException() != saved {
		t.Error("saved exception not restored")
	}
}

func TestExecutionContext_ForeignCallRedirect(t *testing.T) {
	ctx := NewExecutionContext()
	ctx.LastException()
	inFrame := object.NewException(object.KeyError, "frame")
	frame := object.NewArguments()
	frame.SetCaughtException(inFrame)

	state := ctx.enterForeignCall(frame)
	if ctx.CaughtException() != inFrame {
		t.Errorf("cell = %v during call, want the frame's exception", ctx.CaughtException())
	}
	ctx.SetCaughtException(nil)
	ctx.exitForeignCall(frame, state, true)

	if frame.CaughtException() != nil {
		t.Errorf("frame = %v, want the callee's cleared cell", frame.CaughtException())
	}
}
