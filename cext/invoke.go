package cext

import (
	"errors"
	"time"

	"github.com/chazu/nativecall/object"
	"github.com/chazu/nativecall/trace"
)

// Invoker owns the foreign call for one convention: argument conversion,
// the transport call, result validation and conversion, and the
// caught-exception bridge around all of it.
type Invoker struct {
	rt         *Runtime
	convention Convention
	validator  ResultValidator
}

// NewInvoker creates an invoker. A nil validator selects the convention's
// default contract.
func NewInvoker(rt *Runtime, conv Convention, validator ResultValidator) *Invoker {
	if validator == nil {
		validator = conv.defaultValidator()
	}
	return &Invoker{rt: rt, convention: conv, validator: validator}
}

// Invoke calls callable with args[offset:].
//
// The context's caught-exception cell is saved before the call and handed
// to the callee clean, or redirected to the frame's caught exception once
// something has queried it. On every exit path the frame receives whatever
// the callee left in the cell; if the callee never ran, the saved value is
// restored instead. Arguments boxed for the call are released after it.
func (inv *Invoker) Invoke(ctx *ExecutionContext, frame Frame, name string, callable any, args []any, offset int) (result object.Value, err error) {
	native, temps := inv.rt.toNative(args[offset:])

	state := ctx.enterForeignCall(frame)
	calleeRan := false
	start := time.Now()
	defer func() {
		ctx.exitForeignCall(frame, state, calleeRan)
		inv.finish(ctx, name, native, start, err)
		for _, obj := range temps {
			inv.rt.Tracker.Release(obj, obj.NativeWrapper())
		}
	}()

	raw, err := inv.rt.Transport.Invoke(callable, native)
	if err != nil {
		var panicked *CalleePanic
		calleeRan = errors.As(err, &panicked)
		if calleeRan {
			// Whatever the callee raised before failing belongs to this call.
			if pending := ctx.TakePending(); pending != nil {
				err = errors.Join(err, pending)
			}
		}
		return nil, inv.fault(name, err)
	}
	calleeRan = true

	checked, err := inv.validator.Validate(name, ctx, raw)
	if err != nil {
		return nil, err
	}
	result, err = inv.rt.fromNative(checked)
	if err != nil {
		return nil, &TypeFault{Name: name, Cause: err}
	}
	return result, nil
}

// fault maps a transport error to the fault surfaced to the caller.
func (inv *Invoker) fault(name string, err error) error {
	var arity *ArityError
	if errors.As(err, &arity) {
		return &ArityFault{Name: name, Expected: arity.Expected, Actual: arity.Actual}
	}
	return &TypeFault{Name: name, Cause: err}
}

func (inv *Invoker) finish(ctx *ExecutionContext, name string, native []any, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		log.Debugf("native call %s (%s) failed after %s: %v", name, inv.convention, elapsed, err)
	} else {
		log.Debugf("native call %s (%s) returned after %s", name, inv.convention, elapsed)
	}

	if inv.rt.sink == nil {
		return
	}
	rec := trace.Record{
		Context:    ctx.ID().String(),
		Name:       name,
		Convention: inv.convention.String(),
		ArgKinds:   inv.rt.describe(native),
		StartedAt:  start.UnixNano(),
		Duration:   int64(elapsed),
	}
	if err != nil {
		rec.Fault = faultKind(err)
		rec.Message = err.Error()
	}
	if serr := inv.rt.sink.Emit(rec); serr != nil {
		log.Warningf("trace sink: %v", serr)
	}
}

func faultKind(err error) string {
	var (
		arity      *ArityFault
		typeFault  *TypeFault
		validation *ResultValidationFault
		exc        *object.Exception
	)
	switch {
	case errors.As(err, &arity):
		return "arity"
	case errors.As(err, &typeFault):
		return "type"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &exc):
		return "exception:" + exc.Type
	}
	return "error"
}
