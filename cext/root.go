package cext

import (
	"fmt"

	"github.com/chazu/nativecall/object"
)

// Root is the call-site entry point for one native function. It is bound
// to a single (name, callable, convention) triple at construction and is
// immutable afterwards, so one Root can be shared by every call site.
type Root struct {
	rt        *Runtime
	name      string
	callable  any
	conv      Convention
	compareOp int
	invoker   *Invoker
}

// RootOption configures a Root at construction.
type RootOption func(*rootOptions)

type rootOptions struct {
	compareOp int
	validator ResultValidator
}

// WithCompareOp sets the fixed opcode of a RichCompareFixedOp root.
func WithCompareOp(op int) RootOption {
	return func(o *rootOptions) { o.compareOp = op }
}

// WithValidator replaces the convention's default result contract.
func WithValidator(v ResultValidator) RootOption {
	return func(o *rootOptions) { o.validator = v }
}

// NewRoot binds callable under name with the given convention.
func NewRoot(rt *Runtime, name string, callable any, conv Convention, opts ...RootOption) *Root {
	var o rootOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Root{
		rt:        rt,
		name:      name,
		callable:  callable,
		conv:      conv,
		compareOp: o.compareOp,
		invoker:   NewInvoker(rt, conv, o.validator),
	}
}

func (r *Root) Name() string { return r.name }

func (r *Root) Convention() Convention { return r.conv }

// Signature reports the managed-side signature callers see.
func (r *Root) Signature() Signature { return r.conv.Signature() }

func (r *Root) String() string {
	return fmt.Sprintf("<native root %s%s>", r.name, r.Signature())
}

// Execute runs the call described by frame.
//
// A managed callable is invoked with the managed-side argument shape and
// no native bookkeeping. Otherwise the native vector is built, the foreign
// call is performed, and any argument tuple or keyword dict built for it is
// released before Execute returns, whether the call succeeded or not.
func (r *Root) Execute(ctx *ExecutionContext, frame Frame) (object.Value, error) {
	if managed, ok := r.callable.(object.Callable); ok {
		args, kwargs, err := r.rt.Marshaller.ManagedArgs(r.name, r.conv, frame, r.compareOp)
		if err != nil {
			return nil, err
		}
		return managed.Call(args, kwargs)
	}

	call, err := r.rt.Marshaller.NativeArgs(r.name, r.conv, frame, r.compareOp)
	if err != nil {
		return nil, err
	}
	if r.conv.ownsArgsTuple() {
		defer func() {
			for _, obj := range call.Owned {
				r.rt.Tracker.Release(obj, obj.NativeWrapper())
			}
			for _, t := range call.Temps {
				r.rt.Tracker.ReleaseTuple(t)
			}
		}()
	}
	return r.invoker.Invoke(ctx, frame, r.name, r.callable, call.Args, 0)
}

// Bind returns r as an ordinary callable running on ctx. Positional
// arguments fill the declared parameters first; any extra ones form the
// variadic tail.
func (r *Root) Bind(ctx *ExecutionContext) object.Callable {
	return &boundRoot{root: r, ctx: ctx}
}

type boundRoot struct {
	root *Root
	ctx  *ExecutionContext
}

func (b *boundRoot) Call(args []object.Value, kwargs []object.Keyword) (object.Value, error) {
	sig := b.root.Signature()
	n := len(sig.Params)
	switch {
	case len(args) < n:
		return nil, object.NewException(object.TypeError, "%s() missing %d required positional argument(s)", b.root.name, n-len(args))
	case len(args) > n && !sig.Varargs:
		return nil, object.NewException(object.TypeError, "%s() takes %d positional arguments but %d were given", b.root.name, n, len(args))
	case len(kwargs) > 0 && !sig.Kwargs:
		return nil, object.NewException(object.TypeError, "%s() takes no keyword arguments", b.root.name)
	}

	frame := &object.Arguments{
		Positional: args[:n],
		Varargs:    args[n:],
		Keywords:   kwargs,
	}
	frame.SetCaughtException(b.ctx.CaughtException())
	return b.root.Execute(b.ctx, frame)
}
