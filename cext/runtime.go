package cext

import (
	"github.com/chazu/nativecall/config"
	"github.com/chazu/nativecall/object"
	"github.com/chazu/nativecall/trace"
)

// Runtime wires the bridge's components around one object factory and
// handle table. Roots created from the same Runtime share its reference
// bookkeeping.
type Runtime struct {
	Factory      *object.Factory
	Handles      *HandleTable
	Tracker      *Tracker
	Materializer *Materializer
	Marshaller   *Marshaller
	Transport    Transport

	sink trace.Sink
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTransport replaces the reflect-based transport.
func WithTransport(t Transport) Option {
	return func(rt *Runtime) { rt.Transport = t }
}

// WithSink emits a trace record for every native call.
func WithSink(s trace.Sink) Option {
	return func(rt *Runtime) { rt.sink = s }
}

// New creates a runtime from cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Runtime {
	if cfg == nil {
		cfg = config.Default()
	}
	factory := object.NewFactory(cfg.Bridge.SmallIntMin, cfg.Bridge.SmallIntMax)
	handles := NewHandleTable()
	tracker := NewTracker(factory, handles)
	materializer := NewMaterializer(factory)

	rt := &Runtime{
		Factory:      factory,
		Handles:      handles,
		Tracker:      tracker,
		Materializer: materializer,
		Marshaller:   NewMarshaller(factory, tracker, materializer),
		Transport:    ReflectTransport{},
	}
	for _, opt := range opts {
		opt(rt)
	}

	lo, hi := factory.SmallRange()
	log.Infof("runtime ready: small ints [%d, %d], transport %T, tracing %t", lo, hi, rt.Transport, rt.sink != nil)
	return rt
}

// NewContext creates an execution context for a thread that will call
// into native code through this runtime.
func (rt *Runtime) NewContext() *ExecutionContext {
	ctx := NewExecutionContext()
	log.Debugf("new execution context %s", ctx.ID())
	return ctx
}

// API returns the native-side API bound to ctx.
func (rt *Runtime) API(ctx *ExecutionContext) *API {
	return &API{rt: rt, ctx: ctx}
}
