package cext

import (
	"sync"
	"sync/atomic"

	"github.com/chazu/nativecall/object"
)

// HandleTable maps the handles native code holds to the managed objects
// behind them. A published object stays reachable from the table until its
// wrapper is released.
type HandleTable struct {
	mu      sync.RWMutex
	objects map[Handle]object.Object
	nextID  atomic.Uint64
}

// NewHandleTable creates an empty handle table.
func NewHandleTable() *HandleTable {
	return &HandleTable{
		objects: make(map[Handle]object.Object),
	}
}

// Publish registers obj and returns a fresh handle. Handle 0 is never used.
func (t *HandleTable) Publish(obj object.Object) Handle {
	h := Handle(t.nextID.Add(1))

	t.mu.Lock()
	defer t.mu.Unlock()
	t.objects[h] = obj
	return h
}

// Lookup returns the object for h, or nil and false if h is not published.
func (t *HandleTable) Lookup(h Handle) (object.Object, bool) {
	if h == Null {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	obj, ok := t.objects[h]
	return obj, ok
}

// Withdraw removes h from the table.
func (t *HandleTable) Withdraw(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.objects, h)
}

// Len returns the number of published handles.
func (t *HandleTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}
