// Package trace records native boundary crossings.
//
// Each crossing becomes a Record. Records are encoded with canonical CBOR
// so the same crossing always produces the same bytes, and can be kept in
// memory or appended to a SQLite journal.
package trace

import (
	"fmt"
	"strings"
	"time"
)

// Record describes one native call.
type Record struct {
	Context    string   `cbor:"1,keyasint"`
	Name       string   `cbor:"2,keyasint"`
	Convention string   `cbor:"3,keyasint"`
	ArgKinds   []string `cbor:"4,keyasint,omitempty"`
	StartedAt  int64    `cbor:"5,keyasint"`
	Duration   int64    `cbor:"6,keyasint"`
	Fault      string   `cbor:"7,keyasint,omitempty"`
	Message    string   `cbor:"8,keyasint,omitempty"`
}

// Failed reports whether the call ended with a fault or exception.
func (r *Record) Failed() bool {
	return r.Fault != ""
}

// Start returns StartedAt as a time.
func (r *Record) Start() time.Time {
	return time.Unix(0, r.StartedAt)
}

func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s(%s) [%s] %s", r.Start().Format(time.RFC3339Nano), r.Name,
		strings.Join(r.ArgKinds, ", "), r.Convention, time.Duration(r.Duration))
	if r.Failed() {
		fmt.Fprintf(&b, " %s: %s", r.Fault, r.Message)
	}
	return b.String()
}

// Sink receives records as calls complete.
type Sink interface {
	Emit(rec Record) error
}
