// Package shutdown holds the single atomic cross-thread flag named in
// spec.md §5: "No shared mutable state except an atomic shutdown flag and
// the key→sender map in the Dispatcher". Built on go.uber.org/atomic, the
// same library the teacher pulls in transitively through go-log/zap.
package shutdown

import "go.uber.org/atomic"

// Flag is set once, by an interrupt handler or by the stats aggregator
// after --tolerate-max-errors is exceeded, and polled by the Reader between
// RDHs.
type Flag struct {
	requested atomic.Bool
}

func New() *Flag { return &Flag{} }

func (f *Flag) Request() { f.requested.Store(true) }

func (f *Flag) Requested() bool { return f.requested.Load() }
