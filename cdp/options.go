package cdp

import "github.com/itsdaq/rdhscan/rdh"

// KeepFunc is the pure predicate (link/FEE/stave filter) supplied to the
// Scanner at construction and consulted by Next for every record read
// (spec.md §4.1 "Filtering hook").
type KeepFunc func(rdh.RDH) bool

type options struct {
	keep KeepFunc
}

// Option configures a Scanner, following the teacher's applyOptions idiom
// (car's options.go / v2's ApplyOptions).
type Option func(*options)

// WithKeep installs a filter predicate. The default predicate keeps
// everything.
func WithKeep(fn KeepFunc) Option {
	return func(o *options) { o.keep = fn }
}

func applyOptions(opts ...Option) options {
	o := options{keep: func(rdh.RDH) bool { return true }}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
