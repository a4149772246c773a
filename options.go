package rdhscan

import (
	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/dispatch"
	"github.com/itsdaq/rdhscan/internal/shutdown"
	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/validator"
)

// options holds Run's configuration after applying a number of Option
// funcs, following the teacher's options.go/applyOptions idiom (car,
// v2, v3 all repeat this shape; generalised here to Run's inputs rather
// than a traversal-selector's).
type options struct {
	mode        validator.Mode
	keyMode     dispatch.KeyMode
	checks      *config.Checks
	constructor validator.Constructor
	keep        cdp.KeepFunc
	maxErrors   uint32
	shutdown    *shutdown.Flag
	reference   *config.StatsDoc
}

// Option configures a Run call.
type Option func(*options)

// WithMode selects which checks run (spec.md §6's three targets).
func WithMode(mode validator.Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithChecks installs the configurable-check document (--checks-toml).
func WithChecks(c *config.Checks) Option {
	return func(o *options) { o.checks = c }
}

// WithConstructor overrides the default validator.Constructor, mainly for
// tests that want a double in place of validator.New.
func WithConstructor(ctor validator.Constructor) Option {
	return func(o *options) { o.constructor = ctor }
}

// WithKeep installs the Scanner's routing/accept predicate
// (--filter-link/--filter-fee/--filter-its-stave).
func WithKeep(fn cdp.KeepFunc) Option {
	return func(o *options) { o.keep = fn }
}

// WithMaxErrors bounds how many error Records the Aggregator retains
// (--tolerate-max-errors; 0 means unlimited).
func WithMaxErrors(n uint32) Option {
	return func(o *options) { o.maxErrors = n }
}

// WithShutdown installs the shared shutdown.Flag the Aggregator requests
// once --tolerate-max-errors is exceeded, and the Reader polls between
// RDHs (spec.md §5).
func WithShutdown(f *shutdown.Flag) Option {
	return func(o *options) { o.shutdown = f }
}

// WithReference installs a parsed --input-stats-file document for
// end-of-run reconciliation.
func WithReference(doc *config.StatsDoc) Option {
	return func(o *options) { o.reference = doc }
}

func applyOptions(opts ...Option) options {
	o := options{
		mode:        validator.ModeSanity,
		keyMode:     dispatch.KeyModeLink,
		checks:      &config.Checks{},
		constructor: validator.New,
		keep:        func(rdh.RDH) bool { return true },
		shutdown:    shutdown.New(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	o.keyMode = dispatch.ModeFor(o.mode)
	return o
}
