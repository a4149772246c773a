// Package rlog centralises the process-wide logging configuration: a
// handful of named subsystem loggers built on github.com/ipfs/go-log/v2
// (itself zap-backed), matching the teacher's var logger = log.Logger(...)
// convention in car.go, generalised to the multi-stage pipeline and the
// CLI's 0..4 --verbosity scale.
package rlog

import (
	logging "github.com/ipfs/go-log/v2"
)

// Verbosity mirrors spec.md's §6 gate: 0 errors, 1 +warn, 2 +info, 3 +debug,
// 4 +trace. go-log/zap has no distinct trace level, so level 4 is modelled
// as Debug plus the Trace helper below being enabled.
type Verbosity int

const (
	VError Verbosity = iota
	VWarn
	VInfo
	VDebug
	VTrace
)

var traceEnabled bool

// Configure is called once at process start; it is the single place
// verbosity (otherwise process-wide, mutable, global state per §9) is
// captured, after which every stage receives only the *already configured*
// loggers below.
func Configure(v Verbosity) {
	traceEnabled = v >= VTrace
	level := logging.LevelError
	switch {
	case v >= VDebug:
		level = logging.LevelDebug
	case v >= VInfo:
		level = logging.LevelInfo
	case v >= VWarn:
		level = logging.LevelWarn
	}
	logging.SetAllLoggers(level)
}

var (
	Reader    = logging.Logger("rdhscan/reader")
	Dispatch  = logging.Logger("rdhscan/dispatch")
	Validator = logging.Logger("rdhscan/validator")
	Stats     = logging.Logger("rdhscan/stats")
	CLI       = logging.Logger("rdhscan/cli")
)

// Trace logs at debug level but only when --verbosity reached 4; it exists
// as a distinct call site so the intent ("this is a trace-granularity
// line") survives even though the underlying level is Debug.
func Trace(l *logging.ZapEventLogger, format string, args ...interface{}) {
	if !traceEnabled {
		return
	}
	l.Debugf(format, args...)
}
