package rdhscan

import (
	"io"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/dispatch"
	"github.com/itsdaq/rdhscan/internal/rlog"
	"github.com/itsdaq/rdhscan/stats"
)

// Run assembles and drives the check pipeline end to end: a single
// cdp.Scanner reads r, feeding a dispatch.Dispatcher that fans out by
// routing key to per-identity validators, whose stats.Records are folded
// by one stats.Aggregator. It blocks until r is exhausted (or shutdown is
// requested) and returns the finalised stats.Summary.
//
// Grounded on the teacher's LoadCar, which owns the same shape of
// reader-loop-feeding-a-consumer, generalised here to a reader stage that
// is itself just one of four concurrent pipeline stages (spec.md §5).
func Run(r io.Reader, opts ...Option) (stats.Summary, error) {
	o := applyOptions(opts...)

	sc := cdp.NewScanner(r, cdp.WithKeep(o.keep))

	in := make(chan cdp.CDP, dispatch.ShardChanDepth)
	out := make(chan stats.Record, dispatch.ShardChanDepth)

	d := dispatch.New(o.keyMode, o.mode, o.checks, o.constructor, out)
	dispatchDone := make(chan struct{})
	go func() {
		d.Run(in)
		close(dispatchDone)
	}()

	agg := stats.NewAggregator(uint64(o.maxErrors), o.shutdown)
	aggDone := make(chan struct{})
	go func() {
		for rec := range out {
			agg.Consume(rec)
		}
		close(aggDone)
	}()

	var streamErr error
readLoop:
	for {
		if o.shutdown.Requested() {
			rlog.Reader.Warn("shutdown requested, stopping read loop early")
			break readLoop
		}
		c, err := sc.Next()
		if err != nil {
			if err != io.EOF {
				streamErr = err
			}
			break readLoop
		}
		if c.Filtered {
			continue
		}
		in <- c
	}
	close(in)

	<-dispatchDone
	<-aggDone

	rlog.Reader.Infof("scanned %d RDHs (%d filtered), %d bytes", sc.Counters.Accepted, sc.Counters.Filtered, sc.Counters.Bytes)

	return stats.Summarize(agg, o.reference), streamErr
}

// LoadChecks reads a --checks-toml document from r, or returns a
// zero-value Checks (every check disabled/defaulted) when r is nil.
func LoadChecks(r io.Reader) (*config.Checks, error) {
	if r == nil {
		return &config.Checks{}, nil
	}
	return config.Load(r)
}
