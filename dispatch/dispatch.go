package dispatch

import (
	"sync"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/internal/rlog"
	"github.com/itsdaq/rdhscan/stats"
	"github.com/itsdaq/rdhscan/validator"
)

// ShardChanDepth is the default bound on a per-key validator's inbox
// (spec.md §4.2: "depth chosen for backpressure, not ordering").
const ShardChanDepth = 64

// Dispatcher is the single consumer of the reader's CDP stream and the
// sole writer of the key→sender map (spec.md §5: "No shared mutable state
// except ... the key→sender map in the Dispatcher, written only by the
// Dispatcher, never exposed").
type Dispatcher struct {
	keyMode   KeyMode
	vmode     validator.Mode
	cfg       *config.Checks
	ctor      validator.Constructor
	chanDepth int

	shards map[Key]chan cdp.CDP
	wg     sync.WaitGroup

	out chan<- stats.Record
}

// New builds a Dispatcher that routes by keyMode, constructing validators
// via ctor, and forwards every stats.Record produced to out. out is
// owned by the caller's stats aggregator stage and is closed by the
// Dispatcher once every validator has drained and finalized.
func New(keyMode KeyMode, vmode validator.Mode, cfg *config.Checks, ctor validator.Constructor, out chan<- stats.Record) *Dispatcher {
	return &Dispatcher{
		keyMode:   keyMode,
		vmode:     vmode,
		cfg:       cfg,
		ctor:      ctor,
		chanDepth: ShardChanDepth,
		shards:    make(map[Key]chan cdp.CDP),
		out:       out,
	}
}

// Run consumes in until it closes, routing each CDP to its key's shard
// (spawning a new validator goroutine on first sighting), then closes every
// shard, waits for all validators to finish, and closes out. Run is meant
// to be the body of the Dispatcher's own goroutine; it blocks until in is
// exhausted.
func (d *Dispatcher) Run(in <-chan cdp.CDP) {
	for c := range in {
		key := KeyFor(d.keyMode, c.RDH)
		ch, ok := d.shards[key]
		if !ok {
			ch = make(chan cdp.CDP, d.chanDepth)
			d.shards[key] = ch
			v := d.ctor(d.vmode, d.cfg)
			d.wg.Add(1)
			go d.runValidator(key, v, ch)
			rlog.Dispatch.Debugf("spawned validator for %s", key)
		}
		ch <- c
	}
	for _, ch := range d.shards {
		close(ch)
	}
	d.wg.Wait()
	close(d.out)
}

// runValidator is one shard's private worker: it owns v exclusively and is
// the only goroutine that ever calls into it (spec.md §5 "Each thread owns
// its mutable state").
func (d *Dispatcher) runValidator(key Key, v validator.Validator, ch <-chan cdp.CDP) {
	defer d.wg.Done()
	for c := range ch {
		for _, r := range v.ConsumeCDP(c) {
			d.out <- r
		}
	}
	for _, r := range v.Finalize() {
		d.out <- r
	}
	rlog.Dispatch.Debugf("validator for %s drained", key)
}
