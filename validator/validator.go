// Package validator implements the per-routing-key state machines spec.md
// §4.3 describes: RDH sanity and running checks, the ITS payload grammar,
// ALPIDE lane/chip checks, and the configurable E9xxx custom checks. One
// Validator instance is owned by exactly one goroutine for its lifetime
// (spec.md §5 "Each thread owns its mutable state"), so nothing here needs
// locking.
package validator

import (
	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/gbtword"
	"github.com/itsdaq/rdhscan/internal/rerr"
	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/stats"
)

// Validator is the capability interface the dispatcher drives, per
// spec.md §9's "Dynamic dispatch" note: callers inject a constructor
// function rather than a concrete type, so sanity-only, full, and
// stave-aware validators can share one call site.
type Validator interface {
	Reset()
	ConsumeCDP(c cdp.CDP) []stats.Record
	Finalize() []stats.Record
}

// Constructor builds a fresh Validator for a newly observed routing key
// (spec.md §4.2 "spawn on first sighting").
type Constructor func(mode Mode, cfg *config.Checks) Validator

// New is the default Constructor, selecting which sub-checks run from mode.
func New(mode Mode, cfg *config.Checks) Validator {
	if cfg == nil {
		cfg = &config.Checks{}
	}
	v := &itsValidator{mode: mode, cfg: cfg}
	v.Reset()
	return v
}

type itsValidator struct {
	mode Mode
	cfg  *config.Checks

	running runningState
	fsm     *FSM
	alpide  *alpideChecker
	custom  *customChecker

	records []stats.Record

	// current frame's opening IHW/TDT context, captured as the FSM walks
	// words so alpide checks can run the instant a TDT closes a frame.
	activeLanes  uint32
	haveIHW      bool
	curLayer     uint8
}

func (v *itsValidator) Reset() {
	v.running = runningState{}
	v.fsm = NewFSM()
	v.alpide = newAlpideChecker(v.cfg)
	v.custom = newCustomChecker(v.cfg)
	v.records = nil
	v.activeLanes = 0
	v.haveIHW = false
}

func (v *itsValidator) ConsumeCDP(c cdp.CDP) []stats.Record {
	v.records = v.records[:0]
	v.emit(stats.Record{Kind: stats.KindCDPSeen})

	for _, e := range c.ReaderErrors {
		v.emitError(e)
	}

	if v.mode.RunsCrossChecks() {
		v.custom.ObserveCDP()
		for _, e := range v.custom.ObserveHeader(c.RDH, c.Offset) {
			v.emitError(e)
		}
	}

	v.emit(stats.Record{Kind: stats.KindRdhSeen})
	v.emit(stats.Record{Kind: stats.KindLinkObserved, Link: c.RDH.LinkID})
	v.emit(stats.Record{Kind: stats.KindFeeObserved, Fee: c.RDH.FeeID})
	v.emit(stats.Record{Kind: stats.KindLayerStaveObserved, Layer: c.RDH.Layer(), Stave: c.RDH.Stave()})
	v.emit(stats.Record{Kind: stats.KindTriggerType, TriggerType: c.RDH.TriggerType})

	if c.RDH.PagesCounter == 0 && c.RDH.StopBit == 0 {
		v.emit(stats.Record{Kind: stats.KindHbfSeen})
	}

	for _, e := range c.RDH.Sanity(c.Offset) {
		v.emitError(e)
	}

	if c.Filtered {
		return append([]stats.Record(nil), v.records...)
	}

	if v.mode.RunsCrossChecks() {
		for _, e := range v.running.consume(c.RDH, c.Offset) {
			v.emitError(e)
		}
	}
	v.curLayer = c.RDH.Layer()
	for _, e := range v.fsm.StartCDP(c.RDH.StopBit, c.RDH.PagesCounter, c.Offset) {
		v.emitError(e)
	}
	v.consumePayload(c)

	return append([]stats.Record(nil), v.records...)
}

func (v *itsValidator) consumePayload(c cdp.CDP) {
	offset := c.Offset + rdh.Size
	for i := 0; i+gbtword.Size <= len(c.Payload); i += gbtword.Size {
		var raw gbtword.Raw10
		copy(raw[:], c.Payload[i:i+gbtword.Size])

		switch raw.ID() {
		case gbtword.IDIHW:
			v.activeLanes = gbtword.AsIHW(raw).ActiveLanes()
			v.haveIHW = true
		case gbtword.IDDDW0:
			if v.mode.RunsCrossChecks() && c.RDH.StopBit != 1 {
				v.emitError(rerr.New(offset, "E26", "DDW0 word seen but RDH stop bit is not set"))
			}
		case gbtword.IDTDT:
			if v.mode.RunsAlpide() && v.haveIHW {
				tdt := gbtword.AsTDT(raw)
				frame := ReadoutFrame{Words: append([]gbtword.DataWord(nil), v.fsm.CurrentFrame().Words()...)}
				for _, e := range v.alpide.CheckFrame(v.curLayer, frame, v.activeLanes, tdt.LaneFaultsMask(), offset) {
					v.emitError(e)
				}
			}
		case gbtword.IDTDH:
			if v.mode.RunsCrossChecks() {
				tdh := gbtword.AsTDH(raw)
				for _, e := range v.custom.ObserveTDH(tdh.InternalTrigger(), tdh.TriggerBC(), offset) {
					v.emitError(e)
				}
			}
		}

		for _, e := range v.fsm.ConsumeWord(raw, offset) {
			v.emitError(e)
		}
		offset += gbtword.Size
	}
}

func (v *itsValidator) Finalize() []stats.Record {
	v.records = v.records[:0]
	if v.mode.RunsCrossChecks() {
		for _, e := range v.custom.Finalize(0) {
			v.emitError(e)
		}
	}
	return append([]stats.Record(nil), v.records...)
}

func (v *itsValidator) emit(r stats.Record) { v.records = append(v.records, r) }

func (v *itsValidator) emitError(err error) {
	var rErr *rerr.Error
	if e, ok := err.(*rerr.Error); ok {
		rErr = e
	}
	rec := stats.Record{Kind: stats.KindError, Msg: err.Error()}
	if rErr != nil {
		rec.Offset = rErr.Offset
		rec.Code = rErr.Code
		rec.Msg = rErr.Msg
	}
	v.emit(rec)
}
