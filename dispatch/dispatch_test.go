package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/stats"
	"github.com/itsdaq/rdhscan/validator"
)

func TestKeyForModes(t *testing.T) {
	h := rdh.RDH{LinkID: 3, FeeID: uint16(2)<<8 | 9}
	require.Equal(t, Key{Mode: KeyModeLink, Link: 3}, KeyFor(KeyModeLink, h))
	require.Equal(t, Key{Mode: KeyModeFee, Fee: h.FeeID}, KeyFor(KeyModeFee, h))
	require.Equal(t, Key{Mode: KeyModeStave, Layer: 2, Stave: 9}, KeyFor(KeyModeStave, h))
}

func TestModeForVMode(t *testing.T) {
	require.Equal(t, KeyModeStave, ModeFor(validator.ModeAllStave))
	require.Equal(t, KeyModeFee, ModeFor(validator.ModeAll))
	require.Equal(t, KeyModeLink, ModeFor(validator.ModeSanity))
}

// fakeValidator counts CDPs and emits one CDPSeen record per consume, plus
// a single record on Finalize, so the test can verify the dispatcher
// delivers every CDP and closes out only after every shard is drained.
type fakeValidator struct{ n int }

func (f *fakeValidator) Reset() {}

func (f *fakeValidator) ConsumeCDP(c cdp.CDP) []stats.Record {
	f.n++
	return []stats.Record{{Kind: stats.KindCDPSeen}}
}

func (f *fakeValidator) Finalize() []stats.Record {
	return []stats.Record{{Kind: stats.KindRdhSeen}}
}

func TestDispatcherRoutesAndClosesOut(t *testing.T) {
	out := make(chan stats.Record, 64)
	ctor := func(mode validator.Mode, cfg *config.Checks) validator.Validator {
		return &fakeValidator{}
	}
	d := New(KeyModeLink, validator.ModeSanity, &config.Checks{}, ctor, out)

	in := make(chan cdp.CDP, 4)
	in <- cdp.CDP{RDH: rdh.RDH{LinkID: 0}}
	in <- cdp.CDP{RDH: rdh.RDH{LinkID: 1}}
	in <- cdp.CDP{RDH: rdh.RDH{LinkID: 0}}
	close(in)

	done := make(chan struct{})
	go func() {
		d.Run(in)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatcher.Run did not return")
	}

	var cdpSeen, finalized int
	for r := range out {
		switch r.Kind {
		case stats.KindCDPSeen:
			cdpSeen++
		case stats.KindRdhSeen:
			finalized++
		}
	}
	require.Equal(t, 3, cdpSeen)
	require.Equal(t, 2, finalized) // one shard per distinct link id (0 and 1)
}
