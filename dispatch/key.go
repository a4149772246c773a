// Package dispatch implements the sharded concurrent dispatcher spec.md
// §4.2 describes: one consumer of the reader's CDP stream, fanning out by
// routing key to a private, spawned-on-first-sighting validator goroutine.
// Grounded on the teacher's channel-based async walk (v2/blockstore's
// AllKeysChan) for the channel idiom, generalised here to a key-sharded
// fan-out since the teacher itself never routes by more than one channel.
package dispatch

import (
	"fmt"

	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/validator"
)

// KeyMode selects which field of the RDH forms the routing key (spec.md
// §4.2's three bullet points).
type KeyMode int

const (
	KeyModeLink KeyMode = iota
	KeyModeFee
	KeyModeStave
)

// Key is a routing identity. Exactly one of the fields is meaningful,
// selected by which KeyMode produced it; Key is comparable so it can be a
// map key directly.
type Key struct {
	Mode  KeyMode
	Link  uint8
	Fee   uint16
	Layer uint8
	Stave uint8
}

// KeyFor derives h's routing key under mode (spec.md §4.2).
func KeyFor(mode KeyMode, h rdh.RDH) Key {
	switch mode {
	case KeyModeFee:
		return Key{Mode: KeyModeFee, Fee: h.FeeID}
	case KeyModeStave:
		return Key{Mode: KeyModeStave, Layer: h.Layer(), Stave: h.Stave()}
	default:
		return Key{Mode: KeyModeLink, Link: h.LinkID}
	}
}

func (k Key) String() string {
	switch k.Mode {
	case KeyModeFee:
		return fmt.Sprintf("fee=0x%04x", k.Fee)
	case KeyModeStave:
		return fmt.Sprintf("L%d_%02d", k.Layer, k.Stave)
	default:
		return fmt.Sprintf("link=%d", k.Link)
	}
}

// ModeFor picks the KeyMode from the validator.Mode alone: its-stave mode
// routes by stave, plain "all" routes by fee_id, sanity routes by link.
// The --filter-* flags do not change the routing key.
func ModeFor(vmode validator.Mode) KeyMode {
	if vmode == validator.ModeAllStave {
		return KeyModeStave
	}
	if vmode == validator.ModeAll {
		return KeyModeFee
	}
	return KeyModeLink
}
