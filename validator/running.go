package validator

import (
	"github.com/itsdaq/rdhscan/internal/rerr"
	"github.com/itsdaq/rdhscan/rdh"
)

// runningState holds the per-validator RDH running-check state spec.md
// §4.3.1 names: expected_page, last_orbit, last_packet_counter,
// baseline_page_increment, first_trigger_type, last_detector_field,
// last_trigger_type, last_fee_id.
type runningState struct {
	started bool

	expectedPage          uint16
	baselinePageIncrement uint16
	haveBaseline          bool
	firstPage             bool // true once we've seen exactly one page (for baseline learning)

	lastOrbit         uint32
	lastPacketCounter uint8
	firstTriggerType  uint32
	lastDetectorField uint32
	lastTriggerType   uint32
	lastFeeID         uint16
	haveLast          bool
}

// consume runs the RDH running checks for h at offset, mutating state and
// returning any violations. See spec.md §4.3.1's transition table, plus
// the Open Question in §9: "the 'baseline page increment' is learned from
// the first two RDHs; ... implementers should assume increment = 1" when
// fewer than two RDHs precede a stop_bit=1.
func (s *runningState) consume(h rdh.RDH, offset uint64) []error {
	var errs []error
	add := func(code, format string, args ...interface{}) {
		errs = append(errs, rerr.New(offset, code, format, args...))
	}

	if !s.started {
		s.started = true
		s.firstTriggerType = h.TriggerType
		s.baselinePageIncrement = 1 // Open Question default, documented in DESIGN.md
	}

	if h.PagesCounter != 0 {
		if s.haveLast {
			if h.Orbit != s.lastOrbit {
				add("E20", "orbit %d != previous %d while pages_counter=%d", h.Orbit, s.lastOrbit, h.PagesCounter)
			}
			if h.TriggerType != s.lastTriggerType {
				add("E21", "trigger_type 0x%x != previous 0x%x while pages_counter=%d", h.TriggerType, s.lastTriggerType, h.PagesCounter)
			}
			if h.DetectorField != s.lastDetectorField {
				add("E22", "detector_field 0x%x != previous 0x%x while pages_counter=%d", h.DetectorField, s.lastDetectorField, h.PagesCounter)
			}
			if h.FeeID != s.lastFeeID {
				add("E23", "fee_id 0x%x != previous 0x%x while pages_counter=%d", h.FeeID, s.lastFeeID, h.PagesCounter)
			}
		}
	}

	if h.StopBit == 0 {
		if !s.haveBaseline {
			if s.firstPage {
				// This is the second page of the current HBF; learn the
				// real increment from it before checking it.
				s.baselinePageIncrement = h.PagesCounter
				if s.baselinePageIncrement == 0 {
					s.baselinePageIncrement = 1
				}
				s.haveBaseline = true
				s.expectedPage = s.baselinePageIncrement
			} else {
				s.firstPage = true
			}
		}
		if h.PagesCounter != s.expectedPage {
			add("E24", "pages_counter %d != expected %d", h.PagesCounter, s.expectedPage)
		}
		s.expectedPage += s.baselinePageIncrement
	} else {
		if h.PagesCounter != s.expectedPage {
			add("E24", "pages_counter %d != expected %d", h.PagesCounter, s.expectedPage)
		}
		s.expectedPage = 0
		s.baselinePageIncrement = 1
		s.haveBaseline = false
		s.firstPage = false
	}

	if s.haveLast {
		if !packetCounterAdvanced(s.lastPacketCounter, h.PacketCounter) {
			add("E25", "packet_counter %d did not advance from %d (and is not a valid wrap)", h.PacketCounter, s.lastPacketCounter)
		}
	}

	s.lastOrbit = h.Orbit
	s.lastPacketCounter = h.PacketCounter
	s.lastDetectorField = h.DetectorField
	s.lastTriggerType = h.TriggerType
	s.lastFeeID = h.FeeID
	s.haveLast = true

	return errs
}

// packetCounterAdvanced reports whether next is a legal successor to prev:
// either a plain increment, or a wrap back to a value < 3 (spec.md
// §4.3.1: "packet_counter must monotonically increase or, on wrap, be < 3").
func packetCounterAdvanced(prev, next uint8) bool {
	if next > prev {
		return true
	}
	return next < 3
}
