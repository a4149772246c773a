package gbtword

import "encoding/binary"

const (
	tdhFlagInternalTrigger = 1 << 0
	tdhFlagNoData          = 1 << 1
	tdhFlagContinuation    = 1 << 2
)

// TDH decodes a Trigger Data Header (ID 0xE8).
type TDH struct{ Raw10 }

func AsTDH(w Raw10) TDH { return TDH{w} }

// TriggerBC is the trigger bunch-crossing counter, 12 bits wide to match
// the RDH bc field's domain.
func (w TDH) TriggerBC() uint16 {
	return binary.LittleEndian.Uint16(w.Raw10[0:2]) & 0x0FFF
}

func (w TDH) flags() byte { return w.Raw10[8] }

// Continuation reports whether this TDH continues a readout frame split
// across CDPs (spec.md §4.3.2 continuation sub-region).
func (w TDH) Continuation() bool { return w.flags()&tdhFlagContinuation != 0 }

// NoData reports whether this TDH announces an empty trigger (no data words
// follow before the next control word).
func (w TDH) NoData() bool { return w.flags()&tdhFlagNoData != 0 }

// InternalTrigger reports the internal_trigger flag.
func (w TDH) InternalTrigger() bool { return w.flags()&tdhFlagInternalTrigger != 0 }
