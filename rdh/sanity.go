package rdh

import "github.com/itsdaq/rdhscan/internal/rerr"

// Sanity performs the per-RDH structural checks that do not depend on any
// other RDH: header_size, reserved-zero, bc range, trigger_type spare bits,
// data_format range, stop_bit domain (spec.md §3 invariants). Running checks
// that compare against the previous RDH live in package validator (§4.3.1).
func (h RDH) Sanity(offset uint64) []error {
	var errs []error
	add := func(code, format string, args ...interface{}) {
		errs = append(errs, rerr.New(offset, code, format, args...))
	}

	if h.HeaderSize != Size {
		add("E10", "header_size %d != %d", h.HeaderSize, Size)
	}
	if h.reserved0 != 0 || h.reserved1 != 0 || h.reservedA != 0 {
		add("E11", "RDH0 reserved bits non-zero")
	}
	if h.reservedB != 0 || h.reservedC != 0 {
		add("E12", "RDH1 reserved bits non-zero")
	}
	if h.reservedD != 0 || !isZero(h.reservedF[:]) {
		add("E13", "RDH2 reserved bits non-zero")
	}
	if !isZero(h.reservedG[:]) {
		add("E14", "RDH3 reserved bits non-zero")
	}
	if h.BC >= BCLimit {
		add("E15", "bc 0x%x >= 0x%x", h.BC, BCLimit)
	}
	if h.TriggerType == 0 {
		add("E16", "trigger_type must be >= 1")
	}
	if h.TriggerType&triggerTypeSpareMask != 0 {
		add("E17", "trigger_type spare bits set: 0x%x", h.TriggerType)
	}
	if h.DataFormat > 2 {
		add("E18", "data_format %d out of range [0,2]", h.DataFormat)
	}
	if h.StopBit != 0 && h.StopBit != 1 {
		add("E19", "stop_bit %d not in {0,1}", h.StopBit)
	}
	if pl := h.PayloadLen(); pl < 0 || pl > MaxPayload {
		add("E1A", "payload length %d out of range [0,%d]", pl, MaxPayload)
	}
	return errs
}

// triggerTypeSpareMask marks the bits spec.md documents as spare (unused)
// within the 32-bit trigger_type bitfield; the 20 low bits are the defined
// trigger classes (PHYSICS, PP, TF, ...), the top 12 are spare and must be
// zero.
const triggerTypeSpareMask = 0xfff00000

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
