package gbtword

import "encoding/binary"

const tdtFlagPacketDone = 1 << 0

// TDT decodes a Trigger Data Trailer (ID 0xF0): the frame-closing word that
// carries per-lane fault flags and the packet_done bit.
type TDT struct{ Raw10 }

func AsTDT(w Raw10) TDT { return TDT{w} }

// PacketDone reports whether this TDT closes the readout frame
// (spec.md §4.3.2: packet_done=1 means the next control word starts a new
// frame; packet_done=0 means the frame continues in a continuation page).
func (w TDT) PacketDone() bool {
	return w.Raw10[8]&tdtFlagPacketDone != 0
}

// laneFaults is the 32-bit bitmap of lanes that self-reported a fault in
// this frame (spec.md §4.3.4 "lanes that self-report 'fatal' status in
// their TDT/DDW are excluded from the required set").
func (w TDT) laneFaults() uint32 {
	return binary.LittleEndian.Uint32(w.Raw10[0:4])
}

// LaneFault reports whether lane reported a fatal error in this frame.
func (w TDT) LaneFault(lane int) bool {
	return w.laneFaults()&(1<<uint(lane)) != 0
}

// LaneFaultsMask returns the full 32-bit self-reported lane-fault bitmap.
func (w TDT) LaneFaultsMask() uint32 { return w.laneFaults() }
