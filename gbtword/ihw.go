package gbtword

import "encoding/binary"

// activeLanesMask covers the largest lane count among IB/ML/OL (14, OL),
// rounded up to a full nibble-friendly 28-bit field so every stave's full
// lane bitmap fits regardless of layer.
const activeLanesMask = 0x0FFFFFFF

// IHW decodes an ITS Header Word (ID 0xE0): the active_lanes bitfield that
// opens every readout frame.
type IHW struct{ Raw10 }

func AsIHW(w Raw10) IHW { return IHW{w} }

// ActiveLanes returns the bitmap of lanes participating in this frame, one
// bit per lane id, bit i set meaning lane i is active.
func (w IHW) ActiveLanes() uint32 {
	return binary.LittleEndian.Uint32(w.Raw10[0:4]) & activeLanesMask
}

// LaneActive reports whether lane is set in ActiveLanes.
func (w IHW) LaneActive(lane int) bool {
	return w.ActiveLanes()&(1<<uint(lane)) != 0
}
