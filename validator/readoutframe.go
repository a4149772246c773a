package validator

import "github.com/itsdaq/rdhscan/gbtword"

// ReadoutFrame is the closed unit the view layer renders one row per
// (spec.md §3 "Readout frame", §8 scenario 3's per-frame table): the data
// words bracketed by a TDH/continuation-TDH and its closing TDT.
type ReadoutFrame struct {
	TriggerBC    uint16
	BunchCounter uint16
	Words        []gbtword.DataWord
	LaneFaults   uint32
}

// chipIDs returns the distinct chip ids present in the frame, in first-seen
// order, for the ALPIDE chip-order check.
func (f ReadoutFrame) chipIDs() []uint8 {
	seen := make(map[uint8]bool)
	var ids []uint8
	for _, w := range f.Words {
		id := w.ChipID()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
