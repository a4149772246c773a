package validator

import (
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/gbtword"
	"github.com/itsdaq/rdhscan/internal/rerr"
)

// alpideChecker runs the lane/chip-level checks spec.md §4.3.4 describes
// for `check all its-stave`: lane grouping, chip-id/order agreement,
// bunch-counter agreement across a frame, all gated on the frame's IHW
// active-lane bitmap with self-reported TDT/DDW faults excluded from the
// required set.
type alpideChecker struct {
	chipOrders  [][]uint8
	chipCountOB uint8
}

func newAlpideChecker(c *config.Checks) *alpideChecker {
	chipCount := c.ChipCountOB
	if chipCount == 0 {
		chipCount = 7
	}
	return &alpideChecker{chipOrders: c.EffectiveChipOrders(), chipCountOB: chipCount}
}

// LayerClass maps an RDH's fee_id-derived layer (0..6) to its lane class:
// layers 0..2 are Inner Barrel, 3..4 Middle, 5..6 Outer (spec.md §4.3.4
// groups checks by IB/ML/OL, but never states the layer->class mapping
// explicitly; this tool follows ALICE ITS's standard three-barrel layout).
func LayerClass(layer uint8) gbtword.Class {
	switch {
	case layer <= 2:
		return gbtword.ClassIB
	case layer <= 4:
		return gbtword.ClassML
	default:
		return gbtword.ClassOL
	}
}

// ibLaneGroups is the three legal 3-lane IB groupings (spec.md §4.3.4).
var ibLaneGroups = [][]uint8{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}

// requiredLaneCount is the expected lane count per class (spec.md §4.3.4:
// "IB frames must contain data from exactly 3 lanes ... ML: 8 lanes; OL:
// 14 lanes").
func requiredLaneCount(class gbtword.Class) int {
	switch class {
	case gbtword.ClassIB:
		return 3
	case gbtword.ClassML:
		return 8
	default:
		return 14
	}
}

// CheckFrame validates one closed readout frame belonging to a stave of the
// given layer. activeLanes is the IHW bitmap opening the frame; laneFaults
// is the TDT's self-reported fault bitmap for the same frame.
func (a *alpideChecker) CheckFrame(layer uint8, f ReadoutFrame, activeLanes, laneFaults uint32, offset uint64) []error {
	var errs []error
	class := LayerClass(layer)

	activeCount := popcount32(activeLanes)
	if activeCount != requiredLaneCount(class) {
		errs = append(errs, rerr.New(offset, "E79", "%s frame IHW reports %d active lanes, expected %d", class, activeCount, requiredLaneCount(class)))
	}
	if class == gbtword.ClassIB && activeCount == requiredLaneCount(class) && !matchesLaneGroup(activeLanes, ibLaneGroups) {
		errs = append(errs, rerr.New(offset, "E79", "IB lane set 0x%x is not one of the three legal 3-lane groups", activeLanes))
	}

	required := activeLanes &^ laneFaults

	if class == gbtword.ClassIB {
		// IB lanes arrive in ascending lane order with chip id == lane id
		// (spec.md §4.3.4), so the i-th required lane must be the i-th word.
		lanes := sortedLanes(required)
		for i, lane := range lanes {
			if i >= len(f.Words) {
				errs = append(errs, rerr.New(offset, "E77", "lane %d active in IHW and not fault-flagged has no data in frame", lane))
				continue
			}
			if chip := f.Words[i].ChipID(); chip != lane {
				errs = append(errs, rerr.New(offset, "E76", "IB lane %d carries chip id %d, expected chip id == lane id", lane, chip))
			}
		}
	} else {
		present := make(map[uint8]bool, len(f.Words))
		for _, w := range f.Words {
			present[laneOf(w, class)] = true
		}
		for lane := uint8(0); lane < 32; lane++ {
			if required&(1<<uint(lane)) == 0 {
				continue
			}
			if !present[lane] {
				errs = append(errs, rerr.New(offset, "E77", "lane %d active in IHW and not fault-flagged has no data in frame", lane))
			}
		}
		if len(f.Words) > 0 && !a.checkChipOrder(f.chipIDs()) {
			errs = append(errs, rerr.New(offset, "E76", "chip order %v matches none of the configured orderings", f.chipIDs()))
		}
	}

	if bc, ok := a.checkBunchCounter(f); !ok {
		errs = append(errs, rerr.New(offset, "E75", "bunch_counter mismatch within frame, saw %d and %d", f.Words[0].BunchCounter(), bc))
	}

	return errs
}

// sortedLanes returns the set bits of mask in ascending order.
func sortedLanes(mask uint32) []uint8 {
	var lanes []uint8
	for lane := uint8(0); lane < 32; lane++ {
		if mask&(1<<uint(lane)) != 0 {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// laneOf derives the ML/OL lane id a data word belongs to. The source has no
// surviving per-lane id field for these classes, so this tool falls back to
// chip id modulo the class's lane count, documented as an assumption in
// DESIGN.md. IB lanes are derived from word position instead (see CheckFrame).
func laneOf(w gbtword.DataWord, class gbtword.Class) uint8 {
	return w.ChipID() % uint8(requiredLaneCount(class))
}

// matchesLaneGroup reports whether required is exactly the bitmask of one
// of groups.
func matchesLaneGroup(required uint32, groups [][]uint8) bool {
	for _, g := range groups {
		var mask uint32
		for _, lane := range g {
			mask |= 1 << uint(lane)
		}
		if mask == required {
			return true
		}
	}
	return false
}

func popcount32(v uint32) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

// checkBunchCounter reports whether every data word in f shares the same
// bunch-counter value, and the first mismatching value it found (for the
// diagnostic) when it doesn't.
func (a *alpideChecker) checkBunchCounter(f ReadoutFrame) (uint16, bool) {
	if len(f.Words) == 0 {
		return 0, true
	}
	want := f.Words[0].BunchCounter()
	for _, w := range f.Words[1:] {
		if w.BunchCounter() != want {
			return w.BunchCounter(), false
		}
	}
	return 0, true
}

// checkChipOrder reports whether got matches one of the configured chip
// orderings as a subsequence (a frame may carry fewer chips than a full
// stave when lanes are masked off upstream).
func (a *alpideChecker) checkChipOrder(got []uint8) bool {
	for _, order := range a.chipOrders {
		if isSubsequence(got, order) {
			return true
		}
	}
	return false
}

func isSubsequence(sub, full []uint8) bool {
	i := 0
	for _, v := range full {
		if i < len(sub) && sub[i] == v {
			i++
		}
	}
	return i == len(sub)
}
