package gbtword

// Class is the lane class a data-word ID belongs to, per spec.md §4.3.3.
type Class int

const (
	ClassUnknown Class = iota
	ClassIB
	ClassML
	ClassOL
)

func (c Class) String() string {
	switch c {
	case ClassIB:
		return "IB"
	case ClassML:
		return "ML"
	case ClassOL:
		return "OL"
	default:
		return "unknown"
	}
}

type byteRange struct{ lo, hi byte }

func (r byteRange) contains(b byte) bool { return b >= r.lo && b <= r.hi }

var ibRanges = []byteRange{{0x20, 0x28}}

var mlRanges = []byteRange{
	{0x43, 0x46}, {0x48, 0x4B}, {0x53, 0x56}, {0x58, 0x5B},
}

var olRanges = []byteRange{
	{0x40, 0x46}, {0x48, 0x4E}, {0x50, 0x56}, {0x58, 0x5E},
}

// ClassifyData classifies a data-word ID byte into IB/ML/OL, or
// ClassUnknown when it falls in none of the declared ranges (a sanity
// error, E70, at the call site).
//
// The ML and OL ranges overlap (e.g. 0x43 is valid for both); a data word's
// class is therefore only fully resolved in context of the enclosing
// stave's layer, which the caller (validator) already knows. ClassifyData
// returns only the first matching class, tried in the order IB, ML, OL, so
// an id valid for both ML and OL reports ML; ValidForClass checks an id
// against one given class.
func ClassifyData(id byte) Class {
	for _, r := range ibRanges {
		if r.contains(id) {
			return ClassIB
		}
	}
	for _, r := range mlRanges {
		if r.contains(id) {
			return ClassML
		}
	}
	for _, r := range olRanges {
		if r.contains(id) {
			return ClassOL
		}
	}
	return ClassUnknown
}

// ValidForClass reports whether id is a legal data-word id for the given
// lane class specifically (layer-aware check, used once the validator knows
// which layer a stave belongs to).
func ValidForClass(id byte, class Class) bool {
	var ranges []byteRange
	switch class {
	case ClassIB:
		ranges = ibRanges
	case ClassML:
		ranges = mlRanges
	case ClassOL:
		ranges = olRanges
	default:
		return false
	}
	for _, r := range ranges {
		if r.contains(id) {
			return true
		}
	}
	return false
}
