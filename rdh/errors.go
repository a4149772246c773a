package rdh

// SupportedHeaderIDs is the set of header_id values accepted on the very
// first RDH of a run (spec.md §4.1).
var SupportedHeaderIDs = [2]uint8{6, 7}

// IsSupportedHeaderID reports whether id is a recognised RDH version.
func IsSupportedHeaderID(id uint8) bool {
	for _, s := range SupportedHeaderIDs {
		if s == id {
			return true
		}
	}
	return false
}

// Error codes for the reader-level latch spec.md §4.1 describes: the first
// header_id observed must be 6 or 7 (fatal otherwise), and every subsequent
// RDH must match it (non-fatal "sanity" mismatch otherwise).
const (
	CodeUnsupportedHeaderVersion = "E01"
	CodeHeaderIDMismatch         = "E02"
	CodeTruncatedRDH             = "E03"
	CodeCorruptOffset            = "E04"
)
