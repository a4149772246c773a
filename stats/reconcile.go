package stats

import (
	"fmt"

	"github.com/itsdaq/rdhscan/config"
)

// Reconcile compares got against want, the reference document loaded from
// --input-stats-file, and returns one error per mismatched recognised
// counter (spec.md §4.4: "if a reference stats file is supplied, compares
// every recognised counter and emits one error per mismatch"). Zero-valued
// fields in want are treated as genuinely expected zero, not "unset" —
// reconciliation is only invoked when the caller explicitly asked for it.
func Reconcile(got, want config.StatsDoc) []error {
	var errs []error
	check := func(name string, got, want uint64) {
		if got != want {
			errs = append(errs, fmt.Errorf("stats mismatch: %s got %d, expected %d", name, got, want))
		}
	}
	check("total_rdhs", got.TotalRDHs, want.TotalRDHs)
	check("total_hbfs", got.TotalHBFs, want.TotalHBFs)
	check("total_errors", got.TotalErrors, want.TotalErrors)
	if got.SystemID != want.SystemID {
		errs = append(errs, fmt.Errorf("stats mismatch: system_id got %d, expected %d", got.SystemID, want.SystemID))
	}
	if !uint8SetEqual(got.LinksObserved, want.LinksObserved) {
		errs = append(errs, fmt.Errorf("stats mismatch: links_observed got %v, expected %v", got.LinksObserved, want.LinksObserved))
	}
	if !uint16SetEqual(got.FEEsObserved, want.FEEsObserved) {
		errs = append(errs, fmt.Errorf("stats mismatch: fees_observed got %v, expected %v", got.FEEsObserved, want.FEEsObserved))
	}
	if !stringSetEqual(got.LayersStaves, want.LayersStaves) {
		errs = append(errs, fmt.Errorf("stats mismatch: layers_staves_observed got %v, expected %v", got.LayersStaves, want.LayersStaves))
	}
	if !uint32SetEqual(got.TriggerTypes, want.TriggerTypes) {
		errs = append(errs, fmt.Errorf("stats mismatch: trigger_types_observed got %v, expected %v", got.TriggerTypes, want.TriggerTypes))
	}
	return errs
}

func uint8SetEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint16SetEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint32SetEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
