// Package report renders the final textual summary spec.md §4.4 and the
// §8 scenario outputs describe, writing a stats.Summary to an io.Writer.
// Thin by spec.md §1's "out of scope" framing for reporting polish, but
// fully implemented per SPEC_FULL.md §2.9.
package report

import (
	"fmt"
	"io"

	"github.com/itsdaq/rdhscan/stats"
)

// Write renders s as the plain-text report shown at the end of `check
// sanity|all[-stave]` runs.
func Write(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "Total RDHs: %d\n", s.Doc.TotalRDHs)
	fmt.Fprintf(w, "Total HBFs: %d\n", s.Doc.TotalHBFs)
	fmt.Fprintf(w, "Total errors: %d\n", s.Doc.TotalErrors)
	if s.DroppedErrors > 0 {
		fmt.Fprintf(w, "Errors dropped (tolerate-max-errors exceeded): %d\n", s.DroppedErrors)
	}
	fmt.Fprintf(w, "System ID: 0x%02x\n", s.Doc.SystemID)
	fmt.Fprintf(w, "Links observed: %v\n", s.Doc.LinksObserved)
	fmt.Fprintf(w, "FEEs observed: %v\n", s.Doc.FEEsObserved)
	fmt.Fprintf(w, "Layers/staves observed: %v\n", s.Doc.LayersStaves)
	fmt.Fprintf(w, "Trigger types observed: %v\n", s.Doc.TriggerTypes)

	if len(s.Doc.AlpideFlagCount) > 0 {
		fmt.Fprintln(w, "ALPIDE flags:")
		for name, n := range s.Doc.AlpideFlagCount {
			fmt.Fprintf(w, "  %s: %d\n", name, n)
		}
	}

	if len(s.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  %#x: [%s] %s\n", e.Offset, e.Code, e.Msg)
		}
	}

	if len(s.Reconciliation) > 0 {
		fmt.Fprintln(w, "Reference-stats mismatches:")
		for _, e := range s.Reconciliation {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}
