package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/config"
)

func baseDoc() config.StatsDoc {
	return config.StatsDoc{
		TotalRDHs:     10,
		TotalHBFs:     2,
		TotalErrors:   0,
		LinksObserved: []uint8{0, 1, 2},
		FEEsObserved:  []uint16{0x300c},
		LayersStaves:  []string{"L3_12"},
		TriggerTypes:  []uint32{1},
		SystemID:      0x20,
	}
}

func TestReconcileNoMismatch(t *testing.T) {
	d := baseDoc()
	require.Empty(t, Reconcile(d, d))
}

func TestReconcileCounterMismatch(t *testing.T) {
	got := baseDoc()
	want := baseDoc()
	want.TotalRDHs = 11
	errs := Reconcile(got, want)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "total_rdhs")
}

func TestReconcileSetMismatch(t *testing.T) {
	got := baseDoc()
	want := baseDoc()
	want.LinksObserved = []uint8{0, 1}
	errs := Reconcile(got, want)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "links_observed")
}

func TestReconcileMultipleMismatches(t *testing.T) {
	got := baseDoc()
	want := baseDoc()
	want.SystemID = 0x21
	want.TotalErrors = 5
	errs := Reconcile(got, want)
	require.Len(t, errs, 2)
}
