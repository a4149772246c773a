package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/stats"
)

func TestWriteRendersTotalsAndErrors(t *testing.T) {
	s := stats.Summary{
		Doc: config.StatsDoc{
			TotalRDHs:     10,
			TotalHBFs:     2,
			TotalErrors:   1,
			LinksObserved: []uint8{0, 1},
			SystemID:      0x20,
		},
		Errors:        []stats.Record{{Offset: 0x40, Code: "E30", Msg: "expected TDH after IHW, got TDT"}},
		DroppedErrors: 3,
	}

	var buf bytes.Buffer
	Write(&buf, s)
	out := buf.String()

	require.Contains(t, out, "Total RDHs: 10")
	require.Contains(t, out, "Total HBFs: 2")
	require.Contains(t, out, "Errors dropped (tolerate-max-errors exceeded): 3")
	require.Contains(t, out, "System ID: 0x20")
	require.Contains(t, out, "0x40: [E30] expected TDH after IHW, got TDT")
}

func TestWriteOmitsOptionalSectionsWhenEmpty(t *testing.T) {
	s := stats.Summary{Doc: config.StatsDoc{}}
	var buf bytes.Buffer
	Write(&buf, s)
	out := buf.String()

	require.NotContains(t, out, "Errors dropped")
	require.NotContains(t, out, "ALPIDE flags:")
	require.NotContains(t, out, "Errors:")
	require.NotContains(t, out, "Reference-stats mismatches:")
}

func TestWriteRendersReconciliationMismatches(t *testing.T) {
	s := stats.Summary{
		Doc:            config.StatsDoc{},
		Reconciliation: []error{errString("total_rdhs mismatch")},
	}
	var buf bytes.Buffer
	Write(&buf, s)
	require.Contains(t, buf.String(), "Reference-stats mismatches:")
	require.Contains(t, buf.String(), "total_rdhs mismatch")
}

type errString string

func (e errString) Error() string { return string(e) }
