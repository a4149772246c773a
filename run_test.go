package rdhscan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/rdh"
)

func rdhBytes(t *testing.T, h rdh.RDH) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := h.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRunCountsRDHsAcrossLinks(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, FeeID: 0, LinkID: 0, OffsetToNext: rdh.Size, StopBit: 1, PagesCounter: 0}))
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, FeeID: 0, LinkID: 1, OffsetToNext: rdh.Size, StopBit: 1, PagesCounter: 0}))

	summary, err := Run(&stream)
	require.NoError(t, err)
	require.EqualValues(t, 2, summary.Doc.TotalRDHs)
	require.Equal(t, []uint8{0, 1}, summary.Doc.LinksObserved)
}

func TestRunAppliesKeepFilter(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, FeeID: 0, LinkID: 0, OffsetToNext: rdh.Size, StopBit: 1}))
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, FeeID: 0, LinkID: 5, OffsetToNext: rdh.Size, StopBit: 1}))

	summary, err := Run(&stream, WithKeep(func(h rdh.RDH) bool { return h.LinkID == 5 }))
	require.NoError(t, err)
	require.Equal(t, []uint8{5}, summary.Doc.LinksObserved)
}

func TestRunReportsFatalStreamError(t *testing.T) {
	// A truncated RDH (fewer than rdh.Size bytes) is a fatal reader error.
	stream := bytes.NewReader(rdhBytes(t, rdh.RDH{HeaderID: 6})[:10])

	_, err := Run(stream)
	require.Error(t, err)
}
