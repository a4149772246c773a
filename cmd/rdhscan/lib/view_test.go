package lib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/view"
)

func TestRenderRDHsWritesOneRowPerHeader(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size, LinkID: 2}))
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size, LinkID: 7}))

	var out bytes.Buffer
	err := RenderRDHs(&stream, nil, view.SizeBytes, &out)
	require.NoError(t, err)
	lines := bytes.Count(out.Bytes(), []byte("\n"))
	require.Equal(t, 3, lines) // header + 2 rows
}

func TestRenderRDHsAppliesFilter(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size, LinkID: 2}))
	stream.Write(rdhBytes(t, rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size, LinkID: 7}))

	var out bytes.Buffer
	err := RenderRDHs(&stream, func(h rdh.RDH) bool { return h.LinkID == 7 }, view.SizeBytes, &out)
	require.NoError(t, err)
	require.NotContains(t, out.String(), "\t2\t")
}
