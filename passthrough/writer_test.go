package passthrough

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/rdh"
)

func TestWriterSkipsFiltered(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	kept := cdp.CDP{RDH: rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size}}
	require.NoError(t, w.Write(kept))

	dropped := cdp.CDP{RDH: rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size}, Filtered: true}
	require.NoError(t, w.Write(dropped))

	require.EqualValues(t, 1, w.Written)
	require.EqualValues(t, 1, w.Dropped)
	require.Equal(t, rdh.Size, buf.Len())
}

func TestWriterPreservesPayloadBytes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	payload := []byte{1, 2, 3, 4}
	c := cdp.CDP{RDH: rdh.RDH{HeaderID: 6, HeaderSize: rdh.Size, OffsetToNext: rdh.Size + uint16(len(payload))}, Payload: payload}
	require.NoError(t, w.Write(c))

	require.Equal(t, rdh.Size+len(payload), buf.Len())
	require.Equal(t, payload, buf.Bytes()[rdh.Size:])
}
