package rdh

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRDH() RDH {
	return RDH{
		HeaderID:      6,
		HeaderSize:    Size,
		FeeID:         uint16(3)<<8 | 12,
		SystemID:      0x20,
		OffsetToNext:  64,
		MemorySize:    0,
		LinkID:        0,
		PacketCounter: 0,
		Orbit:         100,
		BC:            10,
		TriggerType:   1,
		PagesCounter:  0,
		StopBit:       0,
		DetectorField: 0,
		DataFormat:    2,
	}
}

func TestRoundTrip(t *testing.T) {
	h := validRDH()
	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, Size, n)
	require.Equal(t, Size, buf.Len())

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestReadFromEOF(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadFromTruncated(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader(make([]byte, 10)))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestLayerStave(t *testing.T) {
	h := validRDH()
	require.EqualValues(t, 3, h.Layer())
	require.EqualValues(t, 12, h.Stave())
	require.Equal(t, "L3_12", h.StaveString())
}

func TestSanityClean(t *testing.T) {
	h := validRDH()
	require.Empty(t, h.Sanity(0))
}

func TestSanityViolations(t *testing.T) {
	h := validRDH()
	h.HeaderSize = 10
	h.BC = BCLimit
	h.TriggerType = 0
	h.DataFormat = 9
	errs := h.Sanity(0x40)
	require.Len(t, errs, 4)
}

func TestPayloadLenOutOfRange(t *testing.T) {
	h := validRDH()
	h.OffsetToNext = 40 // < Size
	errs := h.Sanity(0)
	require.NotEmpty(t, errs)
}
