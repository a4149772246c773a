// Package rdh implements the Readout Data Header: the 64-byte record, laid
// out as four 16-byte sub-headers (RDH0..RDH3), that frames every CDP in the
// stream. Decode/Encode are grounded on the teacher's manual
// encoding/binary-based framing in util/util.go (LdRead/LdWrite), adapted
// from a varint-length prefix to RDHscan's fixed 64-byte header.
package rdh

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Size is the fixed RDH length in bytes.
const Size = 64

// MaxPayload is the largest payload offset_to_next may imply: 20544-64.
const MaxPayload = 20480

// BCLimit is the exclusive upper bound on the bunch-crossing counter.
const BCLimit = 0xdeb

// RDH is the decoded 64-byte Readout Data Header. It is polymorphic over
// HeaderID (6 or 7 today); both versions share this field set and this
// accessor surface (spec.md §9 "the RDH type is polymorphic over
// header_id... implement as a small tagged variant with two concrete
// layouts, with a shared accessor interface"). The two layouts are
// identical at the byte level for every field this tool inspects, so a
// single struct with a HeaderID tag serves both; only Sanity's header_size
// expectation and any future version-specific field would need a switch.
type RDH struct {
	// RDH0
	HeaderID      uint8
	HeaderSize    uint8
	FeeID         uint16
	reserved0     uint8
	SystemID      uint8
	reserved1     uint16
	OffsetToNext  uint16
	MemorySize    uint16
	LinkID        uint8
	PacketCounter uint8
	reservedA     uint16

	// RDH1
	Orbit       uint32
	BC          uint16
	reservedB   uint16
	TriggerType uint32
	reservedC   uint32

	// RDH2
	PagesCounter uint16
	StopBit      uint8
	reservedD    uint8
	DetectorField uint32
	reservedF    [8]byte

	// RDH3
	DataFormat uint8
	reservedG  [15]byte
}

// Accessor is the shared read surface spec.md §9 calls for across the two
// header-id layouts.
type Accessor interface {
	Layer() uint8
	Stave() uint8
	PayloadLen() int
	String() string
}

var _ Accessor = RDH{}

// Layer returns bits 8..10 of FeeID — layer 0..6 (spec.md §3 "fee_id
// encodes layer 0..6 and stave 0..47").
func (h RDH) Layer() uint8 {
	return uint8((h.FeeID >> 8) & 0x7)
}

// Stave returns the low byte of FeeID — stave 0..47.
func (h RDH) Stave() uint8 {
	return uint8(h.FeeID & 0xff)
}

// PayloadLen is offset_to_next - 64, the number of payload bytes following
// this header.
func (h RDH) PayloadLen() int {
	return int(h.OffsetToNext) - Size
}

func (h RDH) String() string {
	return fmt.Sprintf("RDH{id=%d fee=0x%04x(L%d_%02d) link=%d orbit=%d page=%d stop=%d}",
		h.HeaderID, h.FeeID, h.Layer(), h.Stave(), h.LinkID, h.Orbit, h.PagesCounter, h.StopBit)
}

// StaveString renders the LX_YZ form used by --filter-its-stave and the
// view layer.
func (h RDH) StaveString() string {
	return fmt.Sprintf("L%d_%02d", h.Layer(), h.Stave())
}

// ReadFrom decodes exactly Size bytes from r into a new RDH. Short reads are
// reported as io.ErrUnexpectedEOF, except a clean zero-byte read at EOF
// which is surfaced as io.EOF so callers can distinguish "no more RDHs" from
// "RDH began but never finished" (spec.md §4.1 failure semantics).
func ReadFrom(r io.Reader) (RDH, error) {
	var buf [Size]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			return RDH{}, io.EOF
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return RDH{}, io.ErrUnexpectedEOF
		}
		return RDH{}, err
	}
	return decode(buf[:]), nil
}

func decode(b []byte) RDH {
	le := binary.LittleEndian
	var h RDH
	h.HeaderID = b[0]
	h.HeaderSize = b[1]
	h.FeeID = le.Uint16(b[2:4])
	h.reserved0 = b[4]
	h.SystemID = b[5]
	h.reserved1 = le.Uint16(b[6:8])
	h.OffsetToNext = le.Uint16(b[8:10])
	h.MemorySize = le.Uint16(b[10:12])
	h.LinkID = b[12]
	h.PacketCounter = b[13]
	h.reservedA = le.Uint16(b[14:16])

	h.Orbit = le.Uint32(b[16:20])
	h.BC = le.Uint16(b[20:22])
	h.reservedB = le.Uint16(b[22:24])
	h.TriggerType = le.Uint32(b[24:28])
	h.reservedC = le.Uint32(b[28:32])

	h.PagesCounter = le.Uint16(b[32:34])
	h.StopBit = b[34]
	h.reservedD = b[35]
	h.DetectorField = le.Uint32(b[36:40])
	copy(h.reservedF[:], b[40:48])

	h.DataFormat = b[48]
	copy(h.reservedG[:], b[49:64])
	return h
}

// WriteTo encodes h back to its 64-byte wire form. ReadFrom -> WriteTo is
// the identity round-trip spec.md §8 requires.
func (h RDH) WriteTo(w io.Writer) (int64, error) {
	var buf [Size]byte
	le := binary.LittleEndian
	buf[0] = h.HeaderID
	buf[1] = h.HeaderSize
	le.PutUint16(buf[2:4], h.FeeID)
	buf[4] = h.reserved0
	buf[5] = h.SystemID
	le.PutUint16(buf[6:8], h.reserved1)
	le.PutUint16(buf[8:10], h.OffsetToNext)
	le.PutUint16(buf[10:12], h.MemorySize)
	buf[12] = h.LinkID
	buf[13] = h.PacketCounter
	le.PutUint16(buf[14:16], h.reservedA)

	le.PutUint32(buf[16:20], h.Orbit)
	le.PutUint16(buf[20:22], h.BC)
	le.PutUint16(buf[22:24], h.reservedB)
	le.PutUint32(buf[24:28], h.TriggerType)
	le.PutUint32(buf[28:32], h.reservedC)

	le.PutUint16(buf[32:34], h.PagesCounter)
	buf[34] = h.StopBit
	buf[35] = h.reservedD
	le.PutUint32(buf[36:40], h.DetectorField)
	copy(buf[40:48], h.reservedF[:])

	buf[48] = h.DataFormat
	copy(buf[49:64], h.reservedG[:])

	n, err := w.Write(buf[:])
	return int64(n), err
}
