package cdp

import (
	"bufio"
	"io"
	"sync"

	"github.com/itsdaq/rdhscan/internal/rerr"
	"github.com/itsdaq/rdhscan/internal/rlog"
	"github.com/itsdaq/rdhscan/rdh"
)

// Counters tracks accepted vs. filtered records separately, as spec.md
// §4.1 requires ("counters for filtered records are separated from
// counters for accepted records").
type Counters struct {
	Accepted uint64
	Filtered uint64
	Bytes    uint64
}

// Scanner is the lazy, finite, non-restartable sequence of CDPs described in
// spec.md §4.1. It is not safe for concurrent use; exactly one goroutine
// (the Reader stage) owns it.
type Scanner struct {
	r      *bufio.Reader
	opts   options
	offset uint64

	firstHeaderID    uint8
	haveFirstHeader  bool
	done             bool

	Counters Counters

	pool sync.Pool
}

// NewScanner wraps r (already unwrapped from its file/stdin source by the
// caller) in a Scanner.
func NewScanner(r io.Reader, opts ...Option) *Scanner {
	return &Scanner{
		r:    bufio.NewReaderSize(r, 64*1024),
		opts: applyOptions(opts...),
	}
}

// getBuf returns a payload-length buffer, reusing a pooled one of large
// enough capacity when available (spec.md §5's "optional per-validator
// free-list", centralised here since payloads are allocated before
// routing).
func (s *Scanner) getBuf(n int) []byte {
	if v := s.pool.Get(); v != nil {
		b := v.([]byte)
		if cap(b) >= n {
			return b[:n]
		}
	}
	return make([]byte, n)
}

// Offset reports the running byte offset of the next read (i.e. the
// position one past everything consumed so far), for callers like the view
// layer's RDH-only walk that need the start offset before reading the next
// record.
func (s *Scanner) Offset() uint64 { return s.offset }

// Release returns a CDP's payload buffer to the pool. Callers that need to
// retain Payload past this call must not call Release.
func (s *Scanner) Release(c CDP) {
	if c.Payload != nil {
		//nolint:staticcheck // intentionally pooling a slice header
		s.pool.Put(c.Payload[:0:cap(c.Payload)])
	}
}

// Next reads one RDH and its payload, returning io.EOF at a clean stream
// boundary. See spec.md §4.1 "Algorithm" and "Failure semantics".
func (s *Scanner) Next() (CDP, error) {
	if s.done {
		return CDP{}, io.EOF
	}

	startOffset := s.offset
	h, readerErrs, err := s.readRDH(startOffset)
	if err != nil {
		s.done = true
		return CDP{}, err
	}

	payloadLen := h.PayloadLen()
	if payloadLen < 0 || payloadLen > rdh.MaxPayload {
		s.done = true
		return CDP{}, rerr.NewFatal(startOffset, rdh.CodeCorruptOffset,
			"offset_to_next implies payload length %d outside [0,%d]", payloadLen, rdh.MaxPayload)
	}

	buf := s.getBuf(payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(s.r, buf); err != nil {
			s.done = true
			return CDP{}, rerr.NewFatal(s.offset, rdh.CodeTruncatedRDH,
				"short read of %d-byte payload: %v", payloadLen, err)
		}
	}
	s.offset += uint64(payloadLen)

	keep := s.opts.keep(h)
	if keep {
		s.Counters.Accepted++
	} else {
		s.Counters.Filtered++
	}
	s.Counters.Bytes += uint64(rdh.Size + payloadLen)

	return CDP{RDH: h, Payload: buf, Offset: startOffset, Filtered: !keep, ReaderErrors: readerErrs}, nil
}

// NextRDHOnly reads and returns only the next RDH, skipping (discarding)
// its payload bytes without allocating them — the "skip-payload variant"
// spec.md §4.1 names for view modes that never need payload bytes.
func (s *Scanner) NextRDHOnly() (rdh.RDH, error) {
	if s.done {
		return rdh.RDH{}, io.EOF
	}
	startOffset := s.offset
	h, _, err := s.readRDH(startOffset)
	if err != nil {
		s.done = true
		return rdh.RDH{}, err
	}
	payloadLen := h.PayloadLen()
	if payloadLen < 0 || payloadLen > rdh.MaxPayload {
		s.done = true
		return rdh.RDH{}, rerr.NewFatal(startOffset, rdh.CodeCorruptOffset,
			"offset_to_next implies payload length %d outside [0,%d]", payloadLen, rdh.MaxPayload)
	}
	if payloadLen > 0 {
		n, err := io.CopyN(io.Discard, s.r, int64(payloadLen))
		if err != nil || n != int64(payloadLen) {
			s.done = true
			return rdh.RDH{}, rerr.NewFatal(s.offset, rdh.CodeTruncatedRDH,
				"short read of %d-byte payload while skipping", payloadLen)
		}
	}
	s.offset += uint64(payloadLen)
	return h, nil
}

// readRDH reads one 64-byte header, applies the first-header-id latch, and
// advances the running offset. It returns any non-fatal header_id mismatch
// as a reader error alongside the header.
func (s *Scanner) readRDH(at uint64) (rdh.RDH, []error, error) {
	h, err := rdh.ReadFrom(s.r)
	if err != nil {
		if err == io.EOF {
			// Clean end of stream at an RDH boundary.
			return rdh.RDH{}, nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return rdh.RDH{}, nil, rerr.NewFatal(at, rdh.CodeTruncatedRDH, "truncated RDH at offset %#x", at)
		}
		return rdh.RDH{}, nil, err
	}
	s.offset += uint64(rdh.Size)

	if !s.haveFirstHeader {
		if !rdh.IsSupportedHeaderID(h.HeaderID) {
			return rdh.RDH{}, nil, rerr.NewFatal(at, rdh.CodeUnsupportedHeaderVersion,
				"unsupported header_id %d, expected one of %v", h.HeaderID, rdh.SupportedHeaderIDs)
		}
		s.firstHeaderID = h.HeaderID
		s.haveFirstHeader = true
		return h, nil, nil
	}
	if h.HeaderID != s.firstHeaderID {
		err := rerr.New(at, rdh.CodeHeaderIDMismatch, "header_id %d != first-seen %d", h.HeaderID, s.firstHeaderID)
		rlog.Trace(rlog.Reader, "%s", err.Error())
		return h, []error{err}, nil
	}
	return h, nil, nil
}
