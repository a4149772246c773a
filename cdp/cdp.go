// Package cdp implements the zero-copy input scanner: it deserialises RDHs
// and their bounded payloads from a byte stream while tracking a running
// byte offset, exactly as spec.md §4.1 describes. Grounded on the teacher's
// util.LdRead (size-prefixed section reads with explicit offset
// bookkeeping) and car.CarReader.Next (RDH/CID-analogue plus payload pair,
// one Next() call per record).
package cdp

import "github.com/itsdaq/rdhscan/rdh"

// CDP is one CRU Data Packet: an RDH plus its payload bytes. Payload stays
// valid until the CDP is handed back with Scanner.Release, after which a
// later Next may reuse the buffer; callers that release it and still need
// the bytes must copy them first.
type CDP struct {
	RDH     rdh.RDH
	Payload []byte
	// Offset is the byte offset of RDH's first byte in the source stream.
	Offset uint64
	// Filtered is true when the scanner's keep predicate rejected this
	// RDH; Payload is still populated (read, to preserve positional
	// semantics) but the caller should typically skip processing it.
	Filtered bool
	// ReaderErrors holds non-fatal issues the scanner itself detected
	// while producing this record (currently: header_id not matching the
	// first RDH's, spec.md §4.1's "SanityError but continue").
	ReaderErrors []error
}
