// Package rdhscan verifies and inspects raw binary readout streams produced
// by a detector data-acquisition pipeline: a contiguous sequence of 64-byte
// Readout Data Headers (RDHs) each followed by a variable-size payload of
// 80-bit GBT words, described at https://github.com/AliceO2Group (the ITS
// readout protocol family).
//
// The package wires together four concurrent stages: cdp.Scanner (input),
// dispatch.Dispatcher (routing), validator.Validator (per-identity checks)
// and stats.Aggregator (merge + report). Run is the single entrypoint that
// assembles and drives the pipeline to completion.
package rdhscan
