// Package stats defines the tagged Record variant validators emit
// (spec.md §3 "Stats record") and the Aggregator that merges, orders, and
// reports them (spec.md §4.4).
package stats

import "fmt"

// Kind tags a Record's variant.
type Kind int

const (
	KindRdhSeen Kind = iota
	KindLinkObserved
	KindFeeObserved
	KindLayerStaveObserved
	KindHbfSeen
	KindTriggerType
	KindSystemID
	KindError
	KindAlpideFlag
	KindCDPSeen
	KindTriggerPHT
)

// Record is a single stats event produced by a validator and consumed
// exactly once by the Aggregator. Only the fields relevant to Kind are
// populated; this mirrors the source's tagged-union Stats record (spec.md
// §3) as a flat Go struct rather than an interface, since every variant is
// a handful of scalar fields and a sum-type-via-interface would only add
// type assertions at the one place (Aggregator.Consume) that reads Kind.
type Record struct {
	Kind Kind

	Link  uint8
	Fee   uint16
	Layer uint8
	Stave uint8

	TriggerType uint32
	SystemID    uint8

	// Error fields (Kind == KindError)
	Offset uint64
	Code   string
	Msg    string

	// AlpideFlag fields (Kind == KindAlpideFlag)
	FlagName string
}

// layerStaveString renders the LX_YZ form the Aggregator's observed-set
// map keys (layer, stave) on.
func layerStaveString(layer, stave uint8) string {
	return fmt.Sprintf("L%d_%02d", layer, stave)
}
