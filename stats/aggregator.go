package stats

import (
	"sort"

	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/internal/shutdown"
)

// Aggregator is the single-threaded sink spec.md §4.4 describes: it owns
// every counter, the bounded error buffer, and the inferred system_id, and
// is driven entirely by Consume calls from the Dispatcher's merged output
// channel (spec.md §5: "one Stats aggregator").
type Aggregator struct {
	maxErrors uint64
	shutdown  *shutdown.Flag

	totalRDHs   uint64
	totalHBFs   uint64
	totalCDPs   uint64
	totalErrors uint64
	droppedErrs uint64

	links        map[uint8]bool
	fees         map[uint16]bool
	layersStaves map[string]bool
	triggerTypes map[uint32]bool
	systemIDs    map[uint8]uint64
	alpideFlags  map[string]uint64

	errs []Record
}

// NewAggregator builds an Aggregator. maxErrors is the --tolerate-max-errors
// bound (0 means unlimited); sd, if non-nil, is requested to shut down the
// pipeline once the bound is exceeded (spec.md §5 "Resource policy").
func NewAggregator(maxErrors uint64, sd *shutdown.Flag) *Aggregator {
	return &Aggregator{
		maxErrors:    maxErrors,
		shutdown:     sd,
		links:        make(map[uint8]bool),
		fees:         make(map[uint16]bool),
		layersStaves: make(map[string]bool),
		triggerTypes: make(map[uint32]bool),
		systemIDs:    make(map[uint8]uint64),
		alpideFlags:  make(map[string]uint64),
	}
}

// Consume folds one Record into the running counters.
func (a *Aggregator) Consume(r Record) {
	switch r.Kind {
	case KindRdhSeen:
		a.totalRDHs++
	case KindCDPSeen:
		a.totalCDPs++
	case KindHbfSeen:
		a.totalHBFs++
	case KindLinkObserved:
		a.links[r.Link] = true
	case KindFeeObserved:
		a.fees[r.Fee] = true
	case KindLayerStaveObserved:
		a.layersStaves[staveKey(r.Layer, r.Stave)] = true
	case KindTriggerType:
		a.triggerTypes[r.TriggerType] = true
	case KindSystemID:
		a.systemIDs[r.SystemID]++
	case KindAlpideFlag:
		a.alpideFlags[r.FlagName]++
	case KindError:
		a.totalErrors++
		if a.maxErrors > 0 && uint64(len(a.errs)) >= a.maxErrors {
			a.droppedErrs++
			if a.shutdown != nil {
				a.shutdown.Request()
			}
			return
		}
		a.errs = append(a.errs, r)
	}
}

// SortedErrors returns every retained error Record in ascending byte-offset
// order (spec.md §5: "rendered in ascending byte-offset order ... so the
// human-visible report is deterministic even though runtime is parallel").
func (a *Aggregator) SortedErrors() []Record {
	out := append([]Record(nil), a.errs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// DroppedErrors is the count of errors discarded once maxErrors was hit.
func (a *Aggregator) DroppedErrors() uint64 { return a.droppedErrs }

// InferredSystemID returns the most frequently observed system_id, and
// false if none was ever recorded.
func (a *Aggregator) InferredSystemID() (uint8, bool) {
	var best uint8
	var bestCount uint64
	found := false
	for id, n := range a.systemIDs {
		if !found || n > bestCount || (n == bestCount && id < best) {
			best, bestCount, found = id, n, true
		}
	}
	return best, found
}

func staveKey(layer, stave uint8) string {
	return layerStaveString(layer, stave)
}

// Document snapshots the aggregator's counters into the flat StatsDoc used
// by --output-stats and reconciliation.
func (a *Aggregator) Document() config.StatsDoc {
	doc := config.StatsDoc{
		TotalRDHs:       a.totalRDHs,
		TotalHBFs:       a.totalHBFs,
		TotalErrors:     a.totalErrors,
		AlpideFlagCount: make(map[string]uint64, len(a.alpideFlags)),
	}
	if id, ok := a.InferredSystemID(); ok {
		doc.SystemID = id
	}
	for l := range a.links {
		doc.LinksObserved = append(doc.LinksObserved, l)
	}
	sort.Slice(doc.LinksObserved, func(i, j int) bool { return doc.LinksObserved[i] < doc.LinksObserved[j] })
	for f := range a.fees {
		doc.FEEsObserved = append(doc.FEEsObserved, f)
	}
	sort.Slice(doc.FEEsObserved, func(i, j int) bool { return doc.FEEsObserved[i] < doc.FEEsObserved[j] })
	for ls := range a.layersStaves {
		doc.LayersStaves = append(doc.LayersStaves, ls)
	}
	sort.Strings(doc.LayersStaves)
	for t := range a.triggerTypes {
		doc.TriggerTypes = append(doc.TriggerTypes, t)
	}
	sort.Slice(doc.TriggerTypes, func(i, j int) bool { return doc.TriggerTypes[i] < doc.TriggerTypes[j] })
	for name, n := range a.alpideFlags {
		doc.AlpideFlagCount[name] = n
	}
	return doc
}
