package stats

import "github.com/itsdaq/rdhscan/config"

// Summary is the read-only snapshot handed to the report package once the
// stream has fully drained: the aggregator's counters, its retained errors
// in offset order, and the outcome of any reference-stats reconciliation.
type Summary struct {
	Doc            config.StatsDoc
	Errors         []Record
	DroppedErrors  uint64
	Reconciliation []error
}

// Summarize finalizes a, optionally reconciling against reference (nil to
// skip reconciliation).
func Summarize(a *Aggregator, reference *config.StatsDoc) Summary {
	doc := a.Document()
	s := Summary{
		Doc:           doc,
		Errors:        a.SortedErrors(),
		DroppedErrors: a.DroppedErrors(),
	}
	if reference != nil {
		s.Reconciliation = Reconcile(doc, *reference)
	}
	return s
}
