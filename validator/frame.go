package validator

import "github.com/itsdaq/rdhscan/gbtword"

// frameAccumulator collects the data words of one in-progress readout frame
// (the span between a TDH/continuation-TDH and its closing TDT), so the
// ALPIDE checks (spec.md §4.3.4) can run once the TDT arrives.
type frameAccumulator struct {
	words []gbtword.DataWord
}

func newFrameAccumulator() *frameAccumulator {
	return &frameAccumulator{}
}

func (f *frameAccumulator) add(w gbtword.DataWord) { f.words = append(f.words, w) }

func (f *frameAccumulator) empty() bool { return len(f.words) == 0 }

func (f *frameAccumulator) reset() { f.words = f.words[:0] }

// Words returns the accumulated data words of the current frame.
func (f *frameAccumulator) Words() []gbtword.DataWord { return f.words }
