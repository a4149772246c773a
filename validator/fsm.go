package validator

import (
	"github.com/itsdaq/rdhscan/gbtword"
	"github.com/itsdaq/rdhscan/internal/rerr"
)

// State is one node of the ITS payload grammar (spec.md §4.3.2). Kept as an
// explicit enum rather than modelled with nested call/return, per spec.md
// §9's "Coroutine-style control flow" note: each ConsumeWord call is a
// single step that advances the FSM's stored state and returns zero-or-more
// errors, unit-testable in isolation.
type State int

const (
	StateIdle State = iota
	StateAwaitIHW // next word must be the page-opening IHW itself
	StateIHW      // IHW consumed, next word must be TDH
	StateTDH
	StateDATA
	StateTDT
	StateDDW0
	StateCIHW
	StateCTDH
	StateCDATA
	StateCTDT
	StateDDW0Only // forced by stop_bit=1 ∧ pages_counter>0 cross-level guard
	StateTerminal
)

func (s State) String() string {
	names := [...]string{"Idle", "AwaitIHW", "IHW", "TDH", "DATA", "TDT", "DDW0", "C_IHW", "C_TDH", "C_DATA", "C_TDT", "DDW0Only", "Terminal"}
	if int(s) < len(names) {
		return names[s]
	}
	return "?"
}

// FSM is the explicit-state payload grammar walker. One FSM instance lives
// per routing identity for the lifetime of the validator; its state
// carries across CDP boundaries within a heartbeat frame (spec.md §4.3.2).
type FSM struct {
	state State

	lastTDH  gbtword.TDH
	haveTDH  bool
	lastTDT  gbtword.TDT
	haveTDT  bool

	frame *frameAccumulator
}

func NewFSM() *FSM {
	return &FSM{state: StateIdle, frame: newFrameAccumulator()}
}

// StartCDP applies the CDP-boundary rules of spec.md §4.3.2: a fresh HBF
// page (stop_bit=0, pages_counter=0) forces IHW; the closing diagnostic
// page (stop_bit=1, pages_counter>0) forces the DDW0-only state; any other
// page simply continues the state the previous CDP left off in.
func (f *FSM) StartCDP(stopBit uint8, pagesCounter uint16, offset uint64) []error {
	var errs []error
	switch {
	case stopBit == 0 && pagesCounter == 0:
		f.state = StateAwaitIHW
	case stopBit == 1 && pagesCounter > 0:
		f.state = StateDDW0Only
	default:
		if f.state == StateIdle {
			errs = append(errs, rerr.New(offset, "E39", "payload page with pages_counter=%d stop_bit=%d seen before any IHW page", pagesCounter, stopBit))
			f.state = StateAwaitIHW
		}
	}
	return errs
}

// onAwaitIHW validates the page-opening word itself is an IHW before
// handing off to onIHW (which validates the word that follows it).
func (f *FSM) onAwaitIHW(id gbtword.ID, offset uint64) []error {
	if id != gbtword.IDIHW {
		f.state = StateIHW // best-effort: still expect a TDH next
		return []error{rerr.New(offset, "E30", "expected IHW to open page, got %s", id)}
	}
	f.state = StateIHW
	f.frame.reset()
	return nil
}

// isData reports whether id is any recognised IB/ML/OL data-word id.
func isData(id gbtword.ID) bool {
	return gbtword.ClassifyData(byte(id)) != gbtword.ClassUnknown
}

// ConsumeWord steps the FSM by exactly one GBT word, returning the errors
// (if any) produced at this step. word.ID() selects the transition; guard
// fields come from the previously stored TDH/TDT.
func (f *FSM) ConsumeWord(word gbtword.Raw10, offset uint64) []error {
	id := word.ID()
	switch f.state {
	case StateAwaitIHW:
		return f.onAwaitIHW(id, offset)
	case StateIHW:
		return f.onIHW(id, word, offset)
	case StateTDH:
		return f.onTDH(id, word, offset, false)
	case StateDATA:
		return f.onData(id, word, offset, false)
	case StateTDT:
		return f.onTDT(id, word, offset, false)
	case StateDDW0:
		return f.onStrayAfterTerminal(id, offset)
	case StateCIHW:
		return f.onCIHW(id, word, offset)
	case StateCTDH:
		return f.onTDH(id, word, offset, true)
	case StateCDATA:
		return f.onData(id, word, offset, true)
	case StateCTDT:
		return f.onTDT(id, word, offset, true)
	case StateDDW0Only:
		if id != gbtword.IDDDW0 {
			f.state = StateDDW0
			return []error{rerr.New(offset, "E60", "expected sole DDW0 word on closing page, got %s", id)}
		}
		f.state = StateTerminal
		return nil
	default:
		return []error{rerr.New(offset, "E99", "word %s seen in unexpected state %s", id, f.state)}
	}
}

func (f *FSM) onIHW(id gbtword.ID, word gbtword.Raw10, offset uint64) []error {
	if id != gbtword.IDTDH {
		return []error{rerr.New(offset, "E30", "expected TDH after IHW, got %s", id)}
	}
	f.lastTDH = gbtword.AsTDH(word)
	f.haveTDH = true
	f.state = StateTDH
	f.frame.reset()
	return nil
}

func (f *FSM) onCIHW(id gbtword.ID, word gbtword.Raw10, offset uint64) []error {
	if id != gbtword.IDTDH {
		return []error{rerr.New(offset, "E31", "expected TDH after continuation IHW, got %s", id)}
	}
	f.lastTDH = gbtword.AsTDH(word)
	f.haveTDH = true
	f.state = StateCTDH
	return nil
}

func (f *FSM) onTDH(id gbtword.ID, word gbtword.Raw10, offset uint64, continuation bool) []error {
	tdh := f.lastTDH
	if continuation {
		if !tdh.Continuation() {
			return []error{rerr.New(offset, "E43", "continuation TDH must have continuation=1")}
		}
		if isData(id) {
			f.state = StateCDATA
			f.frame.add(gbtword.AsDataWord(word))
			return nil
		}
		return []error{rerr.New(offset, "E42", "expected data word after continuation TDH, got %s", id)}
	}

	if !tdh.NoData() {
		if isData(id) {
			f.state = StateDATA
			f.frame.add(gbtword.AsDataWord(word))
			return nil
		}
		return []error{rerr.New(offset, "E40", "expected data word after TDH (no_data=0), got %s", id)}
	}

	switch id {
	case gbtword.IDTDH:
		if f.haveTDT && f.lastTDT.PacketDone() {
			f.lastTDH = gbtword.AsTDH(word)
			f.state = StateTDH
			f.frame.reset()
			return nil
		}
		return []error{rerr.New(offset, "E41", "TDH-after-TDH(no_data) requires previous TDT packet_done=1")}
	case gbtword.IDDDW0:
		f.state = StateDDW0
		return nil
	case gbtword.IDIHW:
		f.state = StateIHW
		f.frame.reset()
		return nil
	default:
		return []error{rerr.New(offset, "E99", "unrecognized word %s after TDH(no_data=1); best-effort staying in TDH", id)}
	}
}

func (f *FSM) onData(id gbtword.ID, word gbtword.Raw10, offset uint64, continuation bool) []error {
	if isData(id) {
		f.frame.add(gbtword.AsDataWord(word))
		return nil
	}
	if id == gbtword.IDTDT {
		f.lastTDT = gbtword.AsTDT(word)
		f.haveTDT = true
		var errs []error
		if f.frame.empty() {
			errs = append(errs, rerr.New(offset, "E51", "TDT closes readout frame with no data words"))
		}
		if continuation {
			f.state = StateCTDT
		} else {
			f.state = StateTDT
		}
		return errs
	}
	return []error{rerr.New(offset, "E99", "unrecognized word %s in DATA state; best-effort staying in DATA", id)}
}

func (f *FSM) onTDT(id gbtword.ID, word gbtword.Raw10, offset uint64, continuation bool) []error {
	tdt := f.lastTDT
	if !tdt.PacketDone() {
		if id != gbtword.IDIHW {
			return []error{rerr.New(offset, "E52", "expected continuation IHW after TDT(packet_done=0), got %s", id)}
		}
		f.lastTDH = gbtword.AsTDH(gbtword.Raw10{})
		f.state = StateCIHW
		return nil
	}
	switch id {
	case gbtword.IDTDH:
		f.lastTDH = gbtword.AsTDH(word)
		f.haveTDH = true
		f.state = StateTDH
		f.frame.reset()
		return nil
	case gbtword.IDIHW:
		f.state = StateIHW
		f.frame.reset()
		return nil
	case gbtword.IDDDW0:
		f.state = StateDDW0
		return nil
	default:
		return []error{rerr.New(offset, "E99", "unrecognized word %s after TDT(packet_done=1); best-effort staying in TDT", id)}
	}
}

func (f *FSM) onStrayAfterTerminal(id gbtword.ID, offset uint64) []error {
	return []error{rerr.New(offset, "E53", "unexpected word %s after DDW0", id)}
}

// CurrentFrame exposes the in-progress readout frame's accumulated data
// words, for ALPIDE checks once a TDT closes it.
func (f *FSM) CurrentFrame() *frameAccumulator { return f.frame }
