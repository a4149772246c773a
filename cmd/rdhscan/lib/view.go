package lib

import (
	"io"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/gbtword"
	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/validator"
	"github.com/itsdaq/rdhscan/view"
)

// RenderRDHs drives a cdp.Scanner over r in its RDH-only mode and writes
// view.RDHTable's rows, one per RDH (spec.md §6 `view rdh`, §4.1's
// "skip-payload variant" for view modes that never need payload bytes).
func RenderRDHs(r io.Reader, keep cdp.KeepFunc, mode view.SizeMode, w io.Writer) error {
	keep = orKeepAll(keep)
	sc := cdp.NewScanner(r, cdp.WithKeep(keep))
	rows := make(chan view.RDHRow)
	errc := make(chan error, 1)

	// The scanner is single-threaded and not safe for concurrent use;
	// rows are produced on a dedicated goroutine and consumed by
	// view.RDHTable over the channel below, the same producer/table-
	// consumer split validator.ReadoutFrame rendering uses.
	go func() {
		defer close(rows)
		for {
			startOffset := sc.Offset()
			h, err := sc.NextRDHOnly()
			if err != nil {
				if err != io.EOF {
					errc <- err
				}
				return
			}
			if !keep(h) {
				continue
			}
			rows <- view.RDHRow{RDH: h, Offset: startOffset}
		}
	}()

	view.RDHTable(w, rows, mode)
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}

// RenderReadoutFrames walks r's ITS payload words, closing one
// validator.ReadoutFrame per TDT and writing view.ReadoutFrameTable's
// summary rows (spec.md §6 `view its-readout-frames`).
func RenderReadoutFrames(r io.Reader, keep cdp.KeepFunc, w io.Writer) error {
	return walkFrames(r, keep, func(frames chan<- validator.ReadoutFrame) {
		view.ReadoutFrameTable(w, frames)
	})
}

// RenderReadoutFramesData is RenderReadoutFrames's full-detail counterpart,
// one line per data word (spec.md §6 `view its-readout-frames-data`).
func RenderReadoutFramesData(r io.Reader, keep cdp.KeepFunc, w io.Writer) error {
	return walkFrames(r, keep, func(frames chan<- validator.ReadoutFrame) {
		view.ReadoutFrameDataTable(w, frames)
	})
}

// walkFrames is the shared producer behind both its-readout-frames view
// modes: it replays the same per-word switch validator.consumePayload
// drives, but renders closed frames instead of accumulating error Records.
func walkFrames(r io.Reader, keep cdp.KeepFunc, render func(chan<- validator.ReadoutFrame)) error {
	sc := cdp.NewScanner(r, cdp.WithKeep(orKeepAll(keep)))
	frames := make(chan validator.ReadoutFrame)
	errc := make(chan error, 1)

	go func() {
		defer close(frames)
		fsm := validator.NewFSM()
		var triggerBC uint16

		for {
			c, err := sc.Next()
			if err != nil {
				if err != io.EOF {
					errc <- err
				}
				return
			}
			if c.Filtered {
				continue
			}

			fsm.StartCDP(c.RDH.StopBit, c.RDH.PagesCounter, c.Offset)
			offset := c.Offset + rdh.Size
			for i := 0; i+gbtword.Size <= len(c.Payload); i += gbtword.Size {
				var raw gbtword.Raw10
				copy(raw[:], c.Payload[i:i+gbtword.Size])

				switch raw.ID() {
				case gbtword.IDTDH:
					triggerBC = gbtword.AsTDH(raw).TriggerBC()
				case gbtword.IDTDT:
					words := fsm.CurrentFrame().Words()
					var bc uint16
					if len(words) > 0 {
						bc = words[0].BunchCounter()
					}
					frames <- validator.ReadoutFrame{
						TriggerBC:    triggerBC,
						BunchCounter: bc,
						Words:        append([]gbtword.DataWord(nil), words...),
						LaneFaults:   gbtword.AsTDT(raw).LaneFaultsMask(),
					}
				}

				fsm.ConsumeWord(raw, offset)
				offset += gbtword.Size
			}
		}
	}()

	render(frames)
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}

// orKeepAll substitutes the keep-everything predicate for a nil KeepFunc,
// so callers below FilterOptions.Keep (which never returns nil) can still
// be exercised directly with no filter configured.
func orKeepAll(keep cdp.KeepFunc) cdp.KeepFunc {
	if keep == nil {
		return func(rdh.RDH) bool { return true }
	}
	return keep
}
