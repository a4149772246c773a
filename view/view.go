// Package view renders the three human-readable table formats the `view`
// CLI subcommand offers (spec.md §6: `rdh`, `its-readout-frames`,
// `its-readout-frames-data`). Grounded on the teacher's cmd/car/list.go
// printEntry/sizeStr pair: one column-writing helper per row kind, byte
// sizes rendered through go-humanize rather than hand-rolled formatting.
package view

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/itsdaq/rdhscan/gbtword"
	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/validator"
)

// SizeMode selects how byte counts are rendered, mirroring the teacher's
// `--sizes human|bytes` switch.
type SizeMode int

const (
	SizeBytes SizeMode = iota
	SizeHuman
)

func sizeStr(mode SizeMode, n int) string {
	if mode == SizeHuman {
		return humanize.Bytes(uint64(n))
	}
	return fmt.Sprintf("%d", n)
}

// RDHRow pairs a decoded RDH with the byte offset its header started at,
// since a bare rdh.RDH has no memory of its own position in the stream.
type RDHRow struct {
	RDH    rdh.RDH
	Offset uint64
}

// RDHTable writes one line per row read from rows until it closes.
func RDHTable(w io.Writer, rows <-chan RDHRow, mode SizeMode) {
	fmt.Fprintln(w, "offset\theader_id\tfee_id\tstave\tlink\torbit\tpage\tstop\tpayload")
	for row := range rows {
		h := row.RDH
		fmt.Fprintf(w, "%#x\t%d\t0x%04x\t%s\t%d\t%d\t%d\t%d\t%s\n",
			row.Offset, h.HeaderID, h.FeeID, h.StaveString(), h.LinkID, h.Orbit, h.PagesCounter, h.StopBit,
			sizeStr(mode, h.PayloadLen()))
	}
}

// ReadoutFrameTable writes one summary line per closed ITS readout frame.
func ReadoutFrameTable(w io.Writer, frames <-chan validator.ReadoutFrame) {
	fmt.Fprintln(w, "trigger_bc\tbunch_counter\tchips\tlane_faults")
	for f := range frames {
		fmt.Fprintf(w, "%d\t%d\t%d\t0x%08x\n", f.TriggerBC, f.BunchCounter, len(f.Words), f.LaneFaults)
	}
}

// ReadoutFrameDataTable writes one line per data word across every frame in
// frames, for `view its-readout-frames-data`'s full-detail dump.
func ReadoutFrameDataTable(w io.Writer, frames <-chan validator.ReadoutFrame) {
	fmt.Fprintln(w, "chip_id\tbunch_counter\tclass\ttrailer_flags")
	for f := range frames {
		for _, dw := range f.Words {
			fmt.Fprintf(w, "%d\t%d\t%s\t0x%02x\n", dw.ChipID(), dw.BunchCounter(), classLabel(dw), dw.TrailerFlags())
		}
	}
}

func classLabel(dw gbtword.DataWord) string {
	return dw.Class().String()
}
