package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/itsdaq/rdhscan/cmd/rdhscan/lib"
	"github.com/itsdaq/rdhscan/view"
)

// viewTargets are the three table kinds `rdhscan view` renders (spec.md §6).
var viewTargets = map[string]bool{"rdh": true, "its-readout-frames": true, "its-readout-frames-data": true}

// ViewCommand is `rdhscan view {rdh|its-readout-frames|its-readout-frames-data} [FILE]`.
func ViewCommand(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("view requires a rdh|its-readout-frames|its-readout-frames-data argument")
	}
	target := c.Args().First()
	if !viewTargets[target] {
		return fmt.Errorf("unrecognised view target %q", target)
	}
	var file string
	if c.Args().Len() >= 2 {
		file = c.Args().Get(1)
	}

	keep, err := (lib.FilterOptions{
		Link:  filterIntFlag(c, "filter-link"),
		Fee:   filterIntFlag(c, "filter-fee"),
		Stave: c.String("filter-its-stave"),
	}).Keep()
	if err != nil {
		return err
	}

	inStream, closeIn, err := openInputPath(file)
	if err != nil {
		return err
	}
	defer closeIn()

	mode := view.SizeBytes
	if c.String("sizes") == "human" {
		mode = view.SizeHuman
	}

	switch target {
	case "rdh":
		return lib.RenderRDHs(inStream, keep, mode, os.Stdout)
	case "its-readout-frames":
		return lib.RenderReadoutFrames(inStream, keep, os.Stdout)
	default:
		return lib.RenderReadoutFramesData(inStream, keep, os.Stdout)
	}
}
