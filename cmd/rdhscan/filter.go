package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/itsdaq/rdhscan/cmd/rdhscan/lib"
	"github.com/itsdaq/rdhscan/internal/rlog"
)

// FilterCommand is `rdhscan filter [FILE] > out.bin`, supplementing
// spec.md §1's "filters a subset of the stream ... back to a binary
// stream" with an explicit command (SPEC_FULL.md §2.10's passthrough).
func FilterCommand(c *cli.Context) error {
	keep, err := (lib.FilterOptions{
		Link:  filterIntFlag(c, "filter-link"),
		Fee:   filterIntFlag(c, "filter-fee"),
		Stave: c.String("filter-its-stave"),
	}).Keep()
	if err != nil {
		return err
	}

	inStream, closeIn, err := openInput(c)
	if err != nil {
		return err
	}
	defer closeIn()

	written, dropped, err := lib.RunFilter(inStream, keep, os.Stdout)
	rlog.CLI.Infof("filter: wrote %d records, dropped %d", written, dropped)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return nil
}
