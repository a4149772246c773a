// Package lib holds the business logic behind cmd/rdhscan's urfave/cli
// handlers, mirroring the teacher's cmd/car/lib split (lib/{inspect,
// extract,filter,root}.go): command files parse flags and call a
// lib function that does the actual work, keeping cli.Context out of
// everything below the command layer.
package lib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/rdh"
)

// ParseStave parses the "LX_YZ" form --filter-its-stave accepts,
// case-insensitively.
func ParseStave(s string) (layer, stave uint8, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 || s[0] != 'L' {
		return 0, 0, fmt.Errorf("invalid stave %q, want form LX_YZ", s)
	}
	parts := strings.SplitN(s[1:], "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid stave %q, want form LX_YZ", s)
	}
	l, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid layer in %q: %w", s, err)
	}
	v, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid stave in %q: %w", s, err)
	}
	return uint8(l), uint8(v), nil
}

// FilterOptions collects the --filter-* flags, at most one of which may be
// set at a time (spec.md §6).
type FilterOptions struct {
	Link  int // < 0 means unset
	Fee   int // < 0 means unset
	Stave string
}

// Keep builds the cdp.KeepFunc the Scanner filters through. An unset
// FilterOptions keeps every record.
func (f FilterOptions) Keep() (cdp.KeepFunc, error) {
	set := 0
	if f.Link >= 0 {
		set++
	}
	if f.Fee >= 0 {
		set++
	}
	if f.Stave != "" {
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("at most one of --filter-link, --filter-fee, --filter-its-stave may be set")
	}

	switch {
	case f.Link >= 0:
		link := uint8(f.Link)
		return func(h rdh.RDH) bool { return h.LinkID == link }, nil
	case f.Fee >= 0:
		fee := uint16(f.Fee)
		return func(h rdh.RDH) bool { return h.FeeID == fee }, nil
	case f.Stave != "":
		layer, stave, err := ParseStave(f.Stave)
		if err != nil {
			return nil, err
		}
		return func(h rdh.RDH) bool { return h.Layer() == layer && h.Stave() == stave }, nil
	default:
		return func(rdh.RDH) bool { return true }, nil
	}
}

// ExitCode centralises spec.md §6's exit-code policy: 1 on an internal or
// stream-ending error, the caller-configured code (--any-errors-exit-code)
// on any accumulated validation error, 0 otherwise. Kept as its own
// function so the policy lives in one place; RunCheck is its caller.
func ExitCode(err error, errCount uint64, anyErrorsExitCode int) int {
	if err != nil {
		return 1
	}
	if errCount > 0 {
		return anyErrorsExitCode
	}
	return 0
}
