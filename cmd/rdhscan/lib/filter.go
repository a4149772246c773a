package lib

import (
	"io"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/passthrough"
)

// RunFilter re-serialises every CDP in r that keep accepts back to w,
// byte for byte (spec.md §1's "filters a subset of the stream ... back to
// a binary stream", supplemented into its own `rdhscan filter` command per
// SPEC_FULL.md §2.10).
func RunFilter(r io.Reader, keep cdp.KeepFunc, w io.Writer) (written, dropped uint64, err error) {
	sc := cdp.NewScanner(r, cdp.WithKeep(orKeepAll(keep)))
	pw := passthrough.NewWriter(w)
	if err := passthrough.Copy(pw, sc); err != nil {
		return pw.Written, pw.Dropped, err
	}
	return pw.Written, pw.Dropped, nil
}
