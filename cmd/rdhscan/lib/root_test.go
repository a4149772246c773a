package lib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/rdh"
)

func TestParseStave(t *testing.T) {
	layer, stave, err := ParseStave("l3_12")
	require.NoError(t, err)
	require.EqualValues(t, 3, layer)
	require.EqualValues(t, 12, stave)
}

func TestParseStaveRejectsMalformed(t *testing.T) {
	_, _, err := ParseStave("garbage")
	require.Error(t, err)
}

func TestFilterOptionsKeepByLink(t *testing.T) {
	keep, err := FilterOptions{Link: 3, Fee: -1}.Keep()
	require.NoError(t, err)
	require.True(t, keep(rdh.RDH{LinkID: 3}))
	require.False(t, keep(rdh.RDH{LinkID: 4}))
}

func TestFilterOptionsKeepByStave(t *testing.T) {
	keep, err := FilterOptions{Link: -1, Fee: -1, Stave: "L2_05"}.Keep()
	require.NoError(t, err)
	require.True(t, keep(rdh.RDH{FeeID: uint16(2)<<8 | 5}))
	require.False(t, keep(rdh.RDH{FeeID: uint16(2)<<8 | 6}))
}

func TestFilterOptionsRejectsMultipleFiltersSet(t *testing.T) {
	_, err := FilterOptions{Link: 1, Fee: 2}.Keep()
	require.Error(t, err)
}

func TestFilterOptionsDefaultKeepsEverything(t *testing.T) {
	keep, err := FilterOptions{Link: -1, Fee: -1}.Keep()
	require.NoError(t, err)
	require.True(t, keep(rdh.RDH{LinkID: 9}))
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 1, ExitCode(assertErr{}, 0, 7))
	require.Equal(t, 7, ExitCode(nil, 3, 7))
	require.Equal(t, 0, ExitCode(nil, 0, 7))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
