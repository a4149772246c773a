package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/rdh"
)

func TestCustomObserveHeaderVersionMismatch(t *testing.T) {
	c := newCustomChecker(&config.Checks{RDHVersionExpected: 7})
	errs := c.ObserveHeader(rdh.RDH{HeaderID: 6}, 0x10)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E9001")
}

func TestCustomObserveHeaderSkippedWhenUnconfigured(t *testing.T) {
	c := newCustomChecker(&config.Checks{})
	errs := c.ObserveHeader(rdh.RDH{HeaderID: 6}, 0x10)
	require.Empty(t, errs)
}

func TestCustomObserveTDHCountsPHTTriggers(t *testing.T) {
	c := newCustomChecker(&config.Checks{TriggersPHTExpected: 2})
	c.ObserveTDH(false, 10, 0x10)
	c.ObserveTDH(false, 20, 0x20)
	errs := c.Finalize(0x30)
	require.Empty(t, errs)
}

func TestCustomObserveTDHTriggerPeriodMismatch(t *testing.T) {
	c := newCustomChecker(&config.Checks{ITSTriggerPeriod: 100})
	require.Empty(t, c.ObserveTDH(true, 0, 0x10))
	errs := c.ObserveTDH(true, 150, 0x20)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E9002")
}

func TestCustomObserveTDHTriggerPeriodWraps(t *testing.T) {
	c := newCustomChecker(&config.Checks{ITSTriggerPeriod: 10})
	require.Empty(t, c.ObserveTDH(true, 4090, 0x10))
	errs := c.ObserveTDH(true, 4, 0x20) // wraps past 4095 back to 4 (12-bit field), 10 bc later
	require.Empty(t, errs)
}

func TestCustomFinalizeCDPCountMismatch(t *testing.T) {
	c := newCustomChecker(&config.Checks{CDPsExpected: 3})
	c.ObserveCDP()
	c.ObserveCDP()
	errs := c.Finalize(0x40)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E9003")
}

func TestCustomFinalizePHTCountMismatch(t *testing.T) {
	c := newCustomChecker(&config.Checks{TriggersPHTExpected: 5})
	c.ObserveTDH(false, 0, 0x10)
	errs := c.Finalize(0x40)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E9004")
}
