package validator

import (
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/internal/rerr"
	"github.com/itsdaq/rdhscan/rdh"
)

// customChecker runs four configurable checks, each reported with an E9xxx
// code: rdh_version_expected (E9001), its_trigger_period (E9002),
// cdps_expected (E9003) and triggers_pht_expected (E9004). chip_orders_ob
// is applied by alpideChecker (E76); chip_count_ob is not checked by any
// validator. Every field of config.Checks is optional:
// a zero value means "not configured", so the corresponding check is
// skipped rather than compared against zero.
type customChecker struct {
	cfg *config.Checks

	cdps           uint32
	triggersPHT    uint32
	lastInternalBC int64 // -1 until the first internal-trigger TDH is seen
}

func newCustomChecker(cfg *config.Checks) *customChecker {
	return &customChecker{cfg: cfg, lastInternalBC: -1}
}

// ObserveCDP counts one CDP towards cdps_expected.
func (c *customChecker) ObserveCDP() { c.cdps++ }

// ObserveHeader checks rdh_version_expected against h.
func (c *customChecker) ObserveHeader(h rdh.RDH, offset uint64) []error {
	if c.cfg.RDHVersionExpected != 0 && h.HeaderID != c.cfg.RDHVersionExpected {
		return []error{rerr.New(offset, "E9001", "rdh_version_expected=%d but header_id=%d", c.cfg.RDHVersionExpected, h.HeaderID)}
	}
	return nil
}

// ObserveTDH counts physics-trigger TDHs and checks its_trigger_period
// against the spacing between consecutive internal-trigger TDHs.
func (c *customChecker) ObserveTDH(internalTrigger bool, triggerBC uint16, offset uint64) []error {
	if !internalTrigger {
		c.triggersPHT++
		return nil
	}
	var errs []error
	if c.cfg.ITSTriggerPeriod != 0 {
		if c.lastInternalBC >= 0 {
			got := int64(triggerBC) - c.lastInternalBC
			if got < 0 {
				got += 1 << 12 // bc field wraps at its 12-bit width
			}
			if uint32(got) != c.cfg.ITSTriggerPeriod {
				errs = append(errs, rerr.New(offset, "E9002", "its_trigger_period=%d but consecutive internal triggers are %d bc apart", c.cfg.ITSTriggerPeriod, got))
			}
		}
		c.lastInternalBC = int64(triggerBC)
	}
	return errs
}

// Finalize reports the cdps_expected / triggers_pht_expected mismatches,
// once the full stream has been seen.
func (c *customChecker) Finalize(offset uint64) []error {
	var errs []error
	if c.cfg.CDPsExpected != 0 && c.cdps != c.cfg.CDPsExpected {
		errs = append(errs, rerr.New(offset, "E9003", "cdps_expected=%d but observed %d", c.cfg.CDPsExpected, c.cdps))
	}
	if c.cfg.TriggersPHTExpected != 0 && c.triggersPHT != c.cfg.TriggersPHTExpected {
		errs = append(errs, rerr.New(offset, "E9004", "triggers_pht_expected=%d but observed %d", c.cfg.TriggersPHTExpected, c.triggersPHT))
	}
	return errs
}
