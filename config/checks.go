// Package config loads the --checks-toml document (spec.md §4.3.5, §6) and
// the flat stats documents read/written via --output-stats/--input-stats-file
// (spec.md §4.4, §6). TOML (de)coding uses
// github.com/pelletier/go-toml/v2, picked from the wider example pack
// (other_examples/manifests/marmos91-dittofs/go.mod) since the teacher
// itself never reads a config file of its own.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Checks is the strict set of keys spec.md §4.3.5/§6 recognises. Any key in
// the TOML document outside this struct is a fatal config error — go-toml/v2
// is decoded with DisallowUnknownFields to enforce that.
type Checks struct {
	CDPsExpected         uint32     `toml:"cdps_expected"`
	TriggersPHTExpected  uint32     `toml:"triggers_pht_expected"`
	ChipOrdersOB         [][]uint8  `toml:"chip_orders_ob"`
	ChipCountOB          uint8      `toml:"chip_count_ob"`
	RDHVersionExpected   uint8      `toml:"rdh_version_expected"`
	ITSTriggerPeriod     uint32     `toml:"its_trigger_period"`
}

// Error is a fatal configuration-file problem (spec.md §6: "Unrecognised
// keys are a fatal config error").
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Load strict-decodes a Checks document from r.
func Load(r io.Reader) (*Checks, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var c Checks
	if err := dec.Decode(&c); err != nil {
		return nil, &Error{msg: fmt.Sprintf("checks-toml: %v", err)}
	}
	return &c, nil
}

// Generate encodes the zero-value Checks{} (all keys present with their
// defaults) for --generate-checks-toml.
func Generate(w io.Writer) error {
	enc := toml.NewEncoder(w)
	return enc.Encode(Checks{})
}

// EffectiveChipOrders returns chip_orders_ob when set, otherwise the two
// default OB chip-id orderings spec.md §4.3.4 names: ascending [0..6] or
// [9..15], each ChipCountOB=7 chips long (see DESIGN.md for the
// reconciliation of the two ranges to equal length).
func (c *Checks) EffectiveChipOrders() [][]uint8 {
	if len(c.ChipOrdersOB) > 0 {
		return c.ChipOrdersOB
	}
	return [][]uint8{
		{0, 1, 2, 3, 4, 5, 6},
		{9, 10, 11, 12, 13, 14, 15},
	}
}
