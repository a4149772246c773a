package config

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// StatsDoc is the flat document spec.md §6 describes: "keys are the
// aggregated counter names; values are integers or arrays". Used for both
// --output-stats (write) and --input-stats-file (read, for end-of-run
// reconciliation).
type StatsDoc struct {
	TotalRDHs       uint64            `json:"total_rdhs" toml:"total_rdhs"`
	TotalHBFs       uint64            `json:"total_hbfs" toml:"total_hbfs"`
	TotalErrors     uint64            `json:"total_errors" toml:"total_errors"`
	LinksObserved   []uint8           `json:"links_observed" toml:"links_observed"`
	FEEsObserved    []uint16          `json:"fees_observed" toml:"fees_observed"`
	LayersStaves    []string          `json:"layers_staves_observed" toml:"layers_staves_observed"`
	TriggerTypes    []uint32          `json:"trigger_types_observed" toml:"trigger_types_observed"`
	SystemID        uint8             `json:"system_id" toml:"system_id"`
	AlpideFlagCount map[string]uint64 `json:"alpide_flag_count" toml:"alpide_flag_count"`
}

// Format selects the (de)serialisation for a stats document.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

func (d StatsDoc) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
}

func DecodeStatsDoc(r io.Reader, f Format) (StatsDoc, error) {
	var d StatsDoc
	b, err := io.ReadAll(r)
	if err != nil {
		return d, err
	}
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(b, &d)
	default:
		err = json.Unmarshal(b, &d)
	}
	return d, err
}
