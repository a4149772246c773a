package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadChecks(t *testing.T) {
	doc := `
cdps_expected = 10
triggers_pht_expected = 5
chip_orders_ob = [[0,1,2,3,4,5,6]]
chip_count_ob = 7
rdh_version_expected = 7
its_trigger_period = 88
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.EqualValues(t, 10, c.CDPsExpected)
	require.EqualValues(t, 7, c.ChipCountOB)
	require.Equal(t, [][]uint8{{0, 1, 2, 3, 4, 5, 6}}, c.ChipOrdersOB)
}

func TestLoadChecksUnknownKeyFatal(t *testing.T) {
	_, err := Load(strings.NewReader("bogus_key = 1\n"))
	require.Error(t, err)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
}

func TestGenerateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf))
	c, err := Load(&buf)
	require.NoError(t, err)
	require.Zero(t, c.CDPsExpected)
}

func TestEffectiveChipOrdersDefault(t *testing.T) {
	c := &Checks{}
	orders := c.EffectiveChipOrders()
	require.Len(t, orders, 2)
	require.Equal(t, []uint8{0, 1, 2, 3, 4, 5, 6}, orders[0])
}

func TestStatsDocRoundTripJSON(t *testing.T) {
	d := StatsDoc{TotalRDHs: 10, TotalHBFs: 5, LinksObserved: []uint8{1, 2}}
	var buf bytes.Buffer
	require.NoError(t, d.Encode(&buf, FormatJSON))
	got, err := DecodeStatsDoc(&buf, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestStatsDocRoundTripTOML(t *testing.T) {
	d := StatsDoc{TotalRDHs: 10, SystemID: 0x20}
	var buf bytes.Buffer
	require.NoError(t, d.Encode(&buf, FormatTOML))
	got, err := DecodeStatsDoc(&buf, FormatTOML)
	require.NoError(t, err)
	require.Equal(t, d.TotalRDHs, got.TotalRDHs)
	require.Equal(t, d.SystemID, got.SystemID)
}
