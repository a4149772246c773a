package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/cdp"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/gbtword"
	"github.com/itsdaq/rdhscan/rdh"
	"github.com/itsdaq/rdhscan/stats"
)

func joinWords(words ...gbtword.Raw10) []byte {
	buf := make([]byte, 0, len(words)*gbtword.Size)
	for _, w := range words {
		buf = append(buf, w[:]...)
	}
	return buf
}

func validHeader() rdh.RDH {
	return rdh.RDH{
		HeaderID:     6,
		HeaderSize:   rdh.Size,
		FeeID:        uint16(0)<<8 | 0,
		OffsetToNext: rdh.Size,
		Orbit:        1,
		BC:           1,
		TriggerType:  1,
		DataFormat:   2,
	}
}

// spec.md §8 scenario 3: `check sanity its` still catches payload
// grammar/word-ID violations even though it skips running/cross checks.
func TestValidatorSanityModeStillCatchesGrammarViolation(t *testing.T) {
	v := New(ModeSanity, &config.Checks{})
	h := validHeader()
	c := cdp.CDP{RDH: h, Payload: joinWords(rawWord(gbtword.IDIHW), rawWord(gbtword.IDTDT))}

	records := v.ConsumeCDP(c)
	var found bool
	for _, r := range records {
		if r.Kind == stats.KindError && r.Code == "E30" {
			found = true
		}
	}
	require.True(t, found, "expected an E30 record, got %+v", records)
}

// spec.md §8 scenario 6: sanity mode does not check the DDW0/stop_bit
// cross-level guard; all mode does.
func TestValidatorSanityModeSkipsCrossLevelGuard(t *testing.T) {
	h := validHeader()
	h.StopBit = 0 // DDW0 on a page that never closed the HBF
	payload := joinWords(rawWord(gbtword.IDIHW), rawWord(gbtword.IDDDW0))

	sanity := New(ModeSanity, &config.Checks{})
	records := sanity.ConsumeCDP(cdp.CDP{RDH: h, Payload: payload})
	for _, r := range records {
		require.NotEqual(t, "E26", r.Code)
	}

	all := New(ModeAll, &config.Checks{})
	records = all.ConsumeCDP(cdp.CDP{RDH: h, Payload: payload})
	var found bool
	for _, r := range records {
		if r.Code == "E26" {
			found = true
		}
	}
	require.True(t, found, "expected an E26 record under all mode, got %+v", records)
}

func TestValidatorEmitsRDHLevelRecords(t *testing.T) {
	v := New(ModeSanity, &config.Checks{})
	h := validHeader()
	h.FeeID = uint16(3)<<8 | 7
	c := cdp.CDP{RDH: h, Payload: joinWords(rawWord(gbtword.IDIHW), rawWord(gbtword.IDDDW0))}

	records := v.ConsumeCDP(c)
	var sawLink, sawFee, sawLayerStave bool
	for _, r := range records {
		switch r.Kind {
		case stats.KindLinkObserved:
			sawLink = true
		case stats.KindFeeObserved:
			sawFee = true
		case stats.KindLayerStaveObserved:
			sawLayerStave = true
			require.EqualValues(t, 3, r.Layer)
			require.EqualValues(t, 7, r.Stave)
		}
	}
	require.True(t, sawLink)
	require.True(t, sawFee)
	require.True(t, sawLayerStave)
}

func TestValidatorResetClearsRunningState(t *testing.T) {
	v := New(ModeAll, &config.Checks{}).(*itsValidator)
	h := validHeader()
	h.PagesCounter = 5
	v.ConsumeCDP(cdp.CDP{RDH: h, Payload: joinWords(rawWord(gbtword.IDIHW), rawWord(gbtword.IDDDW0))})
	v.Reset()
	require.False(t, v.running.started)
}
