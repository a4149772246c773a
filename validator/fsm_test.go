package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsdaq/rdhscan/gbtword"
)

func rawWord(id gbtword.ID) gbtword.Raw10 {
	var w gbtword.Raw10
	w[gbtword.Size-1] = byte(id)
	return w
}

func dataWord(id gbtword.ID, chip uint8) gbtword.Raw10 {
	w := rawWord(id)
	w[0] = chip
	return w
}

func TestFSMHappyPathNoDataFrame(t *testing.T) {
	f := NewFSM()
	require.Empty(t, f.StartCDP(0, 0, 0))
	require.Empty(t, f.ConsumeWord(rawWord(gbtword.IDIHW), 0x40))

	tdh := rawWord(gbtword.IDTDH)
	tdh[8] = 1 << 1 // no_data
	require.Empty(t, f.ConsumeWord(tdh, 0x50))
	require.Equal(t, StateTDH, f.state)

	require.Empty(t, f.ConsumeWord(rawWord(gbtword.IDDDW0), 0x60))
	require.Equal(t, StateDDW0, f.state)
}

func TestFSMDataFrame(t *testing.T) {
	f := NewFSM()
	f.StartCDP(0, 0, 0)
	f.ConsumeWord(rawWord(gbtword.IDIHW), 0x40)
	f.ConsumeWord(rawWord(gbtword.IDTDH), 0x50) // no_data=0

	require.Empty(t, f.ConsumeWord(dataWord(0x24, 1), 0x60))
	require.Equal(t, StateDATA, f.state)
	require.Len(t, f.CurrentFrame().Words(), 1)

	tdt := rawWord(gbtword.IDTDT)
	tdt[8] = 1 // packet_done
	require.Empty(t, f.ConsumeWord(tdt, 0x6a))
	require.Equal(t, StateTDT, f.state)
}

func TestFSMBadIDAfterIHW(t *testing.T) {
	f := NewFSM()
	f.StartCDP(0, 0, 0)
	f.ConsumeWord(rawWord(gbtword.IDIHW), 0x40)

	errs := f.ConsumeWord(rawWord(gbtword.IDTDT), 0x50)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E30")
}

func TestFSMUnrecognizedIDAfterTDTReportsE99(t *testing.T) {
	f := NewFSM()
	f.StartCDP(0, 0, 0)
	f.ConsumeWord(rawWord(gbtword.IDIHW), 0x40)
	f.ConsumeWord(rawWord(gbtword.IDTDH), 0x50) // no_data=0

	f.ConsumeWord(dataWord(0x24, 1), 0x60)
	tdt := rawWord(gbtword.IDTDT)
	tdt[8] = 1 // packet_done
	f.ConsumeWord(tdt, 0x6a)

	bad := rawWord(gbtword.ID(0xF1))
	errs := f.ConsumeWord(bad, 0x90)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E99")
}

func TestFSMClosingPageRequiresDDW0Only(t *testing.T) {
	f := NewFSM()
	require.Empty(t, f.StartCDP(1, 2, 0xE0))
	require.Equal(t, StateDDW0Only, f.state)

	errs := f.ConsumeWord(rawWord(gbtword.IDTDH), 0xE0)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "E60")

	f2 := NewFSM()
	f2.StartCDP(1, 2, 0xE0)
	require.Empty(t, f2.ConsumeWord(rawWord(gbtword.IDDDW0), 0xE0))
	require.Equal(t, StateTerminal, f2.state)
}

func TestFSMContinuationRegion(t *testing.T) {
	f := NewFSM()
	f.StartCDP(0, 0, 0)
	f.ConsumeWord(rawWord(gbtword.IDIHW), 0x40)
	f.ConsumeWord(rawWord(gbtword.IDTDH), 0x50) // no_data=0
	f.ConsumeWord(dataWord(0x24, 1), 0x60)

	tdt := rawWord(gbtword.IDTDT) // packet_done=0
	require.Empty(t, f.ConsumeWord(tdt, 0x6a))
	require.Equal(t, StateTDT, f.state)

	f.StartCDP(0, 1, 0x100) // next page continues the HBF
	require.Equal(t, StateTDT, f.state)

	require.Empty(t, f.ConsumeWord(rawWord(gbtword.IDIHW), 0x100))
	require.Equal(t, StateCIHW, f.state)

	cTDH := rawWord(gbtword.IDTDH)
	cTDH[8] = 1 << 2 // continuation
	require.Empty(t, f.ConsumeWord(cTDH, 0x10a))
	require.Equal(t, StateCTDH, f.state)

	require.Empty(t, f.ConsumeWord(dataWord(0x24, 2), 0x114))
	require.Equal(t, StateCDATA, f.state)
}
