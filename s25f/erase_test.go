package s25f

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraseBlock(t *testing.T) {
	sim := newSim()
	sim.regs[CR3NVAddr] = CR3NVUniform
	d, sleeps := newTestDevice(t, sim)
	s := NewSession(d)

	require.NoError(t, s.EraseBlock(0x010000))

	assert.Equal(t, []uint32{0x010000}, sim.erases)

	// WREN chained with the erase command
	var erase [][]byte
	for i, f := range sim.frames {
		if f[0] == opBlockErase {
			erase = sim.frames[i-1 : i+1]
		}
	}
	require.NotNil(t, erase)
	assert.Equal(t, []byte{opWriteEnable}, erase[0])
	assert.Equal(t, []byte{0xd8, 0x01, 0x00, 0x00}, erase[1])

	// worst-case erase time elapses before the status poll
	require.NotEmpty(t, *sleeps)
	assert.Equal(t, tSectorErase, (*sleeps)[0])
	assert.Equal(t, 1, sim.statusReads())
}

func TestEraseBlockConvertsHybridFirst(t *testing.T) {
	sim := newSim()
	sim.regs[CR3NVAddr] = 0x00
	d, _ := newTestDevice(t, sim)
	s := NewSession(d)

	require.NoError(t, s.EraseBlock(0x020000))
	require.NoError(t, s.EraseBlock(0x030000))

	assert.Equal(t, []uint32{0x020000, 0x030000}, sim.erases)
	assert.Equal(t, byte(CR3NVUniform), sim.regs[CR3NVAddr])

	// the conversion reads CR3NV twice (check + verify) on the first
	// erase and not at all on the second
	assert.Equal(t, 2, sim.registerReads(CR3NVAddr))

	require.NoError(t, s.Close())
	assert.Equal(t, byte(0x00), sim.regs[CR3NVAddr])
}

func TestEraseBlockTransportFailure(t *testing.T) {
	sim := newSim()
	sim.regs[CR3NVAddr] = CR3NVUniform
	d, sleeps := newTestDevice(t, sim)
	s := NewSession(d)

	// arch check first, so only the erase chain fails
	require.NoError(t, s.ensureUniformSectors())
	sim.chainErr = errors.New("bus gone")

	require.Error(t, s.EraseBlock(0x010000))

	// failure returns immediately: no timing wait, no polling
	assert.Empty(t, *sleeps)
	assert.Equal(t, 0, sim.statusReads())
}

func TestEraseBlockFault(t *testing.T) {
	sim := newSim()
	sim.regs[CR3NVAddr] = CR3NVUniform
	d, _ := newTestDevice(t, sim)
	s := NewSession(d)

	sim.status = []Status{statusWIP | statusEraseErr}

	var fault *FaultError
	require.ErrorAs(t, s.EraseBlock(0x010000), &fault)
	assert.Equal(t, FaultErase, fault.Kind)
	assert.Equal(t, []byte{opLegacyReset}, sim.resets)

	// a clean erase still works afterwards: faults abort one erase,
	// not the session
	require.NoError(t, s.EraseBlock(0x020000))
}
