package s25f

import "github.com/pkg/errors"

// CR3NVAddr is the architecture control register. Bit 3 selects the
// uniform sector layout over the hybrid (mixed size) one.
const (
	CR3NVAddr    uint32 = 0x000004
	CR3NVUniform byte   = 1 << 3
)

// rdarDummyBytes covers the default variable read latency of the Read
// Any Register instruction (8 cycles, per CR2NV[3:0]).
const rdarDummyBytes = 8

// ReadRegister reads one addressed register with the Read Any Register
// instruction.
func (d *Device) ReadRegister(addr uint32) (byte, error) {
	frame := appendAddr24([]byte{opReadAnyReg}, addr)
	frame = append(frame, make([]byte, rdarDummyBytes)...)

	out, err := d.tr.Command(Command{Tx: frame, Rx: 1})
	if err != nil {
		return 0, errors.Wrapf(err, "could not read register 0x%06x", addr)
	}

	return out[0], nil
}

// WriteRegister writes one addressed register with the Write Any
// Register instruction, chained after write enable. It waits out the
// non-volatile register write time and only returns cleanly once the
// chip confirms completion without a fault.
func (d *Device) WriteRegister(addr uint32, value byte) error {
	chain := Chain{
		{Tx: []byte{opWriteEnable}},
		{Tx: append(appendAddr24([]byte{opWriteAnyReg}, addr), value)},
	}

	if err := d.tr.Chain(chain); err != nil {
		return errors.Wrapf(err, "could not write register 0x%06x", addr)
	}

	d.delay(tRegisterWrite)
	return d.pollStatus()
}
