package s25f

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func resetChain(second byte) Chain {
	return Chain{
		{Tx: []byte{opResetEnable}},
		{Tx: []byte{second}},
	}
}

// legacyReset issues the reset-enable + 0xF0 soft reset. The legacy
// opcode is disabled by device configuration on some parts, but it
// still clears WIP and the volatile fault bits, which is all the fault
// recovery path needs.
func (d *Device) legacyReset() error {
	if err := d.tr.Chain(resetChain(opLegacyReset)); err != nil {
		return errors.Wrap(err, "legacy reset failed during command execution")
	}

	// Trph is 35us, doubled to be safe.
	d.delay(2 * tResetPulseHold)

	return nil
}

// SoftwareReset forces a reset with the 0x99 opcode, which works even
// when the legacy soft reset is disabled.
func (d *Device) SoftwareReset() error {
	logrus.Debug("force resetting flash chip")

	if err := d.tr.Chain(resetChain(opReset)); err != nil {
		return errors.Wrap(err, "reset failed during command execution")
	}

	d.delay(2 * tResetPulseHold)

	return nil
}
