package s25f

import "github.com/pkg/errors"

// EraseBlock erases the block starting at addr. Before the first erase
// of the session the chip is switched to the uniform sector layout if
// needed; erasing the hybrid overlayed layout in place is not
// supported.
func (s *Session) EraseBlock(addr uint32) error {
	if err := s.ensureUniformSectors(); err != nil {
		return err
	}
	return s.dev.eraseBlock(addr)
}

func (d *Device) eraseBlock(addr uint32) error {
	chain := Chain{
		{Tx: []byte{opWriteEnable}},
		{Tx: appendAddr24([]byte{opBlockErase}, addr)},
	}

	if err := d.tr.Chain(chain); err != nil {
		return errors.Wrapf(err, "erase failed during command execution at 0x%06x", addr)
	}

	// Worst-case sector erase time; polling only starts after it.
	d.delay(tSectorErase)
	return d.pollStatus()
}
