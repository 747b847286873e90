package s25f

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ensureUniformSectors switches the chip out of the hybrid sector
// architecture if it is in use. The register sequence runs at most once
// per session; when the chip is actually converted, a restoration
// action is registered so the original layout comes back at session
// close.
func (s *Session) ensureUniformSectors() error {
	if s.archChecked {
		return nil
	}

	cfg, err := s.dev.ReadRegister(CR3NVAddr)
	if err != nil {
		return err
	}
	if cfg&CR3NVUniform != 0 {
		s.archChecked = true
		return nil
	}

	if err := s.dev.WriteRegister(CR3NVAddr, cfg|CR3NVUniform); err != nil {
		return err
	}
	// The CR3NV update does not take effect on all variants until the
	// chip has been reset.
	if err := s.dev.SoftwareReset(); err != nil {
		return err
	}

	check, err := s.dev.ReadRegister(CR3NVAddr)
	if err != nil {
		return err
	}
	if check&CR3NVUniform == 0 {
		return &VerificationError{Addr: CR3NVAddr, Want: cfg | CR3NVUniform, Got: check}
	}

	logrus.Debugf("CR3NV updated (0x%02x -> 0x%02x)", cfg, check)

	dev, orig := s.dev, cfg
	s.onClose(func() error {
		return restoreCR3NV(dev, orig)
	})
	s.archChecked = true

	return nil
}

// restoreCR3NV writes the captured pre-conversion value back and forces
// a reset so it takes effect. The reset is attempted even if the write
// fails, and both failures are reported.
func restoreCR3NV(d *Device, cfg byte) error {
	logrus.Debugf("restoring CR3NV value to 0x%02x", cfg)

	werr := d.WriteRegister(CR3NVAddr, cfg)
	rerr := d.SoftwareReset()

	return errors.Join(werr, rerr)
}
