package s25f

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Status is one sample of the primary status register.
type Status byte

const (
	statusWIP        Status = 1 << 0
	statusEraseErr   Status = 1 << 5
	statusProgramErr Status = 1 << 6
)

func (s Status) Busy() bool         { return s&statusWIP != 0 }
func (s Status) EraseError() bool   { return s&statusEraseErr != 0 }
func (s Status) ProgramError() bool { return s&statusProgramErr != 0 }

// ReadStatus samples the primary status register once.
func (d *Device) ReadStatus() (Status, error) {
	out, err := d.tr.Command(Command{Tx: []byte{opReadStatus}, Rx: 1})
	if err != nil {
		return 0, errors.Wrap(err, "could not read status register")
	}
	return Status(out[0]), nil
}

// pollStatus blocks until WIP clears. WIP stays set if an erase or
// programming error occurs, so the error bits are checked on every
// sample before sleeping; on a fault the chip is reset to make it
// responsive again and the fault is returned without further polling.
func (d *Device) pollStatus() error {
	sr, err := d.ReadStatus()
	if err != nil {
		return err
	}

	var waited time.Duration
	for sr.Busy() {
		if sr.EraseError() || sr.ProgramError() {
			kind := FaultProgram
			if sr.EraseError() {
				kind = FaultErase
			}
			logrus.Errorf("%s fault reported, resetting chip", kind)
			if rerr := d.legacyReset(); rerr != nil {
				logrus.Error("reset after fault failed: ", rerr.Error())
			}
			return &FaultError{Kind: kind, Status: sr}
		}

		if c := d.config.PollCeiling; c > 0 && waited >= c {
			return ErrPollCeiling
		}
		d.delay(d.config.PollInterval)
		waited += d.config.PollInterval

		if sr, err = d.ReadStatus(); err != nil {
			return err
		}
	}

	return nil
}
