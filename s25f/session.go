package s25f

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Session scopes one flashing run against a device. It remembers
// whether the erase architecture has been checked and owns the
// restoration actions that undo configuration changes when the run
// ends, so independent sessions (other devices, other test runs) never
// see each other's state.
//
// A Session must be closed on every exit path; Close puts the chip back
// in its original configuration.
type Session struct {
	dev *Device

	archChecked bool
	restores    []func() error
	closed      bool
}

// NewSession will start a flashing session against the device
func NewSession(dev *Device) *Session {
	return &Session{dev: dev}
}

// Device returns the underlying device handle.
func (s *Session) Device() *Device {
	return s.dev
}

// onClose registers a restoration action to run when the session ends.
func (s *Session) onClose(fn func() error) {
	s.restores = append(s.restores, fn)
}

// Close runs the registered restoration actions in reverse order and
// reports every failure, never silently dropping one. Restorations run
// exactly once; closing again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.restores) - 1; i >= 0; i-- {
		if err := s.restores[i](); err != nil {
			logrus.Error("session restore failed: ", err.Error())
			errs = append(errs, err)
		}
	}
	s.restores = nil

	return errors.Join(errs...)
}
