package s25f

import (
	"time"

	"github.com/pkg/errors"
)

var DefaultPollInterval = 10 * time.Millisecond

// Worst-case figures from the embedded algorithm performance tables.
// Shortening these risks leaving the chip in an inconsistent state.
const (
	tRegisterWrite  = 145 * time.Millisecond // non-volatile register write
	tResetPulseHold = 35 * time.Microsecond  // Trph
	tSectorErase    = 145 * time.Millisecond // sector erase
)

// Config defines configuration for talking to one chip
type Config struct {
	// PollInterval is the time between status samples while the chip
	// reports busy.
	PollInterval time.Duration

	// PollCeiling bounds the busy wait. Zero polls until the chip
	// reports ready, which matches the hardware's own guarantees but
	// will hang forever on an unresponsive chip.
	PollCeiling time.Duration

	// Delay is the blocking wait used for the fixed settle times.
	Delay DelayFunc
}

// Device is a handle to one attached S25F chip over a transport.
//
// A Device performs no internal locking; the caller must serialize
// concurrent access to the same handle.
type Device struct {
	config *Config

	tr   Transport
	chip Chip
}

// NewDevice will create a new handle to a chip with the given expected
// descriptor
func NewDevice(tr Transport, chip Chip, c *Config) (*Device, error) {
	if tr == nil {
		return nil, errors.New("transport must not be nil")
	}

	if c == nil {
		c = &Config{}
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Delay == nil {
		c.Delay = time.Sleep
	}

	return &Device{
		config: c,
		tr:     tr,
		chip:   chip,
	}, nil
}

// Chip returns the descriptor the handle was created with.
func (d *Device) Chip() Chip {
	return d.chip
}

func (d *Device) delay(dur time.Duration) {
	d.config.Delay(dur)
}
