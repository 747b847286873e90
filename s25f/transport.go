package s25f

import "time"

// Transport carries command frames to the attached chip.
//
// The driver assumes it is the only issuer of commands on a transport
// for the duration of any call; it performs no locking of its own.
type Transport interface {
	// Command issues a single frame and returns exactly cmd.Rx response
	// bytes, or an error.
	Command(cmd Command) ([]byte, error)

	// Chain issues the commands as one uninterrupted exchange, all or
	// nothing. No response bytes are read.
	Chain(chain Chain) error
}

// DelayFunc blocks for the given duration. The default is time.Sleep;
// tests substitute their own.
type DelayFunc func(time.Duration)
