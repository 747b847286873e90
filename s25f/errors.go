package s25f

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrPollCeiling = errors.New("device still busy past the poll ceiling")

// FaultKind distinguishes which failure bit the chip flagged.
type FaultKind int

const (
	FaultErase FaultKind = iota
	FaultProgram
)

func (k FaultKind) String() string {
	if k == FaultErase {
		return "erase"
	}
	return "program"
}

// FaultError reports an erase or programming fault from the status
// register. The chip has already been reset back to a responsive state
// by the time this error is returned; the caller may retry the whole
// operation.
type FaultError struct {
	Kind   FaultKind
	Status Status
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s fault reported by device (status 0x%02x)", e.Kind, byte(e.Status))
}

// VerificationError reports a register write that did not take effect
// after a reset. The chip cannot be trusted to be in the requested
// configuration, so the operation that needed it must not proceed.
type VerificationError struct {
	Addr uint32
	Want byte
	Got  byte
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("register 0x%06x reads 0x%02x after reset, want 0x%02x", e.Addr, e.Got, e.Want)
}
