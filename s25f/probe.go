package s25f

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// rdidLen is how much of the identification response we care about.
const rdidLen = 6

// Probe issues an identification read and reports whether the attached
// chip matches the handle's descriptor. Transport failures count as no
// match rather than an error: probing is speculative and is expected to
// fail when nothing is attached.
//
// Response layout: [0] manufacturer, [1:2] size class, [3] RDID length
// (ignored), [4] sector layout, [5] family.
func (d *Device) Probe() bool {
	out, err := d.tr.Command(Command{Tx: []byte{opReadID}, Rx: rdidLen})
	if err != nil {
		return false
	}
	logrus.Debugf("rdid: %x", out)

	if out[0] != d.chip.Manufacturer {
		return false
	}
	return modelKey(out) == d.chip.Model
}

// modelKey reassembles the big-endian 4-byte model identifier from an
// identification response.
func modelKey(rdid []byte) uint32 {
	return binary.BigEndian.Uint32([]byte{rdid[1], rdid[2], rdid[4], rdid[5]})
}
