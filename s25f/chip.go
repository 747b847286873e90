package s25f

import "golang.org/x/exp/slices"

// ManufacturerSpansion is RDID byte 0 on all chips this driver supports.
const ManufacturerSpansion byte = 0x01

// Chip describes one supported flash part. Model is the 4-byte key
// packed big-endian from RDID bytes {1,2} (size class) and {4,5}
// (sector layout and family), which is enough to tell the eight
// S25FL/S25FS variants apart.
type Chip struct {
	Name         string
	Manufacturer byte
	Model        uint32
	SectorSize   uint32
	Size         uint32
}

// KnownChips lists the parts the RDID layout distinguishes: two
// families, two sizes, and two sector layouts each. Layout byte 0x00
// means uniform 256kB physical sectors; 0x01 means 64kB sectors on the
// FS family and the 64kB/4kB overlayed layout on FL.
var KnownChips = []Chip{
	{Name: "S25FL128S", Manufacturer: ManufacturerSpansion, Model: 0x20180080, SectorSize: 256 * 1024, Size: 16 * 1024 * 1024},
	{Name: "S25FL128S", Manufacturer: ManufacturerSpansion, Model: 0x20180180, SectorSize: 64 * 1024, Size: 16 * 1024 * 1024},
	{Name: "S25FL256S", Manufacturer: ManufacturerSpansion, Model: 0x02190080, SectorSize: 256 * 1024, Size: 32 * 1024 * 1024},
	{Name: "S25FL256S", Manufacturer: ManufacturerSpansion, Model: 0x02190180, SectorSize: 64 * 1024, Size: 32 * 1024 * 1024},
	{Name: "S25FS128S", Manufacturer: ManufacturerSpansion, Model: 0x20180081, SectorSize: 256 * 1024, Size: 16 * 1024 * 1024},
	{Name: "S25FS128S", Manufacturer: ManufacturerSpansion, Model: 0x20180181, SectorSize: 64 * 1024, Size: 16 * 1024 * 1024},
	{Name: "S25FS256S", Manufacturer: ManufacturerSpansion, Model: 0x02190081, SectorSize: 256 * 1024, Size: 32 * 1024 * 1024},
	{Name: "S25FS256S", Manufacturer: ManufacturerSpansion, Model: 0x02190181, SectorSize: 64 * 1024, Size: 32 * 1024 * 1024},
}

// LookupChip returns the known chip with the given manufacturer and
// model key.
func LookupChip(manufacturer byte, model uint32) (Chip, bool) {
	i := slices.IndexFunc(KnownChips, func(c Chip) bool {
		return c.Manufacturer == manufacturer && c.Model == model
	})
	if i < 0 {
		return Chip{}, false
	}
	return KnownChips[i], true
}
