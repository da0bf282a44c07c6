package video

import "github.com/jeebiecore/gbppu/jeebie/addr"

// vramBankSize is the size of one VRAM bank (0x8000-0x9FFF).
const vramBankSize = 0x2000

// oamSize is the size of Object Attribute Memory (40 sprites * 4 bytes).
const oamSize = 160

// vramBanks holds the raw VRAM storage. Bank 1 only exists in CGB mode; it
// is allocated regardless to keep indexing simple, and is simply never
// written or read from on DMG.
type vramBanks struct {
	bank [2][vramBankSize]byte
}

func (v *vramBanks) read(bankIdx int, offset uint16) byte {
	return v.bank[bankIdx][offset]
}

func (v *vramBanks) write(bankIdx int, offset uint16, value byte) {
	v.bank[bankIdx][offset] = value
}

// dirtySet tracks tile base addresses (bus addresses, e.g. 0x8000, 0x8010,
// ...) whose pixel data changed since the last cache rebuild. A Go map is
// the natural hash-set here (§9 design note calls for "an ordered or hash
// set of tile base addresses").
type dirtySet map[uint16]struct{}

func (d dirtySet) add(tileBase uint16) { d[tileBase] = struct{}{} }

func (d dirtySet) clear() {
	for k := range d {
		delete(d, k)
	}
}

// markAllTiles seeds the set with every tile base address in VRAM
// (0x8000..0x97F0 step 16), used on a full cache rebuild (§4.2).
func (d dirtySet) markAllTiles() {
	d.clear()
	for t := addr.TileData0; t < addr.TileMap0; t += 16 {
		d.add(t)
	}
}

// vbkRegister selects the active VRAM bank on CGB (§3).
type vbkRegister struct {
	activeBank uint8
}

func (v *vbkRegister) Set(value uint8) { v.activeBank = value & 1 }

// Get returns the register's externally visible value: bit 0 is the bank,
// the rest read as 1.
func (v *vbkRegister) Get() uint8 { return v.activeBank | 0xFE }
