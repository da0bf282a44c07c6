package video

import "github.com/jeebiecore/gbppu/jeebie/addr"

// tilesPerBank is the number of 8x8 tiles addressable within one 8KB VRAM
// bank's tile-data area (384 tiles of 16 bytes each, per §3 "Tile cache").
const tilesPerBank = 384

// DMG greyscale shades, indexed by the 2-bit color index a palette register
// resolves a tile's color code to. Matches the classic four-shade DMG
// palette (white/light-grey/dark-grey/black).
var dmgShades = [4]uint32{
	packRGB(0xFF, 0xFF, 0xFF), // 0: white
	packRGB(0x98, 0x98, 0x98), // 1: light grey
	packRGB(0x4C, 0x4C, 0x4C), // 2: dark grey
	packRGB(0x00, 0x00, 0x00), // 3: black
}

// DefaultCGBCompatPalette answers §9 Open Question (a) for the one case the
// spec calls out concretely: running a DMG cartridge on a CGB-configured
// PPU. These are PyBoy's placeholder bg/obj0/obj1 triples
// (original_source/pyboy/core/lcd.py), not real boot ROM values — hardware
// boot palette contents remain unspecified.
var DefaultCGBCompatPalette = struct {
	BG, OBP0, OBP1 [4]uint32
}{
	BG:   [4]uint32{packRGB(0xFF, 0xFF, 0xFF), packRGB(0x7B, 0xFF, 0x31), packRGB(0x00, 0x63, 0xC5), packRGB(0x00, 0x00, 0x00)},
	OBP0: [4]uint32{packRGB(0xFF, 0xFF, 0xFF), packRGB(0xFF, 0x84, 0x84), packRGB(0xFF, 0x84, 0x84), packRGB(0x00, 0x00, 0x00)},
	OBP1: [4]uint32{packRGB(0xFF, 0xFF, 0xFF), packRGB(0xFF, 0x84, 0x84), packRGB(0xFF, 0x84, 0x84), packRGB(0x00, 0x00, 0x00)},
}

// tileCache holds pre-decoded per-pixel colors for every tile, one sub-table
// per palette. Index (palette, y, x) where y = 8*tileIndex + rowWithinTile.
type tileCache struct {
	numPalettes int
	data        []uint32
}

func newTileCache(numPalettes int) *tileCache {
	return &tileCache{
		numPalettes: numPalettes,
		data:        make([]uint32, numPalettes*tilesPerBank*8*8),
	}
}

func (c *tileCache) idx(palette, y, x int) int {
	return (palette*tilesPerBank*8+y)*8 + x
}

func (c *tileCache) at(palette, y, x int) uint32 {
	return c.data[c.idx(palette, y, x)]
}

func (c *tileCache) set(palette, y, x int, value uint32) {
	c.data[c.idx(palette, y, x)] = value
}

// rebuildTileCaches rebuilds every dirty tile's decoded pixels (§4.2). It is
// invoked once per HBlank, before scanline rendering. A pending clearCache
// request first seeds both dirty sets with every tile address, guaranteeing
// a full rebuild (used after LoadState and on palette changes).
func (p *PPU) rebuildTileCaches() {
	if p.clearCache {
		p.dirty[0].markAllTiles()
		if p.cgb {
			p.dirty[1].markAllTiles()
		}
		p.clearCache = false
	}

	p.updateBankTiles(0)
	if p.cgb {
		p.updateBankTiles(1)
	}
	p.dirty[0].clear()
	p.dirty[1].clear()
}

// updateBankTiles rebuilds the dirty tiles of one VRAM bank into that
// bank's tile/sprite caches.
func (p *PPU) updateBankTiles(bank int) {
	for tileBase := range p.dirty[bank] {
		tileIndex := int(tileBase-addr.VRAMStart) / 16
		for row := 0; row < 8; row++ {
			offset := (tileBase - addr.VRAMStart) + uint16(row*2)
			low := p.vram.read(bank, offset)
			high := p.vram.read(bank, offset+1)
			y := tileIndex*8 + row

			for x := 0; x < 8; x++ {
				code := colorCode(low, high, x)
				isZero := code == 0

				if !p.cgb {
					bg := dmgShades[p.bgp.ColorIndex(code)]
					obj0 := dmgShades[p.obp0.ColorIndex(code)]
					obj1 := dmgShades[p.obp1.ColorIndex(code)]
					if isZero {
						bg |= COL0Flag
						obj0 |= COL0Flag
						obj1 |= COL0Flag
					}
					p.tileCache[bank].set(0, y, x, bg)
					p.spriteCache[bank][0].set(0, y, x, obj0)
					p.spriteCache[bank][1].set(0, y, x, obj1)
					continue
				}

				for palette := 0; palette < cgbPaletteCount; palette++ {
					bg := p.bcpd.getColor(uint8(palette), code)
					obj := p.ocpd.getColor(uint8(palette), code)
					if isZero {
						bg |= COL0Flag
						obj |= COL0Flag
					}
					p.tileCache[bank].set(palette, y, x, bg)
					p.spriteCache[bank][0].set(palette, y, x, obj)
				}
			}
		}
	}
}
