package video

import "github.com/jeebiecore/gbppu/jeebie/addr"

// tilePhysicalIndex maps a tile-map byte to a physical tile index (0-383)
// in the 384-tile cache, honoring LCDC's addressing mode (§4.3):
// unsigned mode indexes tiles 0-255 directly; signed mode treats the byte
// as a signed offset from tile 256, covering physical tiles 128-383.
func tilePhysicalIndex(b byte, unsigned bool) int {
	if unsigned {
		return int(b)
	}
	return 256 + int(int8(b))
}

// mapEntry reads one tile-map cell: the tile index byte (bank 0) and, on
// CGB, the attribute byte from the same offset in bank 1 (zero on DMG).
func (p *PPU) mapEntry(mapBase uint16, col, row int) (tileByte, attr byte) {
	offset := mapBase - addr.VRAMStart + uint16(row*32+col)
	tileByte = p.vram.read(0, offset)
	if p.cgb {
		attr = p.vram.read(1, offset)
	}
	return
}

const (
	attrBank     = 3
	attrXFlip    = 5
	attrYFlip    = 6
	attrBGPrio   = 7
	attrPalMask  = 0b111
)

func hasAttr(attr byte, bitIdx uint8) bool { return attr&(1<<bitIdx) != 0 }

// scanlineParams records the register values a scanline was rendered with,
// kept for reproducible frames (§3 "Scanline parameter log").
type scanlineParams struct {
	scx, scy, wxPlus7, wy byte
	tiledataSelect        bool
}

// recordScanlineParams snapshots the registers that affect scanline ly into
// the log slot for that row, before any pixel is emitted.
func (p *PPU) recordScanlineParams(ly int) {
	p.scanlineLog[ly] = scanlineParams{
		scx:            p.scx,
		scy:            p.scy,
		wxPlus7:        p.wx + 7,
		wy:             p.wy,
		tiledataSelect: p.lcdc.UnsignedTileData(),
	}
}

// renderBackground draws the background and window portions of scanline ly
// into the framebuffer (§4.3). DMG: bit 0 of LCDC disables the background
// entirely (pixels render as color 0). CGB: that same bit instead becomes
// the master priority override consumed by renderSprites.
func (p *PPU) renderBackground(ly int) {
	p.recordScanlineParams(ly)

	if !p.cgb && !p.lcdc.BGEnabledOrCGBPriority() {
		p.fb.fillRow(ly, dmgShades[0]|COL0Flag)
		return
	}

	unsigned := p.lcdc.UnsignedTileData()
	bgMapBase := uint16(addr.TileMap0)
	if p.lcdc.BGTileMapHigh() {
		bgMapBase = addr.TileMap1
	}

	windowVisible := p.lcdc.WindowEnabled() && ly >= int(p.wy) && int(p.wx)-7 < FramebufferWidth
	windowDrawnThisLine := false

	winMapBase := uint16(addr.TileMap0)
	if p.lcdc.WindowTileMapHigh() {
		winMapBase = addr.TileMap1
	}

	for x := 0; x < FramebufferWidth; x++ {
		useWindow := windowVisible && x >= int(p.wx)-7

		var mapBase uint16
		var tileX, tileY int
		if useWindow {
			mapBase = winMapBase
			tileX = x - (int(p.wx) - 7)
			tileY = p.lyWindow + 1
			windowDrawnThisLine = true
		} else {
			mapBase = bgMapBase
			tileX = (x + int(p.scx)) & 0xFF
			tileY = (ly + int(p.scy)) & 0xFF
		}

		col, row := tileX/8, tileY/8
		tileByte, attr := p.mapEntry(mapBase, col, row)

		bank := 0
		palette := 0
		xFlip, yFlip, bgPriority := false, false, false
		if p.cgb {
			if hasAttr(attr, attrBank) {
				bank = 1
			}
			palette = int(attr & attrPalMask)
			xFlip = hasAttr(attr, attrXFlip)
			yFlip = hasAttr(attr, attrYFlip)
			bgPriority = hasAttr(attr, attrBGPrio)
		}

		physTile := tilePhysicalIndex(tileByte, unsigned)
		px, py := tileX%8, tileY%8
		if xFlip {
			px = 7 - px
		}
		if yFlip {
			py = 7 - py
		}

		pixel := p.tileCache[bank].at(palette, physTile*8+py, px)
		if bgPriority {
			pixel |= BGPriorityFlag
		}
		p.fb.set(x, ly, pixel)
	}

	if windowDrawnThisLine {
		p.lyWindow++
	}
}

// renderSprites composites sprite pixels for scanline ly on top of the
// background already drawn there, applying DMG/CGB priority rules (§4.4):
//
//   - a sprite pixel with color index 0 is always transparent
//   - DMG: a sprite with its priority bit set renders behind background
//     color indices 1-3 (but in front of index 0)
//   - CGB with LCDC bit 0 (master priority) set: a background pixel with
//     its BG-priority attribute bit set wins unless it is color index 0;
//     otherwise the DMG rule above applies
//   - CGB with LCDC bit 0 clear: an opaque sprite pixel always wins
func (p *PPU) renderSprites(ly int) {
	if !p.lcdc.SpriteEnabled() {
		return
	}

	height := p.lcdc.SpriteHeight()
	masterBGPriority := p.cgb && p.lcdc.BGEnabledOrCGBPriority()

	for _, s := range p.spritesOnLine(ly) {
		row := ly - s.y
		if s.yFlip() {
			row = height - 1 - row
		}

		tile := int(s.tile)
		if height == 16 {
			tile &^= 1
		}
		tile += row / 8
		rowInTile := row % 8

		bank := s.bank()
		cacheSlot := 0
		palette := 0
		if p.cgb {
			palette = int(s.cgbPalette())
		} else {
			cacheSlot = s.dmgPalette()
		}

		for col := 0; col < 8; col++ {
			sx := s.x + col
			if sx < 0 || sx >= FramebufferWidth {
				continue
			}

			px := col
			if s.xFlip() {
				px = 7 - px
			}

			pixel := p.spriteCache[bank][cacheSlot].at(palette, tile*8+rowInTile, px)
			if pixel&COL0Flag != 0 {
				continue // transparent
			}

			bgPixel := p.fb.Get(sx, ly)
			bgIsColor0 := bgPixel&COL0Flag != 0
			bgWins := false
			if masterBGPriority && bgPixel&BGPriorityFlag != 0 {
				// Master priority still yields to an opaque sprite when the
				// bg pixel itself is color 0 (§4.4).
				bgWins = !bgIsColor0
			} else if s.bgPrio() && !bgIsColor0 && (!p.cgb || masterBGPriority) {
				bgWins = true
			}
			if bgWins {
				continue
			}

			p.fb.set(sx, ly, pixel)
		}
	}
}
