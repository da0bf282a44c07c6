package video

import "sort"

// maxSpritesPerLine is the hardware cap on sprites considered for a single
// scanline (§4.4).
const maxSpritesPerLine = 10

// sprite is a single OAM entry decoded for rendering.
type sprite struct {
	oamIndex int
	y        int // screen Y of the sprite's top row (already -16 adjusted)
	x        int // screen X of the sprite's left column (already -8 adjusted)
	tile     uint8
	flags    uint8
}

const (
	spriteFlagPriority  = 7 // 1 = behind bg colors 1-3
	spriteFlagYFlip     = 6
	spriteFlagXFlip     = 5
	spriteFlagDMGPal    = 4 // 0=OBP0, 1=OBP1
	spriteFlagBank      = 3 // CGB: 0=bank0, 1=bank1
	spriteFlagCGBPalLow = 0 // CGB: bits 0-2 select palette 0-7
)

func (s sprite) has(bit uint8) bool { return s.flags&(1<<bit) != 0 }

func (s sprite) yFlip() bool  { return s.has(spriteFlagYFlip) }
func (s sprite) xFlip() bool  { return s.has(spriteFlagXFlip) }
func (s sprite) bgPrio() bool { return s.has(spriteFlagPriority) }
func (s sprite) bank() int {
	if s.has(spriteFlagBank) {
		return 1
	}
	return 0
}
func (s sprite) dmgPalette() int {
	if s.has(spriteFlagDMGPal) {
		return 1
	}
	return 0
}
func (s sprite) cgbPalette() uint8 { return s.flags & 0b111 }

// readOAM decodes every sprite entry from OAM memory.
func (p *PPU) readOAM() [40]sprite {
	var sprites [40]sprite
	for i := 0; i < 40; i++ {
		base := i * 4
		sprites[i] = sprite{
			oamIndex: i,
			y:        int(p.oam[base]) - 16,
			x:        int(p.oam[base+1]) - 8,
			tile:     p.oam[base+2],
			flags:    p.oam[base+3],
		}
	}
	return sprites
}

// spritesOnLine selects and orders the sprites visible on scanline ly,
// applying the 10-sprites-per-line hardware cap and the DMG/CGB priority
// ordering rules (§4.4):
//
//   - DMG: sorted by (x ascending, oam_index ascending); the list is
//     reverse-rendered so the lowest x (and, on ties, lowest oam_index)
//     ends up drawn last, i.e. on top.
//   - CGB: sorted by (oam_index ascending) only, also reverse-rendered, so
//     lower OAM index wins regardless of x.
func (p *PPU) spritesOnLine(ly int) []sprite {
	all := p.readOAM()
	height := p.lcdc.SpriteHeight()

	var onLine []sprite
	for _, s := range all {
		if ly >= s.y && ly < s.y+height {
			onLine = append(onLine, s)
			if len(onLine) == maxSpritesPerLine {
				break
			}
		}
	}

	if p.cgb {
		sort.SliceStable(onLine, func(i, j int) bool {
			return onLine[i].oamIndex < onLine[j].oamIndex
		})
	} else {
		sort.SliceStable(onLine, func(i, j int) bool {
			if onLine[i].x != onLine[j].x {
				return onLine[i].x < onLine[j].x
			}
			return onLine[i].oamIndex < onLine[j].oamIndex
		})
	}

	// Reverse so the highest-priority entry (lowest sort key) is rendered
	// last and therefore wins any per-pixel overlap.
	for i, j := 0, len(onLine)-1; i < j; i, j = i+1, j-1 {
		onLine[i], onLine[j] = onLine[j], onLine[i]
	}
	return onLine
}
