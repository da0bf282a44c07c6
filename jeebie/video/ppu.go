// Package video implements the Game Boy (DMG/CGB) picture processing unit:
// the LCD mode timing state machine, tile/sprite decoding cache, and the
// scanline compositor that produces a 160x144 framebuffer.
package video

import (
	"log/slog"

	"github.com/jeebiecore/gbppu/jeebie/addr"
)

// Bus is the subset of the PPU's surface an embedding emulator routes
// mapped bus addresses to. A *PPU satisfies it directly; it exists so an
// embedder's bus dispatch code can depend on an interface rather than the
// concrete type.
type Bus interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
	ReadVRAM(address uint16) uint8
	WriteVRAM(address uint16, value uint8)
	ReadOAM(address uint16) uint8
	WriteOAM(address uint16, value uint8)
}

// Config selects a PPU's hardware mode at construction time.
type Config struct {
	// CGB enables CGB-only registers (VBK/BCPS/BCPD/OCPS/OCPD), the
	// second VRAM bank, and the 8-palette color caches.
	CGB bool
	// DoubleSpeed starts the controller with the double-speed clock
	// multiplier already enabled; it can also be toggled later with
	// SetDoubleSpeed.
	DoubleSpeed bool
}

// PPU owns all LCD-related state: the mode-timing controller, VRAM/OAM
// storage, the decoded tile caches, and the framebuffer they render into.
// It is not safe for concurrent use; callers serialize access the way the
// rest of the system serializes bus access.
type PPU struct {
	cgb         bool
	doubleSpeed bool

	lcdc *LCDCRegister
	stat *STATRegister

	scy, scx   uint8
	ly, lyc    uint8
	wy, wx     uint8
	bgp        *PaletteRegister
	obp0, obp1 *PaletteRegister

	vbk   *vbkRegister
	bcps  *PaletteIndexRegister
	ocps  *PaletteIndexRegister
	bcpd  *PaletteColorRegister
	ocpd  *PaletteColorRegister

	vram *vramBanks
	oam  [oamSize]byte

	dirty      [2]dirtySet
	clearCache bool

	tileCache   [2]*tileCache   // [bank]
	spriteCache [2][2]*tileCache // [bank][dmgSlot: 0=OBP0/palette0..7, 1=OBP1(DMG only)]

	clock     int
	lyWindow  int
	frameDone bool

	scanlineLog [visibleLines]scanlineParams

	fb *FrameBuffer
}

// New constructs a PPU. cfg.CGB selects CGB-only registers and the
// 8-palette color caches; a DMG PPU allocates only the single-palette DMG
// caches.
func New(cfg Config) *PPU {
	cgb := cfg.CGB
	p := &PPU{
		cgb:         cgb,
		doubleSpeed: cfg.DoubleSpeed,
		lcdc:        &LCDCRegister{},
		stat: newSTATRegister(),
		bgp:  &PaletteRegister{},
		obp0: &PaletteRegister{},
		obp1: &PaletteRegister{},
		vbk:  &vbkRegister{},
		vram: &vramBanks{},
		fb:   NewFrameBuffer(),

		dirty:    [2]dirtySet{make(dirtySet), make(dirtySet)},
		lyWindow: -1,
	}
	p.bcps = &PaletteIndexRegister{}
	p.ocps = &PaletteIndexRegister{}
	p.bcpd = newPaletteColorRegister(p.bcps)
	p.ocpd = newPaletteColorRegister(p.ocps)

	numPalettes := 1
	if cgb {
		numPalettes = cgbPaletteCount
	}
	p.tileCache[0] = newTileCache(numPalettes)
	p.spriteCache[0][0] = newTileCache(numPalettes)
	if cgb {
		p.tileCache[1] = newTileCache(numPalettes)
		p.spriteCache[1][0] = newTileCache(numPalettes)
	} else {
		p.spriteCache[0][1] = newTileCache(numPalettes)
	}

	p.clearCache = true
	return p
}

// SetDoubleSpeed toggles the CGB double-speed clock multiplier (§4.6).
func (p *PPU) SetDoubleSpeed(enabled bool) { p.doubleSpeed = enabled }

// GetFrameBuffer returns the framebuffer rendered so far this frame. Rows
// for scanlines not yet reached by Tick retain their previous frame's
// content until overwritten.
func (p *PPU) GetFrameBuffer() *FrameBuffer { return p.fb }

// ProcessingFrame reports whether the current frame is still in progress.
// It is edge-triggered on frameDone rather than a level check on mode: the
// call right after a frame completes (LY reaches 144, or the disabled-LCD
// frame clock wraps) returns false exactly once and clears the flag; every
// other call, including the remaining VBlank lines, returns true.
func (p *PPU) ProcessingFrame() bool {
	if p.frameDone {
		p.frameDone = false
		return false
	}
	return true
}

// BlankScreen fills the framebuffer with the lightest DMG shade, matching
// the solid panel a real LCD shows while disabled (LCDC bit 7 clear).
func (p *PPU) BlankScreen() {
	for y := 0; y < FramebufferHeight; y++ {
		p.fb.fillRow(y, dmgShades[0])
	}
}

// GetViewport returns the current background scroll position (SCX, SCY).
func (p *PPU) GetViewport() (x, y int) { return int(p.scx), int(p.scy) }

// GetWindowPos returns the window's screen-space origin, already applying
// the WX-7 hardware offset.
func (p *PPU) GetWindowPos() (x, y int) { return int(p.wx) - 7, int(p.wy) }

// ReadRegister reads an LCD I/O register by bus address.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return p.lcdc.Get()
	case addr.STAT:
		return p.stat.Get()
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		if !p.lcdc.LCDEnabled() {
			return 0
		}
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp.Get()
	case addr.OBP0:
		return p.obp0.Get()
	case addr.OBP1:
		return p.obp1.Get()
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	case addr.VBK:
		return p.vbk.Get()
	case addr.BCPS:
		return p.bcps.Get()
	case addr.BCPD:
		return p.bcpd.Get()
	case addr.OCPS:
		return p.ocps.Get()
	case addr.OCPD:
		return p.ocpd.Get()
	default:
		slog.Warn("video: read from unmapped register", "address", address)
		return 0xFF
	}
}

// WriteRegister writes an LCD I/O register by bus address.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case addr.LCDC:
		wasEnabled := p.lcdc.LCDEnabled()
		p.lcdc.Set(value)
		if wasEnabled && !p.lcdc.LCDEnabled() {
			// Forced reset on the falling edge of bit 7: LY and the mode
			// both read as 0 while disabled, and the disabled-LCD frame
			// clock starts counting from zero (§3 invariant 4).
			p.clock = 0
			p.ly = 0
			p.lyWindow = -1
			p.stat.setMode(modeHBlank)
		} else if !wasEnabled && p.lcdc.LCDEnabled() {
			// Rising edge: the controller restarts at the top of a frame,
			// in mode 2 of line 0.
			p.clock = 0
			p.ly = 0
			p.stat.setMode(modeOAM)
		}
	case addr.STAT:
		p.stat.Set(value)
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// Read-only; writes are ignored.
	case addr.LYC:
		p.lyc = value
	case addr.BGP:
		if p.bgp.Set(value) {
			p.clearCache = true
		}
	case addr.OBP0:
		if p.obp0.Set(value) {
			p.clearCache = true
		}
	case addr.OBP1:
		if p.obp1.Set(value) {
			p.clearCache = true
		}
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	case addr.VBK:
		if p.cgb {
			p.vbk.Set(value)
		}
	case addr.BCPS:
		if p.cgb {
			p.bcps.Set(value)
		}
	case addr.BCPD:
		if p.cgb {
			p.bcpd.Set(value)
			p.clearCache = true
		}
	case addr.OCPS:
		if p.cgb {
			p.ocps.Set(value)
		}
	case addr.OCPD:
		if p.cgb {
			p.ocpd.Set(value)
			p.clearCache = true
		}
	default:
		slog.Warn("video: write to unmapped register", "address", address, "value", value)
	}
}

// ReadVRAM reads a byte from VRAM at a bus address (0x8000-0x9FFF), from
// whichever bank VBK currently selects.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	return p.vram.read(int(p.vbk.activeBank), address-addr.VRAMStart)
}

// WriteVRAM writes a byte to VRAM at a bus address, marking the containing
// tile dirty if the write lands in the tile-data area (as opposed to a
// tile map, which carries no cached pixel data of its own).
func (p *PPU) WriteVRAM(address uint16, value uint8) {
	bank := int(p.vbk.activeBank)
	p.vram.write(bank, address-addr.VRAMStart, value)
	if address < addr.TileMap0 {
		tileBase := address &^ 0xF
		p.dirty[bank].add(tileBase)
	}
}

// ReadOAM reads a byte from Object Attribute Memory at a bus address
// (0xFE00-0xFE9F).
func (p *PPU) ReadOAM(address uint16) uint8 {
	return p.oam[address-addr.OAMStart]
}

// WriteOAM writes a byte to Object Attribute Memory.
func (p *PPU) WriteOAM(address uint16, value uint8) {
	p.oam[address-addr.OAMStart] = value
}
