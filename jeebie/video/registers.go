package video

import (
	"fmt"

	"github.com/jeebiecore/gbppu/jeebie/bit"
)

// lcdcFlag indexes the bits of the LCDC register.
//
//	Bit 7 - LCD Display Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Select         (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF signed, 1=8000-8FFF unsigned)
//	Bit 3 - BG Tile Map Select             (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG Display / CGB Master Priority
type lcdcFlag uint8

const (
	lcdDisplayEnable       lcdcFlag = 7
	windowTileMapSelect    lcdcFlag = 6
	windowDisplayEnable    lcdcFlag = 5
	bgWindowTileDataSelect lcdcFlag = 4
	bgTileMapSelect        lcdcFlag = 3
	spriteSize             lcdcFlag = 2
	spriteDisplayEnable    lcdcFlag = 1
	bgDisplay              lcdcFlag = 0
)

// LCDCRegister decodes the LCD Control register into named flags, the way
// PyBoy's LCDCRegister and go-jeebie's readLCDCVariable helper do, folded
// into a single type that stores the raw byte and decodes each flag on demand.
type LCDCRegister struct {
	value uint8
}

func (r *LCDCRegister) Get() uint8 { return r.value }

func (r *LCDCRegister) Set(value uint8) { r.value = value }

func (r *LCDCRegister) has(flag lcdcFlag) bool { return bit.IsSet(uint8(flag), r.value) }

func (r *LCDCRegister) LCDEnabled() bool          { return r.has(lcdDisplayEnable) }
func (r *LCDCRegister) WindowTileMapHigh() bool    { return r.has(windowTileMapSelect) }
func (r *LCDCRegister) WindowEnabled() bool        { return r.has(windowDisplayEnable) }
func (r *LCDCRegister) UnsignedTileData() bool     { return r.has(bgWindowTileDataSelect) }
func (r *LCDCRegister) BGTileMapHigh() bool         { return r.has(bgTileMapSelect) }
func (r *LCDCRegister) SpriteHeight() int {
	if r.has(spriteSize) {
		return 16
	}
	return 8
}
func (r *LCDCRegister) SpriteEnabled() bool { return r.has(spriteDisplayEnable) }

// BGEnabledOrCGBPriority returns the raw bit 0 value. On DMG it means
// "background enabled"; on CGB it is repurposed as the master sprite
// priority bit (§4.4).
func (r *LCDCRegister) BGEnabledOrCGBPriority() bool { return r.has(bgDisplay) }

// String renders the decoded flags for debug logging.
func (r *LCDCRegister) String() string {
	return fmt.Sprintf("LCDC{enabled=%t win=%t winMap=%t unsignedData=%t bgMap=%t objHeight=%d obj=%t bg=%t}",
		r.LCDEnabled(), r.WindowEnabled(), r.WindowTileMapHigh(), r.UnsignedTileData(),
		r.BGTileMapHigh(), r.SpriteHeight(), r.SpriteEnabled(), r.BGEnabledOrCGBPriority())
}

// statFlag indexes the bits of the STAT register.
type statFlag uint8

const (
	statLYCIrq       statFlag = 6
	statOAMIrq       statFlag = 5
	statVBlankIrq    statFlag = 4
	statHBlankIrq    statFlag = 3
	statLYCCondition statFlag = 2
)

// statWritableMask covers the bits a bus write may change; bit 7 is
// constant, and bits 0-2 (mode + LYC flag) are driven only by the
// controller (§4.1).
const statWritableMask uint8 = 0b0111_1000
const statReadOnlyMask uint8 = 0b1000_0111

// STATRegister holds the LCD status register: interrupt enables (bits
// 3-6), the LYC coincidence flag (bit 2) and the current mode (bits 0-1).
type STATRegister struct {
	value uint8
	mode  uint8
}

func newSTATRegister() *STATRegister {
	return &STATRegister{value: 0b1000_0000}
}

// Get returns the externally visible byte (bit 7 constant, mode bits
// reflecting the controller's current mode).
func (s *STATRegister) Get() uint8 {
	return (s.value &^ 0b11) | s.mode
}

// Set overlays the writable bits of value onto the register, preserving
// bit 7 and the read-only mode/LYC bits (§4.1).
func (s *STATRegister) Set(value uint8) {
	s.value = (s.value & statReadOnlyMask) | (value & statWritableMask)
}

func (s *STATRegister) irqEnabled(flag statFlag) bool { return bit.IsSet(uint8(flag), s.value) }

func (s *STATRegister) lycFlagSet() bool { return bit.IsSet(uint8(statLYCCondition), s.value) }

func (s *STATRegister) setLYCFlag(set bool) {
	if set {
		s.value = bit.Set(uint8(statLYCCondition), s.value)
	} else {
		s.value = bit.Reset(uint8(statLYCCondition), s.value)
	}
}

// setMode updates the current mode and returns true if the transition
// should raise INTR_LCDC (mode has an enabled interrupt source; mode 3
// never does).
func (s *STATRegister) setMode(mode uint8) (raiseIrq bool) {
	s.mode = mode
	switch mode {
	case 0:
		return s.irqEnabled(statHBlankIrq)
	case 1:
		return s.irqEnabled(statVBlankIrq)
	case 2:
		return s.irqEnabled(statOAMIrq)
	default:
		return false
	}
}

// updateLYC recomputes the coincidence flag for the given LY/LYC pair and
// reports whether an INTR_LCDC should fire (flag just became set and the
// LYC interrupt source is enabled).
func (s *STATRegister) updateLYC(ly, lyc uint8) (raiseIrq bool) {
	equal := ly == lyc
	wasSet := s.lycFlagSet()
	s.setLYCFlag(equal)
	return equal && !wasSet && s.irqEnabled(statLYCIrq)
}

// PaletteRegister caches the four 2-bit color indices encoded in a DMG
// palette byte (BGP/OBP0/OBP1), per §4.1. Writing an unchanged byte is a
// documented no-op (Pokemon Blue rewrites BGP every frame without changing
// it); callers use Set's changed result to decide whether to invalidate caches.
type PaletteRegister struct {
	value  uint8
	lookup [4]uint8
}

// Set updates the palette from a bus write and reports whether the value
// actually changed.
func (p *PaletteRegister) Set(value uint8) (changed bool) {
	if p.value == value {
		return false
	}
	p.value = value
	for i := range p.lookup {
		p.lookup[i] = (value >> (uint(i) * 2)) & 0b11
	}
	return true
}

func (p *PaletteRegister) Get() uint8 { return p.value }

// ColorIndex returns the DMG color index (0-3) that code maps to.
func (p *PaletteRegister) ColorIndex(code uint8) uint8 { return p.lookup[code&0b11] }

// String renders the raw byte and its decoded lookup table.
func (p *PaletteRegister) String() string {
	return fmt.Sprintf("Palette{value=%#02x lookup=%v}", p.value, p.lookup)
}

// String renders the current mode, LYC flag and enabled interrupt sources.
func (s *STATRegister) String() string {
	return fmt.Sprintf("STAT{mode=%d lyc=%t oamIrq=%t vblankIrq=%t hblankIrq=%t lycIrq=%t}",
		s.mode, s.lycFlagSet(), s.irqEnabled(statOAMIrq), s.irqEnabled(statVBlankIrq),
		s.irqEnabled(statHBlankIrq), s.irqEnabled(statLYCIrq))
}
