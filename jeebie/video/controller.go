package video

import "github.com/jeebiecore/gbppu/jeebie/addr"

// Mode durations in T-cycles at normal speed (§4.6). Mode 2 (OAM scan) and
// mode 3 (pixel transfer) are fixed-length here rather than the variable
// length real hardware exhibits with sprite/window overhead; mode 0
// (HBlank) absorbs the remainder so every line totals 456 cycles.
const (
	mode2Cycles     = 80
	mode3Cycles     = 170
	mode0Cycles     = 206
	cyclesPerLine   = mode2Cycles + mode3Cycles + mode0Cycles
	visibleLines    = 144
	vblankLines     = 10
	totalLines      = visibleLines + vblankLines
	cyclesPerFrame  = cyclesPerLine * totalLines
)

const (
	modeHBlank uint8 = 0
	modeVBlank uint8 = 1
	modeOAM    uint8 = 2
	modeTransfer uint8 = 3
)

// speedScale returns the cycle-count multiplier for the controller's clock
// accumulator. Double speed doubles every mode's T-cycle budget so the same
// number of PPU Tick calls still spans one real-time frame (§4.6).
func (p *PPU) speedScale() int {
	if p.doubleSpeed {
		return 2
	}
	return 1
}

// Tick advances the LCD controller by cycles T-cycles, rendering completed
// scanlines and returning the interrupt bits (Interrupt bitmask) raised
// during this call. When the LCD is disabled (LCDC bit 7 clear), LY and
// mode are already frozen at 0 by the write that cleared bit 7; Tick then
// only advances the frame clock modulo one frame's length, marking
// frameDone and blanking the screen each time it wraps (§4.6).
func (p *PPU) Tick(cycles int) uint8 {
	if !p.lcdc.LCDEnabled() {
		scale := p.speedScale()
		full := cyclesPerFrame * scale
		p.clock += cycles
		for p.clock >= full {
			p.clock -= full
			p.frameDone = true
			p.BlankScreen()
		}
		return 0
	}

	var irq uint8
	p.clock += cycles
	scale := p.speedScale()

	for {
		switch p.stat.mode {
		case modeOAM:
			if p.clock < mode2Cycles*scale {
				return irq
			}
			p.clock -= mode2Cycles * scale
			if p.stat.setMode(modeTransfer) {
				irq |= uint8(addr.LCDSTATInterrupt)
			}

		case modeTransfer:
			if p.clock < mode3Cycles*scale {
				return irq
			}
			p.clock -= mode3Cycles * scale
			p.rebuildTileCaches()
			p.renderBackground(int(p.ly))
			p.renderSprites(int(p.ly))
			if p.stat.setMode(modeHBlank) {
				irq |= uint8(addr.LCDSTATInterrupt)
			}

		case modeHBlank:
			if p.clock < mode0Cycles*scale {
				return irq
			}
			p.clock -= mode0Cycles * scale
			p.ly++
			if p.stat.updateLYC(p.ly, p.lyc) {
				irq |= uint8(addr.LCDSTATInterrupt)
			}
			if int(p.ly) == visibleLines {
				if p.stat.setMode(modeVBlank) {
					irq |= uint8(addr.LCDSTATInterrupt)
				}
				irq |= uint8(addr.VBlankInterrupt)
				p.frameDone = true
			} else {
				if p.stat.setMode(modeOAM) {
					irq |= uint8(addr.LCDSTATInterrupt)
				}
			}

		case modeVBlank:
			if p.clock < cyclesPerLine*scale {
				return irq
			}
			p.clock -= cyclesPerLine * scale
			p.ly++
			if int(p.ly) > totalLines-1 {
				p.ly = 0
				p.lyWindow = -1
			}
			if p.stat.updateLYC(p.ly, p.lyc) {
				irq |= uint8(addr.LCDSTATInterrupt)
			}
			if p.ly == 0 {
				if p.stat.setMode(modeOAM) {
					irq |= uint8(addr.LCDSTATInterrupt)
				}
			}
		}
	}
}

// TickFrame advances the controller by exactly one full frame's worth of
// T-cycles, honoring the current double-speed setting, and returns the OR
// of every interrupt bit raised along the way.
func (p *PPU) TickFrame() uint8 {
	return p.Tick(cyclesPerFrame * p.speedScale())
}

// CyclesToMode0 returns the number of T-cycles remaining until the current
// line reaches HBlank, used by callers that want to schedule work relative
// to the PPU's mode boundaries rather than polling Tick every cycle.
func (p *PPU) CyclesToMode0() int {
	scale := p.speedScale()
	switch p.stat.mode {
	case modeOAM:
		return (mode2Cycles-p.clock/scale)*scale + mode3Cycles*scale
	case modeTransfer:
		return (mode3Cycles - p.clock/scale) * scale
	case modeVBlank:
		return (cyclesPerLine-p.clock/scale)*scale +
			(totalLines-1-int(p.ly))*cyclesPerLine*scale +
			(mode2Cycles+mode3Cycles)*scale
	default:
		return 0
	}
}

// CyclesToInterrupt returns the number of T-cycles until the controller
// finishes the current scanline (the next LY change), whichever mode it is
// in. It does not consult the interrupt sources enabled in STAT, and it does
// not stop at mode changes within the line such as the entry to HBlank. It
// returns -1 while the LCD is disabled.
func (p *PPU) CyclesToInterrupt() int {
	scale := p.speedScale()
	remainingInLine := func() int {
		switch p.stat.mode {
		case modeOAM:
			return (mode2Cycles-p.clock/scale)*scale + mode3Cycles*scale + mode0Cycles*scale
		case modeTransfer:
			return (mode3Cycles-p.clock/scale)*scale + mode0Cycles*scale
		case modeHBlank:
			return (mode0Cycles - p.clock/scale) * scale
		default:
			return (cyclesPerLine - p.clock/scale) * scale
		}
	}

	if !p.lcdc.LCDEnabled() {
		return -1
	}
	return remainingInLine()
}
