package video

// cgbPaletteCount is the number of independently addressable CGB palettes
// (8 for background, 8 for objects), each holding 4 colors (§3, §4.5).
const cgbPaletteCount = 8

// PaletteIndexRegister backs BCPS/OCPS: the cursor into the 64-byte palette
// RAM plus the auto-increment flag, decoded from a single written byte
// per §4.5.
type PaletteIndexRegister struct {
	value       uint8
	initialized bool
	autoInc     bool
	index       uint8 // 0..31, word position in palette memory
	lowByte     bool  // true = low byte of the color word, false = high byte
}

// Set decodes a BCPS/OCPS write. A write that doesn't change the byte is a
// no-op, mirroring PaletteRegister and PyBoy's PaletteIndexRegister. The
// very first write always decodes even if it happens to be 0x00, matching
// the zero Go value: without the initialized guard that write would be
// mistaken for a no-op and lowByte would stay at its false zero value
// instead of the true a decoded 0x00 requires.
func (r *PaletteIndexRegister) Set(value uint8) {
	if r.initialized && r.value == value {
		return
	}
	r.initialized = true
	r.value = value
	r.lowByte = value&0b1 == 0
	r.index = (value >> 1) & 0b11111
	r.autoInc = value&0x80 != 0
}

func (r *PaletteIndexRegister) Get() uint8 { return r.value }

// advance applies the auto-increment rule after a color-data write: bump
// the 6-bit byte address (index, lowByte) by one, wrapping from the high
// byte of the last palette word back to the low byte of the first, and
// preserving the auto-increment bit (§4.5). The address is recomputed from
// the decoded index/lowByte fields rather than incrementing r.value
// directly, since the raw byte's bit 6 is unused and a plain +1 would leak
// into it instead of wrapping at 64.
func (r *PaletteIndexRegister) advance() {
	if !r.autoInc {
		return
	}
	byteAddr := r.index << 1
	if !r.lowByte {
		byteAddr |= 1
	}
	byteAddr = (byteAddr + 1) & 0x3F
	r.Set(0x80 | byteAddr)
}

// PaletteColorRegister backs BCPD/OCPD: 64 bytes of palette RAM (32 15-bit
// colors packed two bytes each), addressed through a PaletteIndexRegister.
type PaletteColorRegister struct {
	index *PaletteIndexRegister
	mem   [cgbPaletteCount * 4]uint16
}

func newPaletteColorRegister(index *PaletteIndexRegister) *PaletteColorRegister {
	p := &PaletteColorRegister{index: index}
	// Placeholder boot-time contents; real hardware boot values are
	// unspecified (§9 Open Question (a)) so any deterministic seed is fine.
	seed := [4]uint16{0x1CE7, 0x1E19, 0x7E31, 0x217B}
	for n := 0; n < len(p.mem); n += 4 {
		copy(p.mem[n:n+4], seed[:])
	}
	return p
}

// Set handles a BCPD/OCPD write: updates the half (low/high byte) selected
// by the index register's hl bit, then applies auto-increment.
func (p *PaletteColorRegister) Set(value uint8) {
	i := p.index.index
	word := p.mem[i]
	if p.index.lowByte {
		p.mem[i] = (word & 0xFF00) | uint16(value)
	} else {
		p.mem[i] = (word &^ 0xFF00) | (uint16(value) << 8)
	}
	p.index.advance()
}

// Get returns the byte half currently selected by the index register.
func (p *PaletteColorRegister) Get() uint8 {
	word := p.mem[p.index.index]
	if p.index.lowByte {
		return uint8(word)
	}
	return uint8(word >> 8)
}

// getColor returns an RGB888 color (0xRRGGBB00, flags clear) for palette
// and color, expanding the stored 15-bit RGB555 value per §4.5. Out-of-range
// access is logged and returns zero rather than panicking (§7).
func (p *PaletteColorRegister) getColor(palette, color uint8) uint32 {
	if palette > 7 || color > 3 {
		logPaletteRangeError(palette, color)
		return 0
	}
	c := p.mem[int(palette)*4+int(color)] & 0x7FFF
	r := uint8((c & 0x1F) << 3)
	g := uint8(((c >> 5) & 0x1F) << 3)
	b := uint8(((c >> 10) & 0x1F) << 3)
	return packRGB(r, g, b)
}
