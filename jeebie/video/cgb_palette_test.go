package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteIndexRegisterDecode(t *testing.T) {
	var idx PaletteIndexRegister
	idx.Set(0b1_0001010) // auto-inc, index=5, low byte

	assert.True(t, idx.autoInc)
	assert.Equal(t, uint8(5), idx.index)
	assert.True(t, idx.lowByte)
}

func TestPaletteIndexRegisterNoOpOnUnchangedWrite(t *testing.T) {
	var idx PaletteIndexRegister
	idx.Set(0x80)
	idx.index = 99 // would never happen from Set, proves no-op path is taken
	idx.Set(0x80)

	assert.Equal(t, uint8(99), idx.index)
}

func TestPaletteIndexRegisterAutoIncrementAdvancesWithinWord(t *testing.T) {
	var idx PaletteIndexRegister
	idx.Set(0x80 | (5 << 1)) // index 5, low byte, auto-inc on

	idx.advance()

	assert.Equal(t, uint8(5), idx.index, "low->high advance stays within the same word")
	assert.False(t, idx.lowByte)
}

func TestPaletteIndexRegisterAutoIncrementWrapsAtLastWord(t *testing.T) {
	var idx PaletteIndexRegister
	idx.Set(0x80 | (31 << 1) | 1) // index 31 (last word), high byte, auto-inc on

	idx.advance()

	assert.Equal(t, uint8(0), idx.index)
	assert.True(t, idx.lowByte)
	assert.True(t, idx.autoInc)
	assert.Equal(t, uint8(0x80), idx.Get(), "wrapped state must be canonical, not leak bit 6")
}

func TestPaletteColorRegisterRoundTrip(t *testing.T) {
	var idx PaletteIndexRegister
	pc := newPaletteColorRegister(&idx)

	idx.Set(0x00) // index 0, low byte, no auto-inc
	pc.Set(0x34)
	idx.Set(0x01) // index 0, high byte
	pc.Set(0x12)

	assert.Equal(t, uint16(0x1234), pc.mem[0])

	idx.Set(0x00)
	assert.Equal(t, uint8(0x34), pc.Get())
	idx.Set(0x01)
	assert.Equal(t, uint8(0x12), pc.Get())
}

func TestPaletteColorRegisterAdvancesWithinWordAfterLowByteWrite(t *testing.T) {
	var idx PaletteIndexRegister
	pc := newPaletteColorRegister(&idx)
	idx.Set(0x80) // index 0, low byte, auto-inc on

	pc.Set(0xFF)

	assert.Equal(t, uint8(0), idx.index, "writing the low byte advances to the high byte of the same word")
	assert.False(t, idx.lowByte)
}

func TestPaletteColorRegisterAdvancesToNextWordAfterHighByteWrite(t *testing.T) {
	var idx PaletteIndexRegister
	pc := newPaletteColorRegister(&idx)
	idx.Set(0x81) // index 0, high byte, auto-inc on

	pc.Set(0xFF)

	assert.Equal(t, uint8(1), idx.index, "writing the high byte advances to the next word's low byte")
	assert.True(t, idx.lowByte)
}

func TestGetColorExpandsRGB555(t *testing.T) {
	var idx PaletteIndexRegister
	pc := newPaletteColorRegister(&idx)
	pc.mem[4] = 0x7FFF // palette 1, color 0: all five-bit channels maxed

	color := pc.getColor(1, 0)

	assert.Equal(t, uint32(0xF8F8F800), color)
}

func TestGetColorOutOfRangeReturnsZero(t *testing.T) {
	var idx PaletteIndexRegister
	pc := newPaletteColorRegister(&idx)

	assert.Equal(t, uint32(0), pc.getColor(8, 0))
	assert.Equal(t, uint32(0), pc.getColor(0, 4))
}
