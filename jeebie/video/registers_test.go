package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLCDCRegisterFlags(t *testing.T) {
	var r LCDCRegister
	r.Set(0b1001_0011)

	assert.True(t, r.LCDEnabled())
	assert.False(t, r.WindowTileMapHigh())
	assert.False(t, r.WindowEnabled())
	assert.True(t, r.UnsignedTileData())
	assert.False(t, r.BGTileMapHigh())
	assert.Equal(t, 8, r.SpriteHeight())
	assert.True(t, r.SpriteEnabled())
	assert.True(t, r.BGEnabledOrCGBPriority())

	r.Set(0b0000_0100)
	assert.Equal(t, 16, r.SpriteHeight())
}

func TestSTATRegisterPreservesReadOnlyBits(t *testing.T) {
	s := newSTATRegister()
	s.mode = 2
	s.setLYCFlag(true)

	s.Set(0b0010_1111) // attempt to write mode bits and LYC flag too

	assert.Equal(t, uint8(2), s.Get()&0b11, "mode bits must survive a register write")
	assert.True(t, s.lycFlagSet())
}

func TestSTATRegisterModeTransitionInterrupts(t *testing.T) {
	s := newSTATRegister()
	s.Set(0b0010_1000) // enable OAM + HBlank irqs, leave VBlank/LYC off

	assert.True(t, s.setMode(2), "OAM irq enabled should raise on entering mode 2")
	assert.False(t, s.setMode(3), "mode 3 never raises STAT")
	assert.True(t, s.setMode(0), "HBlank irq enabled should raise on entering mode 0")
	assert.False(t, s.setMode(1), "VBlank irq source disabled should not raise")
}

func TestSTATRegisterLYCEdgeTriggered(t *testing.T) {
	s := newSTATRegister()
	s.Set(0b0100_0000) // enable LYC irq

	assert.True(t, s.updateLYC(10, 10))
	assert.False(t, s.updateLYC(10, 10), "must not re-fire while LY==LYC persists")
	assert.False(t, s.updateLYC(11, 10))
	assert.True(t, s.updateLYC(10, 10), "re-arms once LY moves away and back")
}

func TestPaletteRegisterNoOpOnUnchangedWrite(t *testing.T) {
	var p PaletteRegister

	assert.True(t, p.Set(0xE4))
	assert.False(t, p.Set(0xE4), "rewriting the same byte must report no change")
	assert.True(t, p.Set(0x1B))
}

func TestPaletteRegisterColorIndex(t *testing.T) {
	var p PaletteRegister
	p.Set(0b11_10_01_00) // index3->3, index2->2, index1->1, index0->0

	assert.Equal(t, uint8(0), p.ColorIndex(0))
	assert.Equal(t, uint8(1), p.ColorIndex(1))
	assert.Equal(t, uint8(2), p.ColorIndex(2))
	assert.Equal(t, uint8(3), p.ColorIndex(3))
}
