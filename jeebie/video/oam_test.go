package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setSprite(p *PPU, index int, y, x int, tile, flags uint8) {
	base := index * 4
	p.oam[base] = uint8(y + 16)
	p.oam[base+1] = uint8(x + 8)
	p.oam[base+2] = tile
	p.oam[base+3] = flags
}

func TestSpritesOnLineFiltersByHeight(t *testing.T) {
	p := New(Config{})
	setSprite(p, 0, 10, 20, 1, 0)
	setSprite(p, 1, 30, 40, 2, 0)

	sprites := p.spritesOnLine(10)
	assert.Len(t, sprites, 1)
	assert.Equal(t, 0, sprites[0].oamIndex)

	assert.Empty(t, p.spritesOnLine(5))
}

func TestSpritesOnLineCapsAtTen(t *testing.T) {
	p := New(Config{})
	for i := 0; i < 15; i++ {
		setSprite(p, i, 50, i*5, uint8(i), 0)
	}

	sprites := p.spritesOnLine(50)
	assert.Len(t, sprites, maxSpritesPerLine)
}

func TestSpritesOnLineDMGOrdersByXThenIndex(t *testing.T) {
	p := New(Config{})
	setSprite(p, 0, 20, 50, 0, 0)
	setSprite(p, 1, 20, 30, 0, 0)
	setSprite(p, 2, 20, 30, 0, 0)

	sprites := p.spritesOnLine(20)

	// Lowest x (and lowest index on ties) must be rendered last (drawn on
	// top), so it appears last in the returned, already-reversed slice.
	assert.Equal(t, 0, sprites[0].oamIndex)
	assert.Equal(t, 2, sprites[1].oamIndex)
	assert.Equal(t, 1, sprites[2].oamIndex)
}

func TestSpritesOnLineCGBOrdersByIndexOnly(t *testing.T) {
	p := New(Config{CGB: true})
	setSprite(p, 0, 20, 50, 0, 0)
	setSprite(p, 1, 20, 10, 0, 0)

	sprites := p.spritesOnLine(20)

	// Lowest index is rendered last (drawn on top) even though sprite 1 has
	// the smaller x.
	assert.Equal(t, 1, sprites[0].oamIndex)
	assert.Equal(t, 0, sprites[1].oamIndex)
}

func TestSpriteFlagDecoding(t *testing.T) {
	s := sprite{flags: 0b1110_1001}

	assert.True(t, s.bgPrio())
	assert.True(t, s.yFlip())
	assert.True(t, s.xFlip())
	assert.Equal(t, 0, s.dmgPalette())
	assert.Equal(t, 1, s.bank())
	assert.Equal(t, uint8(1), s.cgbPalette())
}
