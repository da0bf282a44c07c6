package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeebiecore/gbppu/jeebie/addr"
)

func TestVRAMBanksIsolated(t *testing.T) {
	var v vramBanks
	v.write(0, 0x10, 0xAA)
	v.write(1, 0x10, 0xBB)

	assert.Equal(t, byte(0xAA), v.read(0, 0x10))
	assert.Equal(t, byte(0xBB), v.read(1, 0x10))
}

func TestDirtySetAddAndClear(t *testing.T) {
	d := make(dirtySet)
	d.add(0x8000)
	d.add(0x8010)

	assert.Len(t, d, 2)
	d.clear()
	assert.Empty(t, d)
}

func TestDirtySetMarkAllTiles(t *testing.T) {
	d := make(dirtySet)
	d.markAllTiles()

	expected := int(addr.TileMap0-addr.TileData0) / 16
	assert.Len(t, d, expected)

	_, hasFirst := d[addr.TileData0]
	_, hasLast := d[addr.TileMap0-16]
	assert.True(t, hasFirst)
	assert.True(t, hasLast)
}

func TestVBKRegister(t *testing.T) {
	var v vbkRegister
	v.Set(0xFF)

	assert.Equal(t, uint8(1), v.activeBank)
	assert.Equal(t, uint8(0xFF), v.Get())

	v.Set(0x00)
	assert.Equal(t, uint8(0xFE), v.Get())
}
