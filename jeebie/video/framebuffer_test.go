package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBufferGetSet(t *testing.T) {
	fb := NewFrameBuffer()
	fb.set(5, 3, 0x112233FF)

	assert.Equal(t, uint32(0x112233FF), fb.Get(5, 3))
	assert.Equal(t, uint32(0x11223300), fb.RGB(5, 3))
}

func TestFrameBufferFillRow(t *testing.T) {
	fb := NewFrameBuffer()
	fb.fillRow(10, 0xABCDEF01)

	row := fb.Row(10)
	assert.Len(t, row, FramebufferWidth)
	for _, px := range row {
		assert.Equal(t, uint32(0xABCDEF01), px)
	}
	assert.Equal(t, uint32(0), fb.Get(0, 11), "adjacent row must be untouched")
}

func TestFrameBufferToRGBASlice(t *testing.T) {
	fb := NewFrameBuffer()
	fb.set(0, 0, packRGB(0x10, 0x20, 0x30)|COL0Flag)

	data := fb.ToRGBASlice()

	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, data[:4])
	assert.Len(t, data, FramebufferSize*4)
}

func TestPackRGB(t *testing.T) {
	assert.Equal(t, uint32(0xFF000000), packRGB(0xFF, 0x00, 0x00))
	assert.Equal(t, uint32(0x00FF0000), packRGB(0x00, 0xFF, 0x00))
	assert.Equal(t, uint32(0x0000FF00), packRGB(0x00, 0x00, 0xFF))
}
