package video

import "github.com/jeebiecore/gbppu/jeebie/bit"

// colorCode extracts a tile pixel's 2-bit color code (0-3) from the bit-plane
// pair of a tile row.
//
// Game Boy tiles are 8x8 pixels, with 2 bits per pixel allowing 4 colors.
// Each tile row uses 2 bytes in a bit-plane format:
//
//	low:  bit plane 0 - provides bit 0 of each pixel's color
//	high: bit plane 1 - provides bit 1 of each pixel's color
//
// Bit 7 represents the leftmost pixel, bit 0 the rightmost.
//
// Reference: https://gbdev.io/pandocs/Tile_Data.html
func colorCode(low, high byte, x int) uint8 {
	bitIndex := uint8(7 - x)
	code := uint8(0)
	if bit.IsSet(bitIndex, low) {
		code |= 1
	}
	if bit.IsSet(bitIndex, high) {
		code |= 2
	}
	return code
}
