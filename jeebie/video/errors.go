package video

import "log/slog"

// logPaletteRangeError reports an out-of-range CGB palette/color lookup.
// The caller still owns returning a safe zero value; this only surfaces the
// condition, since a malformed palette index should never crash the PPU
// (§7 Error handling).
func logPaletteRangeError(palette, color uint8) {
	slog.Warn("cgb palette lookup out of range", "palette", palette, "color", color)
}

// ConfigError reports a DMG/CGB mode mismatch detected while loading a save
// state (§6, §7): the state was captured in one mode and is being restored
// into a PPU configured for the other.
type ConfigError struct {
	Want bool
	Got  bool
}

func (e *ConfigError) Error() string {
	if e.Want {
		return "video: save state requires CGB mode, PPU is configured for DMG"
	}
	return "video: save state requires DMG mode, PPU is configured for CGB"
}
